package cachetbackend

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/castawaylabs/status-board/feeds"
)

// Component Cachet data model
type Component struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Status      int             `json:"status"`
	StatusName  string          `json:"status_name"`
	Order       int             `json:"order"`
	GroupID     int             `json:"group_id"`
	Enabled     bool            `json:"enabled"`
	CreatedAt   feeds.Timestamp `json:"created_at"`
	UpdatedAt   feeds.Timestamp `json:"updated_at"`
}

func (c Component) toFeed() feeds.Component {
	out := feeds.Component{
		ID:        strconv.Itoa(c.ID),
		Name:      c.Name,
		Status:    c.StatusName,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Position:  c.Order,
		Showcase:  c.Enabled,
	}

	if len(out.Status) == 0 {
		out.Status = componentStatusName(c.Status)
	}
	if len(c.Description) > 0 {
		desc := c.Description
		out.Description = &desc
	}
	if c.GroupID > 0 {
		groupID := strconv.Itoa(c.GroupID)
		out.GroupID = &groupID
	}

	return out
}

func componentStatusName(status int) string {
	switch status {
	case 1:
		return "Operational"
	case 2:
		return "Performance Issues"
	case 3:
		return "Partial Outage"
	case 4:
		return "Major Outage"
	default:
		return "Unknown"
	}
}

func (api *CachetBackend) getComponents(ctx context.Context) ([]feeds.Component, error) {
	data, err := api.NewListRequest(ctx, "/components")
	if err != nil {
		return nil, err
	}

	var components []Component
	if err := json.Unmarshal(data, &components); err != nil {
		return nil, fmt.Errorf("cannot parse components: %w", err)
	}

	out := make([]feeds.Component, 0, len(components))
	for _, c := range components {
		out = append(out, c.toFeed())
	}

	return out, nil
}

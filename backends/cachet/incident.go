package cachetbackend

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/castawaylabs/status-board/feeds"
)

// Incident statuses
const (
	IncidentScheduled     = 0
	IncidentInvestigating = 1
	IncidentIdentified    = 2
	IncidentWatching      = 3
	IncidentFixed         = 4
)

// ScheduleComplete marks a finished maintenance schedule.
const ScheduleComplete = 2

// Incident Cachet data model
type Incident struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Message     string          `json:"message"`
	Status      int             `json:"status"`
	HumanStatus string          `json:"human_status"`
	ComponentID int             `json:"component_id"`
	UpdatedAt   feeds.Timestamp `json:"updated_at"`
}

// Schedule Cachet data model
type Schedule struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Message     string          `json:"message"`
	Status      int             `json:"status"`
	HumanStatus string          `json:"human_status"`
	ScheduledAt feeds.Timestamp `json:"scheduled_at"`
	CompletedAt feeds.Timestamp `json:"completed_at"`
	UpdatedAt   feeds.Timestamp `json:"updated_at"`
}

// unresolved reports investigating, identified & watching incidents
func (i Incident) unresolved() bool {
	return i.Status >= IncidentInvestigating && i.Status <= IncidentWatching
}

func (i Incident) toFeed() feeds.Incident {
	return feeds.Incident{
		ID:     strconv.Itoa(i.ID),
		Name:   i.Name,
		Status: i.HumanStatus,
		Updates: []feeds.IncidentUpdate{{
			Status:    i.HumanStatus,
			Body:      i.Message,
			CreatedAt: i.UpdatedAt,
		}},
	}
}

func (s Schedule) toFeed() feeds.ScheduledMaintenance {
	return feeds.ScheduledMaintenance{
		ID:             strconv.Itoa(s.ID),
		Name:           s.Name,
		Status:         s.HumanStatus,
		ScheduledFor:   s.ScheduledAt,
		ScheduledUntil: s.CompletedAt,
		Updates: []feeds.IncidentUpdate{{
			Status:    s.HumanStatus,
			Body:      s.Message,
			CreatedAt: s.UpdatedAt,
		}},
	}
}

func (api *CachetBackend) getUnresolvedIncidents(ctx context.Context) ([]feeds.Incident, error) {
	data, err := api.NewListRequest(ctx, "/incidents")
	if err != nil {
		return nil, err
	}

	var incidents []Incident
	if err := json.Unmarshal(data, &incidents); err != nil {
		return nil, fmt.Errorf("cannot parse incidents: %w", err)
	}

	out := []feeds.Incident{}
	for _, incident := range incidents {
		if incident.unresolved() {
			out = append(out, incident.toFeed())
		}
	}

	return out, nil
}

func (api *CachetBackend) getOpenSchedules(ctx context.Context) ([]feeds.ScheduledMaintenance, error) {
	data, err := api.NewListRequest(ctx, "/schedules")
	if err != nil {
		return nil, err
	}

	var schedules []Schedule
	if err := json.Unmarshal(data, &schedules); err != nil {
		return nil, fmt.Errorf("cannot parse schedules: %w", err)
	}

	out := []feeds.ScheduledMaintenance{}
	for _, schedule := range schedules {
		if schedule.Status != ScheduleComplete {
			out = append(out, schedule.toFeed())
		}
	}

	return out, nil
}

package feeds

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Timestamp decodes the date formats status pages emit. The zero value means absent.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	if len(s) == 0 {
		t.Time = time.Time{}
		return nil
	}

	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}

	return fmt.Errorf("timestamp: unsupported format %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}

	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

// Component is a monitored service entry of the summary feed.
type Component struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Status             string    `json:"status"`
	CreatedAt          Timestamp `json:"created_at"`
	UpdatedAt          Timestamp `json:"updated_at"`
	Position           int       `json:"position"`
	Description        *string   `json:"description"`
	Showcase           bool      `json:"showcase"`
	StartDate          Timestamp `json:"start_date"`
	GroupID            *string   `json:"group_id"`
	PageID             string    `json:"page_id"`
	Group              bool      `json:"group"`
	OnlyShowIfDegraded bool      `json:"only_show_if_degraded"`
}

// IncidentUpdate is one status/body entry in an incident's history.
type IncidentUpdate struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	Body      string    `json:"body"`
	CreatedAt Timestamp `json:"created_at"`
}

// Incident is an unresolved service disruption.
type Incident struct {
	ID      string           `json:"id"`
	Name    string           `json:"name"`
	Status  string           `json:"status"`
	Impact  string           `json:"impact"`
	Updates []IncidentUpdate `json:"incident_updates"`
}

// ScheduledMaintenance is a planned maintenance window.
type ScheduledMaintenance struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Status         string           `json:"status"`
	Impact         string           `json:"impact"`
	ScheduledFor   Timestamp        `json:"scheduled_for"`
	ScheduledUntil Timestamp        `json:"scheduled_until"`
	Updates        []IncidentUpdate `json:"incident_updates"`
}

// Feed is one fetched snapshot. Only the list matching Category is populated.
type Feed struct {
	Category     Category
	Components   []Component
	Incidents    []Incident
	Maintenances []ScheduledMaintenance
}

// Len returns the number of records for the feed's category.
func (f *Feed) Len() int {
	switch f.Category {
	case CategoryIncidents:
		return len(f.Incidents)
	case CategoryMaintenance:
		return len(f.Maintenances)
	default:
		return len(f.Components)
	}
}

// Names returns the record names in feed order.
func (f *Feed) Names() []string {
	names := make([]string, 0, f.Len())
	switch f.Category {
	case CategoryIncidents:
		for _, i := range f.Incidents {
			names = append(names, i.Name)
		}
	case CategoryMaintenance:
		for _, m := range f.Maintenances {
			names = append(names, m.Name)
		}
	default:
		for _, c := range f.Components {
			names = append(names, c.Name)
		}
	}

	return names
}

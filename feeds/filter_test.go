package feeds

import (
	"reflect"
	"testing"
)

func TestFilterByName(t *testing.T) {
	feed := &Feed{
		Category: CategorySummary,
		Components: []Component{
			{Name: "API"},
			{Name: "Database"},
			{Name: "api-gateway"},
		},
	}

	got := FilterByName(feed, "api").Names()
	if want := []string{"API", "api-gateway"}; !reflect.DeepEqual(got, want) {
		t.Errorf("filtered names = %v, want %v", got, want)
	}

	if got := FilterByName(feed, "").Names(); !reflect.DeepEqual(got, feed.Names()) {
		t.Errorf("empty term should keep every record, got %v", got)
	}

	if n := FilterByName(feed, "nothing matches").Len(); n != 0 {
		t.Errorf("expected no records, got %d", n)
	}
}

func TestFilterByNameIncidentsAndMaintenance(t *testing.T) {
	incidents := &Feed{
		Category: CategoryIncidents,
		Incidents: []Incident{
			{Name: "Droplet networking degraded"},
			{Name: "Spaces API errors"},
		},
	}
	if got := FilterByName(incidents, "SPACES").Names(); !reflect.DeepEqual(got, []string{"Spaces API errors"}) {
		t.Errorf("incident filter = %v", got)
	}

	maint := &Feed{
		Category: CategoryMaintenance,
		Maintenances: []ScheduledMaintenance{
			{Name: "NYC1 network upgrade"},
			{Name: "AMS3 power work"},
		},
	}
	if got := FilterByName(maint, "nyc").Names(); !reflect.DeepEqual(got, []string{"NYC1 network upgrade"}) {
		t.Errorf("maintenance filter = %v", got)
	}
}

func TestFilterByNameDoesNotTouchInput(t *testing.T) {
	feed := &Feed{Category: CategorySummary, Components: []Component{{Name: "a"}, {Name: "b"}}}
	FilterByName(feed, "a")

	if feed.Len() != 2 {
		t.Error("input feed was modified")
	}
}

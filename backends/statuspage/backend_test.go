package statuspagebackend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/castawaylabs/status-board/backends"
	"github.com/castawaylabs/status-board/feeds"
)

const summaryJSON = `{
  "page": {"id": "page1", "name": "DigitalOcean"},
  "components": [
    {"id": "c1", "name": "API", "status": "operational", "created_at": "2014-05-03T01:22:07.274Z",
     "updated_at": "2014-05-14T20:34:43.340Z", "position": 1, "description": null, "showcase": true,
     "start_date": "2014-05-03", "group_id": null, "page_id": "page1", "group": false, "only_show_if_degraded": false},
    {"id": "c2", "name": "Database", "status": "degraded_performance", "position": 2, "description": "Managed DBs",
     "group_id": "g1", "page_id": "page1"}
  ],
  "status": {"indicator": "minor", "description": "Minor Service Outage"}
}`

const incidentsJSON = `{
  "incidents": [
    {"id": "i1", "name": "Spaces errors", "status": "identified", "impact": "minor",
     "incident_updates": [
       {"id": "u2", "status": "identified", "body": "Fix in progress", "created_at": "2024-01-02T10:00:00Z"},
       {"id": "u1", "status": "investigating", "body": "Looking into it", "created_at": "2024-01-02T09:00:00Z"}
     ]}
  ]
}`

const maintenancesJSON = `{"scheduled_maintenances": []}`

func newTestServer(t *testing.T, hits map[string]int) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits[r.URL.Path]++
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/v2/summary.json":
			w.Write([]byte(summaryJSON))
		case "/api/v2/incidents/unresolved.json":
			w.Write([]byte(incidentsJSON))
		case "/api/v2/scheduled-maintenances.json":
			w.Write([]byte(maintenancesJSON))
		case "/api/v2/status.json":
			w.Write([]byte(`{"status": {"indicator": "none"}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	return srv
}

func newBackend(t *testing.T, url string) *StatuspageBackend {
	t.Helper()

	api := &StatuspageBackend{URL: url + "/"}
	if errs := api.Validate(); len(errs) > 0 {
		t.Fatalf("Validate: %v", errs)
	}
	return api
}

func TestFetchSummary(t *testing.T) {
	hits := map[string]int{}
	api := newBackend(t, newTestServer(t, hits).URL)

	feed, err := api.Fetch(context.Background(), feeds.CategorySummary)
	if err != nil {
		t.Fatal(err)
	}

	if got := feed.Names(); !reflect.DeepEqual(got, []string{"API", "Database"}) {
		t.Errorf("names = %v", got)
	}
	if feed.Components[0].Description != nil {
		t.Error("null description should decode to nil")
	}
	if !feed.Components[0].Showcase || feed.Components[0].StartDate.IsZero() {
		t.Error("showcase/start_date not decoded")
	}
	if feed.Components[1].GroupID == nil || *feed.Components[1].GroupID != "g1" {
		t.Error("group_id not decoded")
	}
	if hits["/api/v2/summary.json"] != 1 {
		t.Errorf("summary hit %d times", hits["/api/v2/summary.json"])
	}
}

func TestFetchIncidentsAndMaintenance(t *testing.T) {
	hits := map[string]int{}
	api := newBackend(t, newTestServer(t, hits).URL)

	feed, err := api.Fetch(context.Background(), feeds.CategoryIncidents)
	if err != nil {
		t.Fatal(err)
	}
	if feed.Len() != 1 || len(feed.Incidents[0].Updates) != 2 || feed.Incidents[0].Updates[0].Body != "Fix in progress" {
		t.Errorf("unexpected incidents: %+v", feed.Incidents)
	}

	feed, err = api.Fetch(context.Background(), feeds.CategoryMaintenance)
	if err != nil {
		t.Fatal(err)
	}
	if feed.Len() != 0 || feed.Maintenances == nil {
		t.Errorf("expected an empty, non-nil maintenance list: %+v", feed)
	}

	if hits["/api/v2/incidents/unresolved.json"] != 1 || hits["/api/v2/scheduled-maintenances.json"] != 1 {
		t.Errorf("unexpected hits: %v", hits)
	}
}

func TestFetchErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v2/summary.json":
			w.WriteHeader(http.StatusServiceUnavailable)
		case "/api/v2/incidents/unresolved.json":
			w.Write([]byte(`{"incidents": [`))
		default:
			w.Write([]byte(`{"something_else": []}`))
		}
	}))
	defer srv.Close()

	api := newBackend(t, srv.URL)

	_, err := api.Fetch(context.Background(), feeds.CategorySummary)
	var statusErr *backends.StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected a StatusError, got %v", err)
	}

	if _, err := api.Fetch(context.Background(), feeds.CategoryIncidents); err == nil {
		t.Error("expected a parse error")
	}

	if _, err := api.Fetch(context.Background(), feeds.CategoryMaintenance); err == nil {
		t.Error("expected an error for a missing list")
	}

	if _, err := api.Fetch(context.Background(), feeds.Category("outages")); err == nil {
		t.Error("expected an error for an unknown category")
	}
}

func TestPingAndValidate(t *testing.T) {
	api := newBackend(t, newTestServer(t, map[string]int{}).URL)
	if err := api.Ping(context.Background()); err != nil {
		t.Errorf("Ping: %v", err)
	}

	empty := &StatuspageBackend{}
	if errs := empty.Validate(); len(errs) != 0 || empty.URL != DefaultURL {
		t.Errorf("empty URL should default, got %q %v", empty.URL, errs)
	}

	bad := &StatuspageBackend{URL: "not a url"}
	if errs := bad.Validate(); len(errs) == 0 {
		t.Error("expected a validation error")
	}
}

package statuspagebackend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/castawaylabs/status-board/backends"
	"github.com/castawaylabs/status-board/feeds"
)

// DefaultURL is the status page queried when no URL is configured.
const DefaultURL = "https://status.digitalocean.com"

var endpoints = map[feeds.Category]string{
	feeds.CategorySummary:     "/api/v2/summary.json",
	feeds.CategoryIncidents:   "/api/v2/incidents/unresolved.json",
	feeds.CategoryMaintenance: "/api/v2/scheduled-maintenances.json",
}

const pingEndpoint = "/api/v2/status.json"

// StatuspageBackend reads the public v2 API of a hosted status page.
type StatuspageBackend struct {
	URL      string `json:"url" yaml:"url" mapstructure:"url"`
	Insecure bool   `json:"insecure" yaml:"insecure" mapstructure:"insecure"`

	once   sync.Once
	client *http.Client
}

func (api *StatuspageBackend) Validate() []string {
	errs := []string{}

	if len(api.URL) == 0 {
		api.URL = DefaultURL
	}
	api.URL = strings.TrimSuffix(api.URL, "/")

	if u, err := url.Parse(api.URL); err != nil || len(u.Scheme) == 0 || len(u.Host) == 0 {
		errs = append(errs, "Statuspage URL invalid: "+api.URL)
	}

	return errs
}

func (api *StatuspageBackend) Describe() []string {
	return []string{"Statuspage API v2", "URL: " + api.URL}
}

func (api *StatuspageBackend) BaseURL() string {
	return api.URL
}

// Endpoint returns the absolute URL fetched for category.
func (api *StatuspageBackend) Endpoint(category feeds.Category) string {
	return api.URL + endpoints[category]
}

func (api *StatuspageBackend) Ping(ctx context.Context) error {
	var body struct {
		Status struct {
			Indicator   string `json:"indicator"`
			Description string `json:"description"`
		} `json:"status"`
	}

	return backends.GetJSON(ctx, api.httpClient(), api.URL+pingEndpoint, nil, &body)
}

func (api *StatuspageBackend) Fetch(ctx context.Context, category feeds.Category) (*feeds.Feed, error) {
	if _, ok := endpoints[category]; !ok {
		return nil, fmt.Errorf("statuspage: unknown category %q", category)
	}

	var body struct {
		Components   *[]feeds.Component            `json:"components"`
		Incidents    *[]feeds.Incident             `json:"incidents"`
		Maintenances *[]feeds.ScheduledMaintenance `json:"scheduled_maintenances"`
	}

	endpoint := api.Endpoint(category)
	if err := backends.GetJSON(ctx, api.httpClient(), endpoint, nil, &body); err != nil {
		return nil, fmt.Errorf("statuspage: fetch %s: %w", category, err)
	}

	feed := &feeds.Feed{Category: category}
	switch category {
	case feeds.CategorySummary:
		if body.Components == nil {
			return nil, missingList(endpoint, "components")
		}
		feed.Components = *body.Components
	case feeds.CategoryIncidents:
		if body.Incidents == nil {
			return nil, missingList(endpoint, "incidents")
		}
		feed.Incidents = *body.Incidents
	case feeds.CategoryMaintenance:
		if body.Maintenances == nil {
			return nil, missingList(endpoint, "scheduled_maintenances")
		}
		feed.Maintenances = *body.Maintenances
	}

	return feed, nil
}

func (api *StatuspageBackend) httpClient() *http.Client {
	api.once.Do(func() {
		api.client = backends.NewClient(api.Insecure)
	})

	return api.client
}

func missingList(endpoint, key string) error {
	return fmt.Errorf("statuspage: %s response has no %q list", endpoint, key)
}

package cachetbackend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/castawaylabs/status-board/backends"
	"github.com/castawaylabs/status-board/feeds"
)

type CachetBackend struct {
	URL      string `json:"url" yaml:"url" mapstructure:"url"`
	Token    string `json:"token" yaml:"token" mapstructure:"token"`
	Insecure bool   `json:"insecure" yaml:"insecure" mapstructure:"insecure"`

	once   sync.Once
	client *http.Client
}

// PerPage is requested for every list endpoint.
const PerPage = 100

// maxPages stops a misbehaving server from paging forever.
const maxPages = 50

type CachetResponse struct {
	Meta struct {
		Pagination Pagination `json:"pagination"`
	} `json:"meta"`
	Data json.RawMessage `json:"data"`
}

// Pagination is the meta block Cachet adds to list responses.
type Pagination struct {
	Total       int `json:"total"`
	Count       int `json:"count"`
	PerPage     int `json:"per_page"`
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
}

func (api *CachetBackend) Validate() []string {
	errs := []string{}

	api.URL = strings.TrimSuffix(api.URL, "/")
	if len(api.URL) == 0 {
		errs = append(errs, "Cachet API URL invalid")
	} else if u, err := url.Parse(api.URL); err != nil || len(u.Scheme) == 0 || len(u.Host) == 0 {
		errs = append(errs, "Cachet API URL invalid: "+api.URL)
	}

	return errs
}

func (api *CachetBackend) Describe() []string {
	features := []string{"Cachet API", "URL: " + api.URL}
	if len(api.Token) > 0 {
		features = append(features, "Authenticated")
	}

	return features
}

func (api *CachetBackend) BaseURL() string {
	return api.URL
}

func (api *CachetBackend) Ping(ctx context.Context) error {
	_, err := api.NewRequest(ctx, "/ping")
	return err
}

func (api *CachetBackend) Fetch(ctx context.Context, category feeds.Category) (*feeds.Feed, error) {
	feed := &feeds.Feed{Category: category}

	var err error
	switch category {
	case feeds.CategorySummary:
		feed.Components, err = api.getComponents(ctx)
	case feeds.CategoryIncidents:
		feed.Incidents, err = api.getUnresolvedIncidents(ctx)
	case feeds.CategoryMaintenance:
		feed.Maintenances, err = api.getOpenSchedules(ctx)
	default:
		return nil, fmt.Errorf("cachet: unknown category %q", category)
	}
	if err != nil {
		return nil, fmt.Errorf("cachet: fetch %s: %w", category, err)
	}

	return feed, nil
}

// NewRequest GETs an /api/v1 path and returns the "data" envelope.
func (api *CachetBackend) NewRequest(ctx context.Context, path string) (json.RawMessage, error) {
	body, err := api.get(ctx, path)
	if err != nil {
		return nil, err
	}

	return body.Data, nil
}

// NewListRequest walks every page of a list endpoint and returns the
// records of all pages as one JSON array.
func (api *CachetBackend) NewListRequest(ctx context.Context, path string) (json.RawMessage, error) {
	records := []json.RawMessage{}

	for page := 1; page <= maxPages; page++ {
		query := url.Values{}
		query.Set("per_page", strconv.Itoa(PerPage))
		query.Set("page", strconv.Itoa(page))

		body, err := api.get(ctx, path+"?"+query.Encode())
		if err != nil {
			return nil, err
		}

		var items []json.RawMessage
		if err := json.Unmarshal(body.Data, &items); err != nil {
			return nil, fmt.Errorf("cannot parse %s page %d: %w", path, page, err)
		}
		records = append(records, items...)

		p := body.Meta.Pagination
		if len(items) == 0 || p.CurrentPage >= p.TotalPages {
			break
		}
	}

	return json.Marshal(records)
}

func (api *CachetBackend) get(ctx context.Context, path string) (*CachetResponse, error) {
	header := http.Header{}
	if len(api.Token) > 0 {
		header.Set("X-Cachet-Token", api.Token)
	}

	body := &CachetResponse{}
	if err := backends.GetJSON(ctx, api.httpClient(), api.URL+"/api/v1"+path, header, body); err != nil {
		return nil, err
	}

	return body, nil
}

func (api *CachetBackend) httpClient() *http.Client {
	api.once.Do(func() {
		api.client = backends.NewClient(api.Insecure)
	})

	return api.client
}

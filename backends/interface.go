package backends

import (
	"context"

	"github.com/castawaylabs/status-board/feeds"
)

type BackendInterface interface {
	Ping(ctx context.Context) error
	Fetch(ctx context.Context, category feeds.Category) (*feeds.Feed, error)

	BaseURL() string
	Describe() []string
	Validate() []string
}

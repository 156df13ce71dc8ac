package board

import (
	"context"
	"html/template"
	"strings"
	"sync"
	"time"

	"github.com/castawaylabs/status-board/backends"
	"github.com/castawaylabs/status-board/cards"
	"github.com/castawaylabs/status-board/feeds"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Board owns the display region of the status page and the single piece of
// UI state, the selected category. Every selection or search dispatches one
// independent fetch; only the most recently issued request may update the
// display.
type Board struct {
	backend  backends.BackendInterface
	renderer *cards.Renderer

	// fetches run under ctx so shutdown can abort them
	ctx context.Context

	mu         sync.Mutex
	category   feeds.Category
	searchText string
	content    template.HTML
	updatedAt  time.Time
	seq        uint64
	inflight   int

	wg sync.WaitGroup
}

// Snapshot is a consistent copy of what the board currently displays.
type Snapshot struct {
	Category   feeds.Category `json:"category"`
	SearchText string         `json:"search_text"`
	Content    template.HTML  `json:"content"`
	Pending    bool           `json:"pending"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

func New(ctx context.Context, backend backends.BackendInterface, renderer *cards.Renderer) *Board {
	return &Board{
		backend:  backend,
		renderer: renderer,
		ctx:      ctx,
		category: feeds.DefaultCategory,
	}
}

// Load fetches the current category, normally once at startup.
func (b *Board) Load() *Request {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.dispatchLocked(b.category, "", false)
}

// Select switches the category and fetches it. Selecting the active
// category fetches again.
func (b *Board) Select(category feeds.Category) *Request {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.category = category
	return b.dispatchLocked(category, "", false)
}

func (b *Board) Category() feeds.Category {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.category
}

// SetSearchText stores the content of the search input.
func (b *Board) SetSearchText(text string) {
	b.mu.Lock()
	b.searchText = text
	b.mu.Unlock()
}

// SubmitSearch searches the current category for the search input, then
// clears the input.
func (b *Board) SubmitSearch() *Request {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.submitSearchLocked()
}

// SubmitSearchText types text into the search input and submits it in one
// step, so concurrent submissions cannot swap terms.
func (b *Board) SubmitSearchText(text string) *Request {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.searchText = text
	return b.submitSearchLocked()
}

func (b *Board) submitSearchLocked() *Request {
	term := strings.ToLower(strings.TrimSpace(b.searchText))
	b.searchText = ""

	return b.dispatchLocked(b.category, term, true)
}

// Search fetches the current category and keeps records whose name contains term.
func (b *Board) Search(term string) *Request {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.dispatchLocked(b.category, term, true)
}

func (b *Board) Display() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	return Snapshot{
		Category:   b.category,
		SearchText: b.searchText,
		Content:    b.content,
		Pending:    b.inflight > 0,
		UpdatedAt:  b.updatedAt,
	}
}

// Wait blocks until every dispatched request has completed.
func (b *Board) Wait() {
	b.wg.Wait()
}

// dispatchLocked issues the next sequence number and starts the fetch. The
// caller holds b.mu, so the category it read or wrote belongs to this seq.
func (b *Board) dispatchLocked(category feeds.Category, term string, search bool) *Request {
	b.seq++
	req := &Request{
		ID:       uuid.NewString(),
		Seq:      b.seq,
		Category: category,
		Term:     term,
		Search:   search,
		done:     make(chan struct{}),
	}
	b.inflight++
	b.wg.Add(1)

	go b.run(req)

	return req
}

func (b *Board) run(req *Request) {
	defer b.wg.Done()
	defer close(req.done)

	l := logrus.WithFields(logrus.Fields{
		"request":  req.ID,
		"seq":      req.Seq,
		"category": req.Category,
	})
	if req.Search {
		l = l.WithField("term", req.Term)
	}
	l.Debug("fetching")

	start := time.Now()
	content, err := b.fetchAndRender(req)
	fetchDuration.WithLabelValues(string(req.Category)).Observe(time.Since(start).Seconds())

	b.mu.Lock()
	b.inflight--
	if err == nil && req.Seq == b.seq {
		b.content = content
		b.updatedAt = time.Now()
		req.applied = true
	}
	b.mu.Unlock()

	switch {
	case err != nil:
		req.err = err
		fetchTotal.WithLabelValues(string(req.Category), resultError).Inc()
		l.Errorf("Error fetching %s data: %v", req.Category, err)
	case !req.applied:
		fetchTotal.WithLabelValues(string(req.Category), resultStale).Inc()
		l.Debug("discarding stale response")
	default:
		fetchTotal.WithLabelValues(string(req.Category), resultOK).Inc()
	}
}

func (b *Board) fetchAndRender(req *Request) (template.HTML, error) {
	feed, err := b.backend.Fetch(b.ctx, req.Category)
	if err != nil {
		return "", err
	}

	if req.Search {
		feed = feeds.FilterByName(feed, req.Term)
	}

	return b.renderer.Render(feed)
}

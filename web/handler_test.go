package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/castawaylabs/status-board/board"
	"github.com/castawaylabs/status-board/cards"
	"github.com/castawaylabs/status-board/feeds"
	"github.com/gin-gonic/gin"
)

type stubBackend struct {
	mu    sync.Mutex
	calls []feeds.Category
	fail  bool
}

func (s *stubBackend) Ping(ctx context.Context) error { return nil }
func (s *stubBackend) BaseURL() string                { return "http://stub" }
func (s *stubBackend) Describe() []string             { return nil }
func (s *stubBackend) Validate() []string             { return nil }

func (s *stubBackend) Fetch(ctx context.Context, category feeds.Category) (*feeds.Feed, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, category)
	if s.fail {
		return nil, errors.New("HTTP 500")
	}

	return &feeds.Feed{
		Category:   category,
		Components: []feeds.Component{{Name: "API"}, {Name: "Database"}},
		Incidents:  []feeds.Incident{{Name: "Droplet outage"}},
	}, nil
}

func newTestRouter(t *testing.T, backend *stubBackend) (*gin.Engine, *board.Board) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	renderer, err := cards.NewRenderer("", nil)
	if err != nil {
		t.Fatal(err)
	}
	b := board.New(context.Background(), backend, renderer)

	return NewHandler(b, "test-board").InitRoutes(), b
}

func postForm(r http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)

	return w
}

func TestIndex(t *testing.T) {
	r, b := newTestRouter(t, &stubBackend{})
	<-b.Load().Done()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"test-board", `id="status-container"`, ">API<", `value="summary" checked`} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestFilter(t *testing.T) {
	backend := &stubBackend{}
	r, b := newTestRouter(t, backend)

	w := postForm(r, "/filter", url.Values{"category": {"incidents"}})
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/" {
		t.Fatalf("status = %d, location = %q", w.Code, w.Header().Get("Location"))
	}

	s := b.Display()
	if s.Category != feeds.CategoryIncidents || !strings.Contains(string(s.Content), "Droplet outage") {
		t.Errorf("unexpected board: %+v", s)
	}
	if len(backend.calls) != 1 || backend.calls[0] != feeds.CategoryIncidents {
		t.Errorf("calls = %v", backend.calls)
	}

	w = postForm(r, "/filter", url.Values{"category": {"outages"}})
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown category status = %d", w.Code)
	}
}

func TestSearch(t *testing.T) {
	r, b := newTestRouter(t, &stubBackend{})

	w := postForm(r, "/search", url.Values{"q": {"data"}})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", w.Code)
	}

	s := b.Display()
	if s.SearchText != "" {
		t.Error("search box not cleared")
	}
	if strings.Contains(string(s.Content), ">API<") || !strings.Contains(string(s.Content), ">Database<") {
		t.Errorf("unexpected search result: %s", s.Content)
	}
}

func TestFailedFilterKeepsContent(t *testing.T) {
	backend := &stubBackend{}
	r, b := newTestRouter(t, backend)
	<-b.Load().Done()
	before := b.Display().Content

	backend.mu.Lock()
	backend.fail = true
	backend.mu.Unlock()

	w := postForm(r, "/filter", url.Values{"category": {"maintenance"}})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", w.Code)
	}
	if b.Display().Content != before {
		t.Error("content changed after a failed fetch")
	}
}

func TestSnapshotAndHealth(t *testing.T) {
	r, b := newTestRouter(t, &stubBackend{})
	<-b.Load().Done()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/board", nil))

	var out struct {
		Category string `json:"category"`
		Pending  bool   `json:"pending"`
		Content  string `json:"content"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Category != "summary" || out.Pending || !strings.Contains(out.Content, "Database") {
		t.Errorf("unexpected snapshot: %+v", out)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "ok") {
		t.Errorf("health = %d %s", w.Code, w.Body.String())
	}
}

func TestNormalizeAddr(t *testing.T) {
	cases := map[string]string{"8080": ":8080", ":8080": ":8080", "127.0.0.1:80": "127.0.0.1:80", "": ""}
	for in, want := range cases {
		if got := normalizeAddr(in); got != want {
			t.Errorf("normalizeAddr(%q) = %q, want %q", in, got, want)
		}
	}
}

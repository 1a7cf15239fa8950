// Package testutil provides shared test helpers: a project fixture, an
// in-memory source and a recording contact endpoint.
package testutil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/starford/folio/internal/models"
)

// Projects returns a small collection covering both record shapes.
//
// By year, newest first: beta (2024), epsilon (2023), alpha (2022),
// gamma (2022), delta (no year).
func Projects() []models.Project {
	return []models.Project{
		{
			Slug: "alpha", Title: "Alpha Gateway", Lead: "REST gateway", Year: 2022,
			Type: "Web", Tags: models.StringList{"API", "Go"}, Role: models.Role{"Backend"},
			Highlights: models.StringList{"背景：古い API", "目的：統合する", "成果：応答が速くなった"},
		},
		{
			Slug: "beta", Title: "Beta Studio", Lead: "Design system", Year: 2024,
			Type: "Design", Tags: models.StringList{"Design"}, Role: models.Role{"Designer", "PM"},
			Context: "**既存** UI の不統一", Goal: "部品を揃える",
			Process: models.StringList{"監査", "試作"}, Outcome: models.StringList{"採用 3 チーム"},
		},
		{
			Slug: "gamma", Title: "Gamma Batch", Year: 2022, Type: "Tool",
			Tags: models.StringList{"Go"}, Highlights: models.StringList{"成果：api latency halved"},
		},
		{
			Slug: "delta", Title: "Delta Notes", Type: "Research",
			Tags: models.StringList{"Design", "Research"},
		},
		{
			Slug: "epsilon", Title: "Epsilon Site", Year: 2023, Type: "Web",
			Tags: models.StringList{"Design"},
		},
	}
}

// StaticSource serves a fixed collection, or Err when set.
type StaticSource struct {
	Items []models.Project
	Err   error

	calls atomic.Int32
}

// Fetch implements source.Source.
func (s *StaticSource) Fetch(ctx context.Context) ([]models.Project, error) {
	s.calls.Add(1)
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Items, nil
}

// Calls returns how many times Fetch ran.
func (s *StaticSource) Calls() int {
	return int(s.calls.Load())
}

// Recorder captures form posts received by a NotifyServer.
type Recorder struct {
	mu   sync.Mutex
	hits int
	last url.Values
}

// Count returns the number of requests received.
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hits
}

// Form returns the fields of the last request.
func (r *Recorder) Form() url.Values {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// NotifyServer starts a contact endpoint that answers every POST with status.
func NotifyServer(t *testing.T, status int) (*httptest.Server, *Recorder) {
	t.Helper()
	rec := &Recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		rec.mu.Lock()
		rec.hits++
		rec.last = r.PostForm
		rec.mu.Unlock()
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

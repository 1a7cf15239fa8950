package api

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/starford/folio/internal/contact"
	"github.com/starford/folio/internal/portfolio"
	"github.com/starford/folio/internal/testutil"
)

// testEnv builds the API router over the shared fixture and a contact
// endpoint answering with notifyStatus.
func testEnv(t *testing.T, notifyStatus int) (http.Handler, *testutil.StaticSource, *testutil.Recorder) {
	t.Helper()
	srv, rec := testutil.NotifyServer(t, notifyStatus)
	src := &testutil.StaticSource{Items: testutil.Projects()}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	h := NewHandler(src, contact.NewClient(srv.URL, srv.Client()), logger)
	return NewRouter(h, []string{"https://example.com"}), src, rec
}

func do(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func postJSON(target string, v any) *http.Request {
	body, _ := json.Marshal(v)
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestListProjects(t *testing.T) {
	router, src, _ := testEnv(t, http.StatusOK)

	w := do(router, httptest.NewRequest(http.MethodGet, "/projects?tag=Go&sort=title", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var v ListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(v.Cards) != 2 || v.Cards[0].Slug != "alpha" || v.Cards[1].Slug != "gamma" {
		t.Errorf("cards = %+v", v.Cards)
	}
	if v.ListingURL != "/?sort=title&tag=Go" {
		t.Errorf("listing url = %q", v.ListingURL)
	}
	if len(v.TOC) != 5 {
		t.Errorf("toc = %d entries, want 5", len(v.TOC))
	}
	if src.Calls() != 1 {
		t.Errorf("fetches = %d", src.Calls())
	}
}

func TestGetProject(t *testing.T) {
	router, _, _ := testEnv(t, http.StatusOK)

	w := do(router, httptest.NewRequest(http.MethodGet, "/projects/gamma?from=q%3Dgo", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var v struct {
		Status   string            `json:"status"`
		BackHref string            `json:"back_href"`
		Prev     portfolio.NavLink `json:"prev"`
		Next     portfolio.NavLink `json:"next"`
		Project  struct {
			Slug     string             `json:"slug"`
			Shape    string             `json:"shape"`
			Sections portfolio.Sections `json:"sections"`
		} `json:"project"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v.Status != "found" || v.Project.Slug != "gamma" || v.Project.Shape != "highlights" {
		t.Errorf("detail = %+v", v)
	}
	if v.BackHref != "/?q=go" {
		t.Errorf("back href = %q", v.BackHref)
	}
	if len(v.Project.Sections.Outcome) != 1 || v.Project.Sections.Outcome[0] != "api latency halved" {
		t.Errorf("outcome = %v", v.Project.Sections.Outcome)
	}
	if v.Prev.Slug != "alpha" || v.Next.Slug != "delta" {
		t.Errorf("neighbours = %q / %q", v.Prev.Slug, v.Next.Slug)
	}
	if !strings.Contains(v.Next.Href, "from=q%3Dgo") {
		t.Errorf("next href dropped from: %q", v.Next.Href)
	}
}

func TestGetProject_NotFound(t *testing.T) {
	router, _, _ := testEnv(t, http.StatusOK)
	w := do(router, httptest.NewRequest(http.MethodGet, "/projects/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestListTags(t *testing.T) {
	router, _, _ := testEnv(t, http.StatusOK)
	w := do(router, httptest.NewRequest(http.MethodGet, "/tags", nil))
	var v TagsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if strings.Join(v.Tags, ",") != "ALL,API,Design,Go,Research" {
		t.Errorf("tags = %v", v.Tags)
	}
}

func TestFetchFailure(t *testing.T) {
	router, src, _ := testEnv(t, http.StatusOK)
	src.Err = errors.New("connection refused")

	for _, path := range []string{"/projects", "/projects/alpha", "/tags"} {
		w := do(router, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusBadGateway {
			t.Errorf("%s: status = %d, want 502", path, w.Code)
		}
		var body errResponse
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body.Error != "プロジェクトの読み込みに失敗しました" {
			t.Errorf("%s: error = %q", path, body.Error)
		}
	}
}

func TestSubmitContact(t *testing.T) {
	router, _, rec := testEnv(t, http.StatusOK)

	req := postJSON("/contact", ContactRequest{Name: "Hanako", Email: "h@example.com", Message: "hello"})
	req.Header.Set("User-Agent", "api-test")
	w := do(router, req)
	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp ContactResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Note != contact.NoteSent {
		t.Errorf("note = %q", resp.Note)
	}
	if rec.Count() != 1 {
		t.Fatalf("notify requests = %d", rec.Count())
	}
	if got := rec.Form(); got.Get("name") != "Hanako" || got.Get("ua") != "api-test" {
		t.Errorf("posted form = %v", got)
	}
}

func TestSubmitContact_Validation(t *testing.T) {
	router, _, rec := testEnv(t, http.StatusOK)

	w := do(router, postJSON("/contact", ContactRequest{Name: "Hanako"}))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	var body errResponse
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body.Error != contact.NoteInvalid {
		t.Errorf("error = %q", body.Error)
	}
	if _, ok := body.Fields["email"]; !ok {
		t.Errorf("fields = %v, want email", body.Fields)
	}
	if _, ok := body.Fields["message"]; !ok {
		t.Errorf("fields = %v, want message", body.Fields)
	}
	if rec.Count() != 0 {
		t.Errorf("notify requests = %d, want 0", rec.Count())
	}
}

func TestSubmitContact_UpstreamFailure(t *testing.T) {
	router, _, rec := testEnv(t, http.StatusServiceUnavailable)

	w := do(router, postJSON("/contact", ContactRequest{Name: "a", Email: "b", Message: "c"}))
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", w.Code)
	}
	if rec.Count() != 1 {
		t.Errorf("notify requests = %d, want exactly 1", rec.Count())
	}
}

func TestSubmitContact_RequiresJSON(t *testing.T) {
	router, _, _ := testEnv(t, http.StatusOK)

	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader("name=a"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if w := do(router, req); w.Code != http.StatusUnsupportedMediaType {
		t.Errorf("status = %d, want 415", w.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	if w := do(router, req); w.Code != http.StatusBadRequest {
		t.Errorf("malformed body status = %d, want 400", w.Code)
	}
}

func TestCORS(t *testing.T) {
	router, _, _ := testEnv(t, http.StatusOK)

	req := httptest.NewRequest(http.MethodOptions, "/projects", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := do(router, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://example.com" {
		t.Errorf("allowed origin = %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/projects", nil)
	req.Header.Set("Origin", "https://other.example")
	w = do(router, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("foreign origin allowed: %q", got)
	}
}

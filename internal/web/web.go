// Package web serves the portfolio's HTML pages and htmx fragments.
package web

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/contact"
	"github.com/starford/folio/internal/portfolio"
	"github.com/starford/folio/internal/source"
)

// SiteTitle is the listing page title.
const SiteTitle = "Portfolio"

// Options configures a Handler.
type Options struct {
	Source  source.Source
	Contact *contact.Form
	Logger  *slog.Logger
	// Events, when set, is served at GET /events and pages subscribe to it
	// for live reload.
	Events http.Handler
}

// Handler holds the page handlers.
type Handler struct {
	src    source.Source
	form   *contact.Form
	events http.Handler
	logger *slog.Logger
	pages  map[string]*template.Template
}

// NewHandler parses the embedded templates and returns a Handler.
func NewHandler(opts Options) (*Handler, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	pages, err := parsePages(newMarkdown())
	if err != nil {
		return nil, err
	}
	return &Handler{
		src:    opts.Source,
		form:   opts.Contact,
		events: opts.Events,
		logger: logger,
		pages:  pages,
	}, nil
}

// NewRouter creates a chi router with all page routes mounted.
func NewRouter(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.index)
	r.Get("/partials/cards", h.cards)
	r.Get("/project", h.project)

	r.Post("/contact", h.submitContact)
	r.Get("/contact/mailto", h.mailto)

	r.Post("/theme", h.toggleTheme)

	if h.events != nil {
		r.Get("/events", h.events.ServeHTTP)
	}

	return r
}

// page is the data every full page template receives.
type page struct {
	Title      string
	Theme      string
	LiveReload bool
	Error      string

	List    *portfolio.ListView
	Detail  *portfolio.DetailView
	Contact contactData
}

type contactData struct {
	Form    contact.FormView
	PageURL string
}

func (h *Handler) newPage(r *http.Request, title string) page {
	return page{
		Title:      title,
		Theme:      Theme(r),
		LiveReload: h.events != nil,
		Contact: contactData{
			Form:    h.form.View(contact.Submission{}),
			PageURL: pageURL(r),
		},
	}
}

// index handles GET /.
func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	st := portfolio.ParseState(r.URL.Query())
	p := h.newPage(r, SiteTitle)

	status := http.StatusOK
	projects, err := h.src.Fetch(r.Context())
	if err != nil {
		h.fetchFailed(r, err)
		status = http.StatusBadGateway
		p.Error = source.UserMessage(err)
		projects = nil
	}

	lv := portfolio.BuildList(projects, st)
	p.List = &lv
	h.render(w, status, pageIndex, "layout", p)
}

// cards handles GET /partials/cards, the fragment swapped in on every filter,
// search or sort change. HX-Replace-Url keeps the address bar in step.
func (h *Handler) cards(w http.ResponseWriter, r *http.Request) {
	st := portfolio.ParseState(r.URL.Query())
	p := page{}

	status := http.StatusOK
	projects, err := h.src.Fetch(r.Context())
	if err != nil {
		h.fetchFailed(r, err)
		status = http.StatusBadGateway
		p.Error = source.UserMessage(err)
		projects = nil
	}

	lv := portfolio.BuildList(projects, st)
	p.List = &lv
	w.Header().Set("HX-Replace-Url", lv.ListingURL)
	h.render(w, status, pageIndex, "results", p)
}

// project handles GET /project?slug=&from=.
func (h *Handler) project(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	slug := q.Get(portfolio.ParamSlug)
	from := q.Get(portfolio.ParamFrom)

	if slug == "" {
		dv := portfolio.BuildDetail(nil, "", from)
		p := h.newPage(r, dv.Title)
		p.Detail = &dv
		h.render(w, http.StatusBadRequest, pageProject, "layout", p)
		return
	}

	projects, err := h.src.Fetch(r.Context())
	if err != nil {
		h.fetchFailed(r, err)
		dv := portfolio.BuildDetail(nil, slug, from)
		dv.Title = portfolio.TitleFallback
		p := h.newPage(r, dv.Title)
		p.Error = source.UserMessage(err)
		p.Detail = &dv
		h.render(w, http.StatusBadGateway, pageProject, "layout", p)
		return
	}

	dv := portfolio.BuildDetail(projects, slug, from)
	status := http.StatusOK
	if dv.Status == portfolio.DetailNotFound {
		status = http.StatusNotFound
	}
	p := h.newPage(r, dv.Title)
	p.Detail = &dv
	h.render(w, status, pageProject, "layout", p)
}

// submitContact handles POST /contact. htmx requests get the form fragment
// with status 200 so it is always swapped in; plain form posts get a full
// page carrying the outcome's status.
func (h *Handler) submitContact(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	sub := submissionFrom(r)
	if sub.PageURL == "" {
		sub.PageURL = r.Referer()
	}

	v, err := h.form.Submit(r.Context(), sub)
	data := contactData{Form: v, PageURL: sub.PageURL}

	if isHTMX(r) {
		h.render(w, http.StatusOK, pageContact, "contact", data)
		return
	}

	status := http.StatusOK
	switch {
	case err == nil:
	case apperr.IsValidation(err):
		status = http.StatusBadRequest
	default:
		status = http.StatusBadGateway
	}
	p := h.newPage(r, SiteTitle)
	p.Contact = data
	h.render(w, status, pageContact, "layout", p)
}

// mailto handles GET /contact/mailto, re-rendering the fallback link from the
// current field values.
func (h *Handler) mailto(w http.ResponseWriter, r *http.Request) {
	v := h.form.View(submissionFrom(r))
	h.render(w, http.StatusOK, pageContact, "mailto", v)
}

func submissionFrom(r *http.Request) contact.Submission {
	return contact.Submission{
		Name:      r.FormValue("name"),
		Email:     r.FormValue("email"),
		Message:   r.FormValue("message"),
		PageURL:   r.FormValue("pageUrl"),
		UserAgent: r.UserAgent(),
	}
}

func (h *Handler) fetchFailed(r *http.Request, err error) {
	h.logger.Error("fetch projects failed",
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()))
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// pageURL reconstructs the absolute URL of r for the contact form's
// pageUrl field.
func pageURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if p := r.Header.Get("X-Forwarded-Proto"); p == "http" || p == "https" {
		scheme = p
	}
	return scheme + "://" + r.Host + r.URL.RequestURI()
}

package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/contact"
	"github.com/starford/folio/internal/portfolio"
	"github.com/starford/folio/internal/source"
)

// Handler holds API route handlers.
type Handler struct {
	src     source.Source
	contact *contact.Client
	logger  *slog.Logger
}

// NewHandler creates a new Handler.
func NewHandler(src source.Source, client *contact.Client, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{src: src, contact: client, logger: logger}
}

// ListProjects handles GET /api/projects.
//
//	@Summary		Filtered and sorted project listing
//	@Tags			projects
//	@Produce		json
//	@Param			tag		query		string	false	"Exact tag (ALL for every project)"
//	@Param			q		query		string	false	"Search text"
//	@Param			sort	query		string	false	"Sort order"	Enums(new, old, title)
//	@Success		200		{object}	ListResponse
//	@Failure		502		{object}	errResponse
//	@Router			/projects [get]
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	st := portfolio.ParseState(r.URL.Query())
	projects, err := h.src.Fetch(r.Context())
	if err != nil {
		h.fetchFailed(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, portfolio.BuildList(projects, st))
}

// GetProject handles GET /api/projects/{slug}.
//
//	@Summary		Project detail with sections and neighbours
//	@Tags			projects
//	@Produce		json
//	@Param			slug	path		string	true	"Project slug"
//	@Param			from	query		string	false	"Encoded listing query to link back to"
//	@Success		200		{object}	DetailResponse
//	@Failure		404		{object}	errResponse
//	@Failure		502		{object}	errResponse
//	@Router			/projects/{slug} [get]
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	projects, err := h.src.Fetch(r.Context())
	if err != nil {
		h.fetchFailed(w, r, err)
		return
	}
	v := portfolio.BuildDetail(projects, slug, r.URL.Query().Get(portfolio.ParamFrom))
	if v.Status != portfolio.DetailFound {
		writeJSON(w, http.StatusNotFound, errorBody(apperr.ErrNotFound.Error()))
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// ListTags handles GET /api/tags.
//
//	@Summary		Every tag in the collection
//	@Tags			projects
//	@Produce		json
//	@Success		200	{object}	TagsResponse
//	@Failure		502	{object}	errResponse
//	@Router			/tags [get]
func (h *Handler) ListTags(w http.ResponseWriter, r *http.Request) {
	projects, err := h.src.Fetch(r.Context())
	if err != nil {
		h.fetchFailed(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, TagsResponse{Tags: portfolio.AllTags(projects)})
}

// SubmitContact handles POST /api/contact.
//
//	@Summary		Forward a contact message
//	@Tags			contact
//	@Accept			json
//	@Produce		json
//	@Param			body	body		ContactRequest	true	"Contact form fields"
//	@Success		202		{object}	ContactResponse
//	@Failure		400		{object}	errResponse
//	@Failure		502		{object}	errResponse
//	@Router			/contact [post]
func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if err := readJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	err := h.contact.Submit(r.Context(), req.submission(r.UserAgent()))
	if err == nil {
		writeJSON(w, http.StatusAccepted, ContactResponse{Status: "accepted", Note: contact.NoteSent})
		return
	}

	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		body := errorBody(contact.NoteInvalid)
		body.Fields = make(map[string]string, len(ve.Fields))
		for k, v := range ve.Fields {
			body.Fields[k] = v.Error()
		}
		writeJSON(w, http.StatusBadRequest, body)
		return
	}

	h.logger.Error("contact submit failed", slog.String("error", err.Error()))
	writeJSON(w, http.StatusBadGateway, errorBody(contact.NoteFailed))
}

func (h *Handler) fetchFailed(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("fetch projects failed",
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()))
	writeJSON(w, http.StatusBadGateway, errorBody(source.UserMessage(err)))
}

package api

import (
	"github.com/starford/folio/internal/contact"
	"github.com/starford/folio/internal/portfolio"
)

// ListResponse is the listing page model.
type ListResponse = portfolio.ListView

// DetailResponse is the detail page model.
type DetailResponse = portfolio.DetailView

// TagsResponse lists every tag, ALL first.
type TagsResponse struct {
	Tags []string `json:"tags" validate:"required"`
}

// ContactRequest is the request body for a contact submission.
type ContactRequest struct {
	Name    string `json:"name" example:"山田 花子" validate:"required"`
	Email   string `json:"email" example:"hanako@example.com" validate:"required"`
	Message string `json:"message" example:"お仕事のご相談です。" validate:"required"`
	PageURL string `json:"pageUrl,omitempty" example:"https://example.com/project?slug=cms"`
}

func (req ContactRequest) submission(userAgent string) contact.Submission {
	return contact.Submission{
		Name:      req.Name,
		Email:     req.Email,
		Message:   req.Message,
		PageURL:   req.PageURL,
		UserAgent: userAgent,
	}
}

// ContactResponse acknowledges an accepted submission.
type ContactResponse struct {
	Status string `json:"status" example:"accepted" validate:"required"`
	Note   string `json:"note" validate:"required"`
}

package contact

import (
	"context"
	"log/slog"

	"github.com/starford/folio/internal/apperr"
)

// FormView is the rendered state of the contact form after an interaction.
type FormView struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Message        string `json:"message"`
	Note           string `json:"note"`
	OK             bool   `json:"ok"`
	Mailto         string `json:"mailto"`
	SubmitDisabled bool   `json:"submit_disabled"`
	SubmitLabel    string `json:"submit_label"`
}

// Form drives the contact form: it runs a submission and produces the view to
// render afterwards.
type Form struct {
	client *Client
	to     string
	logger *slog.Logger
}

// NewForm returns a Form that posts through client and offers to as the
// mailto fallback address.
func NewForm(client *Client, to string, logger *slog.Logger) *Form {
	if logger == nil {
		logger = slog.Default()
	}
	return &Form{client: client, to: to, logger: logger}
}

// View returns the form populated with s and no note.
func (f *Form) View(s Submission) FormView {
	return FormView{
		Name:        s.Name,
		Email:       s.Email,
		Message:     s.Message,
		Mailto:      f.Mailto(s),
		SubmitLabel: LabelSubmit,
	}
}

// Mailto returns the fallback link for the current field values.
func (f *Form) Mailto(s Submission) string {
	return Mailto(f.to, s.Name, s.Email, s.Message)
}

// Submit sends s and returns the resulting view along with the error, if
// any. The submit control is re-enabled in every outcome. On success the
// fields are cleared and the mailto link recomputed from the empty form.
func (f *Form) Submit(ctx context.Context, s Submission) (FormView, error) {
	v := f.View(s)

	err := f.client.Submit(ctx, s)
	switch {
	case err == nil:
		v = f.View(Submission{})
		v.Note = NoteSent
		v.OK = true
	case apperr.IsValidation(err):
		v.Note = NoteInvalid
	default:
		f.logger.Error("contact submit failed", slog.String("error", err.Error()))
		v.Note = NoteFailed
	}
	return v, err
}

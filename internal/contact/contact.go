// Package contact validates contact form input, forwards it to the
// notification endpoint and builds the mailto fallback link.
package contact

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/folio/internal/apperr"
)

// User-facing form notes.
const (
	NoteInvalid = "未入力の項目があります。"
	NoteSent    = "送信を受け付けました。ありがとうございました。"
	NoteFailed  = "送信に失敗しました。メール送信（mailto）をご利用ください。"
)

// Submit button labels.
const (
	LabelSubmit  = "送信する"
	LabelPending = "送信中…"
)

// Submission is one contact form post.
type Submission struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Message   string `json:"message"`
	PageURL   string `json:"pageUrl"`
	UserAgent string `json:"ua"`
}

// Normalize returns s with the user-entered fields trimmed.
func (s Submission) Normalize() Submission {
	s.Name = strings.TrimSpace(s.Name)
	s.Email = strings.TrimSpace(s.Email)
	s.Message = strings.TrimSpace(s.Message)
	return s
}

// Validate checks that name, email and message are present after trimming.
func (s Submission) Validate() error {
	n := s.Normalize()
	err := validation.ValidateStruct(&n,
		validation.Field(&n.Name, validation.Required),
		validation.Field(&n.Email, validation.Required),
		validation.Field(&n.Message, validation.Required),
	)
	if err == nil {
		return nil
	}
	if errs, ok := err.(validation.Errors); ok {
		return &apperr.ValidationError{Fields: errs}
	}
	return err
}

// Form returns the submission as the notification endpoint's form body.
func (s Submission) Form() url.Values {
	return url.Values{
		"name":    {s.Name},
		"email":   {s.Email},
		"message": {s.Message},
		"pageUrl": {s.PageURL},
		"ua":      {s.UserAgent},
	}
}

// Client posts submissions to the notification endpoint.
type Client struct {
	endpoint string
	client   *http.Client
}

// NewClient returns a Client for endpoint. A nil client selects
// http.DefaultClient.
func NewClient(endpoint string, client *http.Client) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{endpoint: endpoint, client: client}
}

// Submit validates s and, if it passes, performs exactly one POST. Invalid
// input returns a *apperr.ValidationError without touching the network; a
// transport failure or non-2xx status returns a *apperr.SubmissionError.
// The response body is not inspected.
func (c *Client) Submit(ctx context.Context, s Submission) error {
	s = s.Normalize()
	if err := s.Validate(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(s.Form().Encode()))
	if err != nil {
		return &apperr.SubmissionError{Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=UTF-8")

	resp, err := c.client.Do(req)
	if err != nil {
		return &apperr.SubmissionError{Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &apperr.SubmissionError{Status: resp.StatusCode}
	}
	return nil
}

// Package source loads the project collection from the upstream
// spreadsheet endpoint or, during development, from a local JSON file.
package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/goccy/go-json"

	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/models"
)

// Messages carried by FetchError.
const (
	MsgLoadFailed = "プロジェクトの読み込みに失敗しました"
	MsgNotOK      = "CMS が ok:false を返しました"
	MsgBadPayload = "CMS の応答を解釈できませんでした"
)

// DefaultType is the payload type requested from the endpoint.
const DefaultType = "projects"

// Source fetches the full project collection.
type Source interface {
	Fetch(ctx context.Context) ([]models.Project, error)
}

// HTTP fetches projects from a JSON endpoint. Each Fetch is a single
// uncached GET with no retries.
type HTTP struct {
	endpoint string
	client   *http.Client
}

// NewHTTP returns an HTTP source for endpoint, requesting the given payload
// type. A nil client selects http.DefaultClient.
func NewHTTP(endpoint, payloadType string, client *http.Client) (*HTTP, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("source: parse endpoint: %w", err)
	}
	if payloadType == "" {
		payloadType = DefaultType
	}
	q := u.Query()
	q.Set("type", payloadType)
	u.RawQuery = q.Encode()

	if client == nil {
		client = http.DefaultClient
	}
	return &HTTP{endpoint: u.String(), client: client}, nil
}

// Endpoint returns the resolved request URL.
func (h *HTTP) Endpoint() string { return h.endpoint }

// Fetch implements Source.
func (h *HTTP) Fetch(ctx context.Context) ([]models.Project, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.endpoint, nil)
	if err != nil {
		return nil, &apperr.FetchError{Message: MsgLoadFailed, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, &apperr.FetchError{Message: MsgLoadFailed, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &apperr.FetchError{Status: resp.StatusCode, Message: MsgLoadFailed}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apperr.FetchError{Status: resp.StatusCode, Message: MsgLoadFailed, Err: err}
	}
	return Decode(body)
}

// File reads projects from a local JSON file in either payload shape.
type File struct {
	path string
}

// NewFile returns a File source for path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the file path.
func (f *File) Path() string { return f.path }

// Fetch implements Source.
func (f *File) Fetch(_ context.Context) ([]models.Project, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, &apperr.FetchError{Message: MsgLoadFailed, Err: err}
	}
	return Decode(data)
}

var errInvalidJSON = errors.New("invalid JSON")

type envelope struct {
	OK      *bool           `json:"ok"`
	Message string          `json:"message"`
	Items   json.RawMessage `json:"items"`
}

// Decode parses a projects payload. Two shapes are accepted: a bare array of
// projects, or {"ok": true, "items": [...]}. An object whose ok flag is false
// or missing is an error carrying the server message. A payload without an
// array yields an empty collection.
func Decode(body []byte) ([]models.Project, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, &apperr.FetchError{Message: MsgBadPayload, Err: io.ErrUnexpectedEOF}
	}

	switch trimmed[0] {
	case '[':
		return decodeItems(trimmed)
	case '{':
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, &apperr.FetchError{Message: MsgBadPayload, Err: err}
		}
		if env.OK == nil || !*env.OK {
			msg := env.Message
			if msg == "" {
				msg = MsgNotOK
			}
			return nil, &apperr.FetchError{Message: msg}
		}
		items := bytes.TrimSpace(env.Items)
		if len(items) == 0 || items[0] != '[' {
			return []models.Project{}, nil
		}
		return decodeItems(items)
	}

	if !json.Valid(trimmed) {
		return nil, &apperr.FetchError{Message: MsgBadPayload, Err: errInvalidJSON}
	}
	return []models.Project{}, nil
}

func decodeItems(data []byte) ([]models.Project, error) {
	var items []models.Project
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, &apperr.FetchError{Message: MsgBadPayload, Err: err}
	}
	if items == nil {
		items = []models.Project{}
	}
	return items, nil
}

// UserMessage returns the text to show a visitor when Fetch failed with err.
func UserMessage(err error) string {
	var fe *apperr.FetchError
	if errors.As(err, &fe) && fe.Message != "" {
		return fe.Message
	}
	return MsgLoadFailed
}

// Package models defines the project record as delivered by the data source.
package models

import (
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Project is one portfolio entry. The upstream spreadsheet is loosely typed,
// so the list-valued and numeric fields accept several JSON shapes.
type Project struct {
	Slug       string     `json:"slug"`
	Title      string     `json:"title"`
	Lead       string     `json:"lead"`
	Year       Year       `json:"year"`
	Type       string     `json:"type"`
	Tags       StringList `json:"tags"`
	Role       Role       `json:"role"`
	Highlights StringList `json:"highlights"`

	// Structured sections. When any of these is present they take
	// precedence over the highlights heuristic.
	Context  string     `json:"context,omitempty"`
	Goal     string     `json:"goal,omitempty"`
	Process  StringList `json:"process,omitempty"`
	Outcome  StringList `json:"outcome,omitempty"`
	Learning StringList `json:"learning,omitempty"`
}

// HasTag reports whether tag is one of the project's tags (exact match).
func (p Project) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Year is a release year. Numbers and numeric strings decode as-is; anything
// else, including null or an absent field, is 0.
type Year int

// UnmarshalJSON implements json.Unmarshaler.
func (y *Year) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case float64:
		*y = Year(int(t))
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			n = 0
		}
		*y = Year(n)
	default:
		*y = 0
	}
	return nil
}

// String renders the year, or "" for an unknown year.
func (y Year) String() string {
	if y == 0 {
		return ""
	}
	return strconv.Itoa(int(y))
}

// StringList decodes a JSON array of scalars or a single string.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case nil:
		*l = nil
	case []any:
		out := make(StringList, 0, len(t))
		for _, e := range t {
			if s, ok := scalarString(e); ok {
				out = append(out, s)
			}
		}
		*l = out
	default:
		s, ok := scalarString(t)
		if !ok || strings.TrimSpace(s) == "" {
			*l = nil
			return nil
		}
		*l = StringList{s}
	}
	return nil
}

// Role is the list of roles a project credits. A single string is split on
// "/"; items are trimmed and blanks dropped in both forms.
type Role []string

// UnmarshalJSON implements json.Unmarshaler.
func (r *Role) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	var parts []string
	switch t := v.(type) {
	case nil:
	case []any:
		for _, e := range t {
			if s, ok := scalarString(e); ok {
				parts = append(parts, s)
			}
		}
	default:
		if s, ok := scalarString(t); ok {
			parts = strings.Split(s, "/")
		}
	}
	out := make(Role, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	*r = out
	return nil
}

// String joins the roles for single-line display.
func (r Role) String() string {
	return strings.Join(r, " / ")
}

func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	}
	return "", false
}

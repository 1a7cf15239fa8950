// Package portfolio is the project view-model: URL-backed view state, the
// filter/sort engine, and the listing and detail page models. Nothing here
// touches HTTP or templates.
package portfolio

import (
	"net/url"
)

// AllTag is the tag sentinel meaning "no tag filter".
const AllTag = "ALL"

// SortOrder selects the ordering of the card list.
type SortOrder string

const (
	SortNew   SortOrder = "new"
	SortOld   SortOrder = "old"
	SortTitle SortOrder = "title"
)

// ParseSortOrder returns the order named by s, or SortNew for anything else.
func ParseSortOrder(s string) SortOrder {
	switch o := SortOrder(s); o {
	case SortNew, SortOld, SortTitle:
		return o
	}
	return SortNew
}

// URL query parameter names for the listing page.
const (
	ParamTag  = "tag"
	ParamQ    = "q"
	ParamSort = "sort"
)

// State is the listing page's filter, search and sort selection. It is owned
// by a single request and changes only through its mutators, so it always
// encodes back to a consistent query string.
type State struct {
	tag   string
	query string
	sort  SortOrder
}

// NewState returns the default state: all tags, no query, newest first.
func NewState() *State {
	return &State{tag: AllTag, sort: SortNew}
}

// ParseState reads tag, q and sort from v. Missing or empty values fall back
// to their defaults.
func ParseState(v url.Values) *State {
	s := NewState()
	s.SelectTag(v.Get(ParamTag))
	s.SetQuery(v.Get(ParamQ))
	s.SetSort(v.Get(ParamSort))
	return s
}

func (s *State) Tag() string     { return s.tag }
func (s *State) Query() string   { return s.query }
func (s *State) Sort() SortOrder { return s.sort }

// SelectTag sets the active tag filter. An empty tag selects AllTag.
func (s *State) SelectTag(tag string) {
	if tag == "" {
		tag = AllTag
	}
	s.tag = tag
}

// SetQuery sets the free-text search query. The raw text is kept; trimming
// and case folding happen at match time.
func (s *State) SetQuery(q string) {
	s.query = q
}

// ClearQuery empties the search query.
func (s *State) ClearQuery() {
	s.query = ""
}

// SetSort sets the sort order. Unknown names select SortNew.
func (s *State) SetSort(order string) {
	s.sort = ParseSortOrder(order)
}

// Clone returns an independent copy of s.
func (s *State) Clone() *State {
	c := *s
	return &c
}

// WithTag returns a copy of s with tag selected.
func (s *State) WithTag(tag string) *State {
	c := s.Clone()
	c.SelectTag(tag)
	return c
}

// Values returns the state as query parameters. Parameters equal to their
// default are omitted.
func (s *State) Values() url.Values {
	v := url.Values{}
	if s.tag != "" && s.tag != AllTag {
		v.Set(ParamTag, s.tag)
	}
	if s.query != "" {
		v.Set(ParamQ, s.query)
	}
	if s.sort != "" && s.sort != SortNew {
		v.Set(ParamSort, string(s.sort))
	}
	return v
}

// Encode returns the state as an encoded query string, "" for the default
// state.
func (s *State) Encode() string {
	return s.Values().Encode()
}

// ListingURL returns the listing page path carrying the state.
func (s *State) ListingURL() string {
	if q := s.Encode(); q != "" {
		return "/?" + q
	}
	return "/"
}

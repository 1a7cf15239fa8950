package portfolio

import (
	"slices"
	"strings"

	"github.com/starford/folio/internal/models"
)

// TOCSize is the number of entries in the table of contents.
const TOCSize = 6

// AllTagLabel is the display label of the AllTag filter.
const AllTagLabel = "すべて"

// ListView is everything the listing page renders.
type ListView struct {
	Tag        string       `json:"tag"`
	Query      string       `json:"q"`
	Sort       SortOrder    `json:"sort"`
	ListingURL string       `json:"listing_url"`
	TOC        []TOCEntry   `json:"toc"`
	Tags       []TagFilter  `json:"tags"`
	Sorts      []SortOption `json:"sorts"`
	Cards      []Card       `json:"cards"`
	Shown      int          `json:"shown"`
	Total      int          `json:"total"`
}

// TOCEntry is one line of the table of contents.
type TOCEntry struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
	Meta  string `json:"meta"`
	Year  string `json:"year"`
	Href  string `json:"href"`
}

// TagFilter is one tag filter control.
type TagFilter struct {
	Tag     string `json:"tag"`
	Label   string `json:"label"`
	Pressed bool   `json:"pressed"`
	Href    string `json:"href"`
}

// SortOption is one entry of the sort selector.
type SortOption struct {
	Value    SortOrder `json:"value"`
	Label    string    `json:"label"`
	Selected bool      `json:"selected"`
}

// Card is one project card in the grid.
type Card struct {
	Slug  string   `json:"slug"`
	Title string   `json:"title"`
	Lead  string   `json:"lead"`
	Year  string   `json:"year"`
	Type  string   `json:"type"`
	Tags  []string `json:"tags"`
	Role  string   `json:"role"`
	Href  string   `json:"href"`
}

var sortLabels = []SortOption{
	{Value: SortNew, Label: "新しい順"},
	{Value: SortOld, Label: "古い順"},
	{Value: SortTitle, Label: "タイトル順"},
}

// BuildList derives the listing page model from the full collection and the
// current state.
func BuildList(projects []models.Project, s *State) ListView {
	from := s.Encode()
	filtered := Apply(projects, s)

	cards := make([]Card, 0, len(filtered))
	for _, p := range filtered {
		cards = append(cards, Card{
			Slug:  p.Slug,
			Title: p.Title,
			Lead:  p.Lead,
			Year:  p.Year.String(),
			Type:  p.Type,
			Tags:  nonNil([]string(p.Tags)),
			Role:  p.Role.String(),
			Href:  ProjectHref(p.Slug, from),
		})
	}

	tags := AllTags(projects)
	filters := make([]TagFilter, 0, len(tags))
	for _, t := range tags {
		label := t
		if t == AllTag {
			label = AllTagLabel
		}
		filters = append(filters, TagFilter{
			Tag:     t,
			Label:   label,
			Pressed: t == s.Tag(),
			Href:    s.WithTag(t).ListingURL(),
		})
	}

	sorts := slices.Clone(sortLabels)
	for i := range sorts {
		sorts[i].Selected = sorts[i].Value == s.Sort()
	}

	return ListView{
		Tag:        s.Tag(),
		Query:      s.Query(),
		Sort:       s.Sort(),
		ListingURL: s.ListingURL(),
		TOC:        TOC(projects, from),
		Tags:       filters,
		Sorts:      sorts,
		Cards:      cards,
		Shown:      len(filtered),
		Total:      len(projects),
	}
}

// TOC returns the newest TOCSize projects of the whole collection. Filters
// never apply to it.
func TOC(projects []models.Project, from string) []TOCEntry {
	list := sortByYearDesc(projects)
	if len(list) > TOCSize {
		list = list[:TOCSize]
	}
	out := make([]TOCEntry, 0, len(list))
	for _, p := range list {
		out = append(out, TOCEntry{
			Slug:  p.Slug,
			Title: p.Title,
			Meta:  p.Type + " / " + strings.Join(p.Tags, "・"),
			Year:  p.Year.String(),
			Href:  ProjectHref(p.Slug, from),
		})
	}
	return out
}

// AllTags returns AllTag followed by every distinct tag in the collection in
// Japanese collation order.
func AllTags(projects []models.Project) []string {
	seen := make(map[string]struct{})
	var tags []string
	for _, p := range projects {
		for _, t := range p.Tags {
			if t == AllTag {
				continue
			}
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			tags = append(tags, t)
		}
	}
	c := newCollator()
	slices.SortStableFunc(tags, c.CompareString)
	return append([]string{AllTag}, tags...)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

package portfolio

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/starford/folio/internal/models"
)

// Apply filters and orders projects according to s. The input slice is not
// modified; the result shares no backing array with it.
func Apply(projects []models.Project, s *State) []models.Project {
	list := slices.Clone(projects)

	if tag := s.Tag(); tag != "" && tag != AllTag {
		list = slices.DeleteFunc(list, func(p models.Project) bool {
			return !p.HasTag(tag)
		})
	}

	if q := strings.ToLower(strings.TrimSpace(s.Query())); q != "" {
		list = slices.DeleteFunc(list, func(p models.Project) bool {
			return !strings.Contains(haystack(p), q)
		})
	}

	sortProjects(list, s.Sort())
	return list
}

// haystack is the lower-cased text the search query is matched against.
func haystack(p models.Project) string {
	parts := make([]string, 0, 4+len(p.Tags)+len(p.Highlights))
	parts = append(parts, p.Title, p.Type, p.Lead, p.Role.String())
	parts = append(parts, p.Tags...)
	parts = append(parts, p.Highlights...)
	parts = slices.DeleteFunc(parts, func(s string) bool { return s == "" })
	return strings.ToLower(strings.Join(parts, " "))
}

// sortProjects orders list in place. Equal keys keep their input order.
func sortProjects(list []models.Project, order SortOrder) {
	switch order {
	case SortNew:
		slices.SortStableFunc(list, byYearDesc)
	case SortOld:
		slices.SortStableFunc(list, func(a, b models.Project) int {
			return cmp.Compare(a.Year, b.Year)
		})
	case SortTitle:
		c := newCollator()
		slices.SortStableFunc(list, func(a, b models.Project) int {
			return c.CompareString(a.Title, b.Title)
		})
	}
}

func byYearDesc(a, b models.Project) int {
	return cmp.Compare(b.Year, a.Year)
}

// newCollator returns a Japanese collator. Collators keep internal buffers
// and must not be shared between goroutines.
func newCollator() *collate.Collator {
	return collate.New(language.Japanese)
}

// sortByYearDesc returns a copy of projects, newest first.
func sortByYearDesc(projects []models.Project) []models.Project {
	list := slices.Clone(projects)
	slices.SortStableFunc(list, byYearDesc)
	return list
}

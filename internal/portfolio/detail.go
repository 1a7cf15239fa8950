package portfolio

import (
	"github.com/starford/folio/internal/models"
)

// DetailStatus is the terminal state of a detail page render.
type DetailStatus int

const (
	DetailMissingSlug DetailStatus = iota
	DetailNotFound
	DetailFound
)

func (s DetailStatus) String() string {
	switch s {
	case DetailMissingSlug:
		return "missing_slug"
	case DetailNotFound:
		return "not_found"
	}
	return "found"
}

// Placeholder titles for the unresolved detail states.
const (
	TitleMissingSlug = "プロジェクトが指定されていません"
	TitleNotFound    = "プロジェクトが見つかりません"
	TitleFallback    = "プロジェクト"
)

// DetailView is everything the detail page renders.
type DetailView struct {
	Status   DetailStatus `json:"-"`
	State    string       `json:"status"`
	Title    string       `json:"title"`
	BackHref string       `json:"back_href"`
	Project  *ProjectView `json:"project,omitempty"`
	Prev     NavLink      `json:"prev"`
	Next     NavLink      `json:"next"`
}

// NavLink is a previous/next link. A hidden link keeps its slot in the
// layout.
type NavLink struct {
	Hidden bool   `json:"hidden"`
	Slug   string `json:"slug,omitempty"`
	Title  string `json:"title,omitempty"`
	Href   string `json:"href,omitempty"`
}

// BuildDetail resolves slug against projects and builds the detail page
// model. from is the opaque listing query string to link back to.
func BuildDetail(projects []models.Project, slug, from string) DetailView {
	v := DetailView{
		BackHref: BackHref(from),
		Prev:     NavLink{Hidden: true},
		Next:     NavLink{Hidden: true},
	}

	if slug == "" {
		return v.withStatus(DetailMissingSlug, TitleMissingSlug)
	}

	p, ok := Find(projects, slug)
	if !ok {
		return v.withStatus(DetailNotFound, TitleNotFound)
	}

	pv := Normalize(p)
	v.Project = &pv

	title := p.Title
	if title == "" {
		title = TitleFallback
	}
	v = v.withStatus(DetailFound, title)

	ordered := sortByYearDesc(projects)
	idx := -1
	for i, x := range ordered {
		if x.Slug == p.Slug {
			idx = i
			break
		}
	}
	if idx > 0 {
		v.Prev = navLink(ordered[idx-1], from)
	}
	if idx >= 0 && idx+1 < len(ordered) {
		v.Next = navLink(ordered[idx+1], from)
	}
	return v
}

func (v DetailView) withStatus(s DetailStatus, title string) DetailView {
	v.Status = s
	v.State = s.String()
	v.Title = title
	return v
}

func navLink(p models.Project, from string) NavLink {
	return NavLink{
		Slug:  p.Slug,
		Title: p.Title,
		Href:  ProjectHref(p.Slug, from),
	}
}

// Find returns the first project with the given slug.
func Find(projects []models.Project, slug string) (models.Project, bool) {
	for _, p := range projects {
		if p.Slug == slug {
			return p, true
		}
	}
	return models.Project{}, false
}

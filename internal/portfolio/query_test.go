package portfolio

import (
	"reflect"
	"slices"
	"strings"
	"testing"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"pgregory.net/rapid"

	"github.com/starford/folio/internal/models"
)

func TestApply_TagFilter(t *testing.T) {
	s := NewState()
	s.SelectTag("Design")
	got := slugs(Apply(fixture(), s))
	want := []string{"beta", "epsilon", "delta"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tag filter = %v, want %v", got, want)
	}
}

func TestApply_TextFilterCoversAllFields(t *testing.T) {
	cases := map[string][]string{
		"gateway":  {"alpha"},          // lead
		"RESEARCH": {"delta"},          // type and tag, case-insensitive
		"pm":       {"beta"},           // role
		"api":      {"alpha", "gamma"}, // title, highlights; equal years keep input order
		"  go  ":   {"alpha", "gamma"}, // trimmed query
		"nothing":  {},
	}
	for q, want := range cases {
		s := NewState()
		s.SetQuery(q)
		got := slugs(Apply(fixture(), s))
		if len(want) == 0 && len(got) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("q=%q: got %v, want %v", q, got, want)
		}
	}
}

func TestApply_SortOrders(t *testing.T) {
	s := NewState()
	if got, want := slugs(Apply(fixture(), s)), []string{"beta", "epsilon", "alpha", "gamma", "delta"}; !reflect.DeepEqual(got, want) {
		t.Errorf("new = %v, want %v", got, want)
	}

	s.SetSort("old")
	if got, want := slugs(Apply(fixture(), s)), []string{"delta", "alpha", "gamma", "epsilon", "beta"}; !reflect.DeepEqual(got, want) {
		t.Errorf("old = %v, want %v", got, want)
	}

	s.SetSort("title")
	if got, want := slugs(Apply(fixture(), s)), []string{"alpha", "beta", "delta", "epsilon", "gamma"}; !reflect.DeepEqual(got, want) {
		t.Errorf("title = %v, want %v", got, want)
	}
}

func TestApply_JapaneseTitleCollation(t *testing.T) {
	projects := []models.Project{
		{Slug: "c", Title: "さくら"},
		{Slug: "a", Title: "アオイ"},
		{Slug: "b", Title: "かえで"},
	}
	s := NewState()
	s.SetSort("title")
	got := slugs(Apply(projects, s))
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("collated = %v, want %v", got, want)
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	in := fixture()
	before := slugs(in)
	s := NewState()
	s.SetSort("title")
	out := Apply(in, s)
	if !reflect.DeepEqual(slugs(in), before) {
		t.Errorf("input reordered: %v", slugs(in))
	}
	if len(out) > 0 && &out[0] == &in[0] {
		t.Error("result shares backing array with input")
	}
}

// Property tests.

func genProject() *rapid.Generator[models.Project] {
	tag := rapid.SampledFrom([]string{"Design", "API", "Go", "Research", "ALL"})
	word := rapid.SampledFrom([]string{"api", "Design", "tool", "さくら", "", "Gateway"})
	return rapid.Custom(func(t *rapid.T) models.Project {
		return models.Project{
			Slug:       rapid.StringMatching(`[a-z]{1,6}`).Draw(t, "slug"),
			Title:      word.Draw(t, "title"),
			Lead:       word.Draw(t, "lead"),
			Type:       word.Draw(t, "type"),
			Year:       models.Year(rapid.IntRange(0, 2030).Draw(t, "year")),
			Tags:       rapid.SliceOfN(tag, 0, 3).Draw(t, "tags"),
			Highlights: rapid.SliceOfN(word, 0, 2).Draw(t, "highlights"),
		}
	})
}

func genState(t *rapid.T) *State {
	s := NewState()
	s.SelectTag(rapid.SampledFrom([]string{"ALL", "Design", "API", "Go", "Missing"}).Draw(t, "tag"))
	s.SetQuery(rapid.SampledFrom([]string{"", "api", " DESIGN ", "zzz", "さ"}).Draw(t, "q"))
	s.SetSort(rapid.SampledFrom([]string{"new", "old", "title"}).Draw(t, "sort"))
	return s
}

func TestApply_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		projects := rapid.SliceOfN(genProject(), 0, 12).Draw(t, "projects")
		s := genState(t)
		got := Apply(projects, s)

		// Subset: every result is drawn from the input, without duplication.
		remaining := slices.Clone(projects)
		for _, p := range got {
			i := slices.IndexFunc(remaining, func(x models.Project) bool { return reflect.DeepEqual(x, p) })
			if i < 0 {
				t.Fatalf("fabricated record %+v", p)
			}
			remaining = slices.Delete(remaining, i, i+1)
		}

		// Predicates.
		q := strings.ToLower(strings.TrimSpace(s.Query()))
		for _, p := range got {
			if s.Tag() != AllTag && !p.HasTag(s.Tag()) {
				t.Fatalf("%+v lacks tag %q", p, s.Tag())
			}
			if q != "" && !strings.Contains(haystack(p), q) {
				t.Fatalf("%+v does not match %q", p, q)
			}
		}

		// Order.
		c := collate.New(language.Japanese)
		for i := 1; i < len(got); i++ {
			a, b := got[i-1], got[i]
			switch s.Sort() {
			case SortNew:
				if a.Year < b.Year {
					t.Fatalf("new: %d before %d", a.Year, b.Year)
				}
			case SortOld:
				if a.Year > b.Year {
					t.Fatalf("old: %d before %d", a.Year, b.Year)
				}
			case SortTitle:
				if c.CompareString(a.Title, b.Title) > 0 {
					t.Fatalf("title: %q before %q", a.Title, b.Title)
				}
			}
		}
	})
}

func TestTOC_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		projects := rapid.SliceOfN(genProject(), 0, 15).Draw(t, "projects")
		view := BuildList(projects, genState(t))

		want := min(len(projects), TOCSize)
		if len(view.TOC) != want {
			t.Fatalf("toc len = %d, want %d", len(view.TOC), want)
		}
		ordered := sortByYearDesc(projects)
		for i, e := range view.TOC {
			if e.Slug != ordered[i].Slug {
				t.Fatalf("toc[%d] = %q, want %q", i, e.Slug, ordered[i].Slug)
			}
		}
		if view.Total != len(projects) {
			t.Fatalf("total = %d, want %d", view.Total, len(projects))
		}
		if view.Shown != len(view.Cards) {
			t.Fatalf("shown = %d, cards = %d", view.Shown, len(view.Cards))
		}
	})
}

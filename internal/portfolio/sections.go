package portfolio

import (
	"strings"

	"github.com/starford/folio/internal/models"
)

// Shape records where a project's detail sections came from.
type Shape int

const (
	// ShapeHighlightsOnly projects derive their sections from labelled
	// highlight lines.
	ShapeHighlightsOnly Shape = iota
	// ShapeRich projects carry explicit section fields.
	ShapeRich
)

func (s Shape) String() string {
	if s == ShapeRich {
		return "rich"
	}
	return "highlights"
}

// MarshalText implements encoding.TextMarshaler.
func (s Shape) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Sections are the six detail page boxes.
type Sections struct {
	Context  string   `json:"context"`
	Goal     string   `json:"goal"`
	Process  []string `json:"process"`
	Outcome  []string `json:"outcome"`
	Learning []string `json:"learning"`
	Role     []string `json:"role"`
}

// ProjectView is a project resolved to a single shape-agnostic form.
type ProjectView struct {
	models.Project
	Shape    Shape    `json:"shape"`
	Sections Sections `json:"sections"`
}

// Label prefixes, each listed in full-width and half-width colon form.
var (
	contextPrefixes  = prefixes("背景", "課題")
	goalPrefixes     = prefixes("目的")
	processPrefixes  = prefixes("進め方", "工夫", "プロセス")
	outcomePrefixes  = prefixes("成果")
	learningPrefixes = prefixes("学び")

	knownPrefixes = concat(contextPrefixes, goalPrefixes, processPrefixes, outcomePrefixes, learningPrefixes)
)

func prefixes(labels ...string) []string {
	out := make([]string, 0, 2*len(labels))
	for _, l := range labels {
		out = append(out, l+"：", l+":")
	}
	return out
}

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

// Normalize resolves p into a ProjectView. Explicit section fields win over
// the highlights heuristic.
func Normalize(p models.Project) ProjectView {
	v := ProjectView{Project: p}
	if hasRichSections(p) {
		v.Shape = ShapeRich
		v.Sections = Sections{
			Context:  strings.TrimSpace(p.Context),
			Goal:     strings.TrimSpace(p.Goal),
			Process:  cleanLines(p.Process),
			Outcome:  cleanLines(p.Outcome),
			Learning: cleanLines(p.Learning),
		}
	} else {
		v.Shape = ShapeHighlightsOnly
		v.Sections = DeriveSections(p.Highlights)
	}
	v.Sections.Role = cleanLines(p.Role)
	return v
}

func hasRichSections(p models.Project) bool {
	return strings.TrimSpace(p.Context) != "" ||
		strings.TrimSpace(p.Goal) != "" ||
		len(p.Process) > 0 ||
		len(p.Outcome) > 0 ||
		len(p.Learning) > 0
}

// DeriveSections splits labelled highlight lines into sections. Context and
// goal lines are joined with newlines. Lines with no known label are appended
// to Process. Role is left empty.
func DeriveSections(highlights []string) Sections {
	lines := cleanLines(highlights)

	var other []string
	for _, line := range lines {
		if _, ok := stripPrefix(line, knownPrefixes); !ok {
			other = append(other, line)
		}
	}

	return Sections{
		Context:  strings.Join(pick(lines, contextPrefixes), "\n"),
		Goal:     strings.Join(pick(lines, goalPrefixes), "\n"),
		Process:  append(pick(lines, processPrefixes), other...),
		Outcome:  pick(lines, outcomePrefixes),
		Learning: pick(lines, learningPrefixes),
		Role:     []string{},
	}
}

// pick returns the remainder of every line starting with one of prefixes.
func pick(lines, prefixes []string) []string {
	found := []string{}
	for _, line := range lines {
		if rest, ok := stripPrefix(line, prefixes); ok {
			found = append(found, rest)
		}
	}
	return found
}

func stripPrefix(line string, prefixes []string) (string, bool) {
	for _, p := range prefixes {
		if rest, ok := strings.CutPrefix(line, p); ok {
			return strings.TrimSpace(rest), true
		}
	}
	return "", false
}

func cleanLines[S ~[]string](in S) []string {
	out := []string{}
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

package portfolio

import (
	"github.com/starford/folio/internal/models"
)

// fixture is a small collection covering ties, a missing year and shared tags.
func fixture() []models.Project {
	return []models.Project{
		{Slug: "alpha", Title: "Alpha API", Lead: "REST gateway", Year: 2022, Type: "Web", Tags: models.StringList{"API", "Go"}, Role: models.Role{"Backend"}},
		{Slug: "beta", Title: "Beta Design", Lead: "UI refresh", Year: 2024, Type: "Design", Tags: models.StringList{"Design"}, Role: models.Role{"Designer", "PM"}},
		{Slug: "gamma", Title: "Gamma", Lead: "Internal tool", Year: 2022, Type: "Tool", Tags: models.StringList{"Go"}, Highlights: models.StringList{"成果：api latency halved"}},
		{Slug: "delta", Title: "Delta", Lead: "Prototype", Type: "Research", Tags: models.StringList{"Design", "Research"}},
		{Slug: "epsilon", Title: "Epsilon", Lead: "Landing page", Year: 2023, Type: "Web", Tags: models.StringList{"Design"}},
	}
}

func slugs(list []models.Project) []string {
	out := make([]string, len(list))
	for i, p := range list {
		out[i] = p.Slug
	}
	return out
}

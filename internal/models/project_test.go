package models

import (
	"reflect"
	"testing"

	"github.com/goccy/go-json"
)

func TestProjectDecode_LooseShapes(t *testing.T) {
	raw := `{
		"slug": "s1",
		"title": "Alpha",
		"year": "2023",
		"tags": ["Design", 42, null, true],
		"role": "PM / Design / ",
		"highlights": "背景：A"
	}`
	var p Project
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if p.Year != 2023 {
		t.Errorf("year = %d, want 2023", p.Year)
	}
	if want := (StringList{"Design", "42", "true"}); !reflect.DeepEqual(p.Tags, want) {
		t.Errorf("tags = %#v, want %#v", p.Tags, want)
	}
	if want := (Role{"PM", "Design"}); !reflect.DeepEqual(p.Role, want) {
		t.Errorf("role = %#v, want %#v", p.Role, want)
	}
	if want := (StringList{"背景：A"}); !reflect.DeepEqual(p.Highlights, want) {
		t.Errorf("highlights = %#v, want %#v", p.Highlights, want)
	}
}

func TestYearDecode(t *testing.T) {
	cases := map[string]Year{
		`2021`:     2021,
		`2021.0`:   2021,
		`" 2020 "`: 2020,
		`"soon"`:   0,
		`""`:       0,
		`null`:     0,
		`false`:    0,
	}
	for in, want := range cases {
		var y Year
		if err := json.Unmarshal([]byte(in), &y); err != nil {
			t.Fatalf("%s: %v", in, err)
		}
		if y != want {
			t.Errorf("%s: year = %d, want %d", in, y, want)
		}
	}
}

func TestYearAbsent(t *testing.T) {
	var p Project
	if err := json.Unmarshal([]byte(`{"slug":"x"}`), &p); err != nil {
		t.Fatal(err)
	}
	if p.Year != 0 || p.Year.String() != "" {
		t.Errorf("absent year = %d (%q), want 0", p.Year, p.Year.String())
	}
}

func TestRoleArray(t *testing.T) {
	var r Role
	if err := json.Unmarshal([]byte(`[" Lead ", "", "Dev"]`), &r); err != nil {
		t.Fatal(err)
	}
	if want := (Role{"Lead", "Dev"}); !reflect.DeepEqual(r, want) {
		t.Errorf("role = %#v, want %#v", r, want)
	}
	if r.String() != "Lead / Dev" {
		t.Errorf("String() = %q", r.String())
	}
}

func TestHasTag(t *testing.T) {
	p := Project{Tags: StringList{"Design", "API"}}
	if !p.HasTag("API") {
		t.Error("expected API tag")
	}
	if p.HasTag("api") {
		t.Error("tag match must be exact")
	}
}

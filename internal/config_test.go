package internal

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	pkgconfig "github.com/starford/folio/pkg/config"
)

func validConfig() *Config {
	cfg := NewDefaultConfig()
	cfg.Source.Endpoint = "https://script.example.com/exec"
	cfg.Contact.Endpoint = "https://script.example.com/notify"
	cfg.Contact.Mailto = "me@example.com"
	return cfg
}

func TestDefaultConfig_NeedsSourceAndContact(t *testing.T) {
	if err := NewDefaultConfig().Validate(); err == nil {
		t.Fatal("default config should not validate without source and contact")
	}
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("valid config failed: %v", err)
	}
}

func TestSourceConfig_ExactlyOne(t *testing.T) {
	cases := []struct {
		name     string
		endpoint string
		file     string
		wantErr  bool
	}{
		{"endpoint", "https://example.com/exec", "", false},
		{"file", "", "testdata/projects.json", false},
		{"neither", "", "", true},
		{"both", "https://example.com/exec", "projects.json", true},
		{"bad url", "not a url", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := SourceConfig{Endpoint: tc.endpoint, File: tc.file}
			err := c.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestSourceConfig_DefaultType(t *testing.T) {
	c := SourceConfig{File: "projects.json"}
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}
	if c.Type != "projects" {
		t.Errorf("type = %q, want projects", c.Type)
	}
}

func TestContactConfig_Invalid(t *testing.T) {
	cfg := validConfig()
	cfg.Contact.Mailto = "not-an-address"
	err := cfg.Validate()
	if err == nil || !strings.Contains(strings.ToLower(err.Error()), "mailto") {
		t.Errorf("err = %v, want mailto error", err)
	}
}

func TestHTTPConfig_PortRange(t *testing.T) {
	cfg := validConfig()
	cfg.App.HTTP.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Error("port out of range should fail")
	}
}

func TestLiveReloadEnabled(t *testing.T) {
	cfg := validConfig()
	cfg.LiveReload = true
	if cfg.LiveReloadEnabled() {
		t.Error("live reload needs a file source")
	}
	cfg.Source = SourceConfig{File: "projects.json"}
	if !cfg.LiveReloadEnabled() {
		t.Error("live reload should be on for a file source")
	}
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("FOLIO_TEST_NOTIFY", "https://hooks.example.com/contact")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `app:
  log_level: debug
  http:
    port: 9090
source:
  file: projects.json
contact:
  endpoint: ${FOLIO_TEST_NOTIFY}
  mailto: me@example.com
live_reload: true
cors:
  allowed_origins: ["https://example.com"]
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := NewDefaultConfig()
	if err := pkgconfig.Load(path, cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Contact.Endpoint != "https://hooks.example.com/contact" {
		t.Errorf("endpoint = %q", cfg.Contact.Endpoint)
	}
	if cfg.App.LogLevel != slog.LevelDebug || cfg.App.HTTP.Port != 9090 {
		t.Errorf("app = %+v", cfg.App)
	}
	if !cfg.LiveReloadEnabled() || cfg.Source.Type != "projects" {
		t.Errorf("source = %+v, live reload = %v", cfg.Source, cfg.LiveReload)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "https://example.com" {
		t.Errorf("cors = %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoadOptional_MissingFileValidatesDefaults(t *testing.T) {
	cfg := NewDefaultConfig()
	err := pkgconfig.LoadOptional(filepath.Join(t.TempDir(), "missing.yaml"), cfg)
	if err == nil || !strings.Contains(err.Error(), "validation failed") {
		t.Errorf("err = %v, want validation failure", err)
	}
}

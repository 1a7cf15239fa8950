package internal

import (
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/starford/folio/internal/source"
)

// Config represents the application configuration.
type Config struct {
	App        ApplicationConfig `yaml:"app"`
	Source     SourceConfig      `yaml:"source"`
	Contact    ContactConfig     `yaml:"contact"`
	CORS       CORSConfig        `yaml:"cors"`
	LiveReload bool              `yaml:"live_reload"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Source.Validate(); err != nil {
		return err
	}
	return c.Contact.Validate()
}

// LiveReloadEnabled reports whether file changes should be pushed to pages.
// Only a file source can change underneath the server.
func (c *Config) LiveReloadEnabled() bool {
	return c.LiveReload && c.Source.File != ""
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// SourceConfig selects where projects come from. Exactly one of Endpoint
// and File must be set.
type SourceConfig struct {
	Endpoint string `yaml:"endpoint"`
	File     string `yaml:"file"`
	Type     string `yaml:"type"`
}

// Validate validates the source configuration.
func (c *SourceConfig) Validate() error {
	if c.Type == "" {
		c.Type = source.DefaultType
	}
	if (c.Endpoint == "") == (c.File == "") {
		return fmt.Errorf("source: exactly one of endpoint or file must be set")
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Endpoint, is.URL),
	)
}

// ContactConfig holds the notification endpoint and the fallback address.
type ContactConfig struct {
	Endpoint string `yaml:"endpoint"`
	Mailto   string `yaml:"mailto"`
}

// Validate validates the contact configuration.
func (c *ContactConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Endpoint, validation.Required, is.URL),
		validation.Field(&c.Mailto, validation.Required, is.Email),
	)
}

// CORSConfig controls cross-origin access to the JSON API.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Source: SourceConfig{
			Type: source.DefaultType,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
	}
}

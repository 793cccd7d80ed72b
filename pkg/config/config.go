// Package config resolves signup settings from defaults, an optional YAML
// file and environment overrides, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables consulted by Load.
const (
	EnvBaseURL      = "SIGNUP_BASE_URL"
	EnvEndpointPath = "SIGNUP_ENDPOINT_PATH"
	EnvTimeout      = "SIGNUP_TIMEOUT"
	EnvThemeVariant = "SIGNUP_THEME_VARIANT"
	EnvLogLevel     = "SIGNUP_LOG_LEVEL"
)

// Config is the resolved runtime configuration.
type Config struct {
	Endpoint Endpoint `yaml:"endpoint"`
	Elements Elements `yaml:"elements"`
	CSRF     CSRF     `yaml:"csrf"`
	Theme    Theme    `yaml:"theme"`
	Log      Log      `yaml:"log"`
}

// Endpoint locates the subscription endpoint.
type Endpoint struct {
	BaseURL string        `yaml:"base_url"`
	Path    string        `yaml:"path"`
	Timeout time.Duration `yaml:"timeout"`
}

// Elements lists the page identifiers the controller binds. Submit holds the
// primary identifier followed by fallbacks.
type Elements struct {
	Form    string   `yaml:"form"`
	Email   string   `yaml:"email"`
	Name    string   `yaml:"name"`
	Submit  []string `yaml:"submit"`
	Error   string   `yaml:"error"`
	Success string   `yaml:"success"`
}

// CSRF names the hidden token input and the header it is echoed in.
type CSRF struct {
	Field  string `yaml:"field"`
	Header string `yaml:"header"`
}

// Theme selects the feedback palette.
type Theme struct {
	Name    string `yaml:"name"`
	Variant string `yaml:"variant"`
}

// Log configures the zap logger built by the CLI.
type Log struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the built-in configuration matching the stock page markup.
func Default() Config {
	return Config{
		Endpoint: Endpoint{
			BaseURL: "http://localhost:8000",
			Path:    "/subscribe/",
			Timeout: 30 * time.Second,
		},
		Elements: Elements{
			Form:    "subscriptionForm",
			Email:   "userEmail",
			Name:    "userName",
			Submit:  []string{"submitBtn", "submit"},
			Error:   "errorMessage",
			Success: "successMessage",
		},
		CSRF: CSRF{
			Field:  "csrfmiddlewaretoken",
			Header: "X-CSRFToken",
		},
		Theme: Theme{
			Name:    "signup",
			Variant: "default",
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Load resolves configuration: defaults, then the file at path (when path is
// non-empty), then environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path = strings.TrimSpace(path); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := Merge(&cfg, data); err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Merge decodes YAML over cfg; keys absent from the document keep their
// current values.
func Merge(cfg *Config, data []byte) error {
	if cfg == nil {
		return errors.New("config: target is nil")
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: decode yaml: %w", err)
	}
	return nil
}

// Validate checks the fields the controller cannot work without.
func (c Config) Validate() error {
	var missing []string
	check := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	check("endpoint.path", c.Endpoint.Path)
	check("elements.form", c.Elements.Form)
	check("elements.email", c.Elements.Email)
	check("elements.name", c.Elements.Name)
	check("elements.error", c.Elements.Error)
	check("elements.success", c.Elements.Success)
	if len(c.Elements.Submit) == 0 {
		missing = append(missing, "elements.submit")
	}
	if len(missing) > 0 {
		return fmt.Errorf("config: missing required settings: %s", strings.Join(missing, ", "))
	}
	if c.Endpoint.Timeout < 0 {
		return fmt.Errorf("config: endpoint.timeout must not be negative")
	}
	return nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvBaseURL); ok && strings.TrimSpace(v) != "" {
		cfg.Endpoint.BaseURL = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvEndpointPath); ok && strings.TrimSpace(v) != "" {
		cfg.Endpoint.Path = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvTimeout); ok && strings.TrimSpace(v) != "" {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvTimeout, err)
		}
		cfg.Endpoint.Timeout = d
	}
	if v, ok := lookup(EnvThemeVariant); ok && strings.TrimSpace(v) != "" {
		cfg.Theme.Variant = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(v) != "" {
		cfg.Log.Level = strings.TrimSpace(v)
	}
	return nil
}

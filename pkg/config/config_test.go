package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	for _, key := range []string{EnvBaseURL, EnvEndpointPath, EnvTimeout, EnvThemeVariant, EnvLogLevel} {
		t.Setenv(key, "")
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMergesFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "signup.yaml")
	const doc = `
endpoint:
  base_url: https://news.example.com
  timeout: 5s
elements:
  submit: [joinBtn]
theme:
  variant: dark
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv(EnvBaseURL, "")
	t.Setenv(EnvEndpointPath, "/newsletter/subscribe/")
	t.Setenv(EnvTimeout, "")
	t.Setenv(EnvThemeVariant, "")
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := Default()
	want.Endpoint.BaseURL = "https://news.example.com"
	want.Endpoint.Timeout = 5 * time.Second
	want.Endpoint.Path = "/newsletter/subscribe/"
	want.Elements.Submit = []string{"joinBtn"}
	want.Theme.Variant = "dark"
	want.Log.Level = "debug"

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	t.Setenv(EnvTimeout, "soon")
	if _, err := Load(""); err == nil || !strings.Contains(err.Error(), EnvTimeout) {
		t.Fatalf("expected timeout parse error, got %v", err)
	}
}

func TestValidateReportsMissing(t *testing.T) {
	cfg := Default()
	cfg.Elements.Email = " "
	cfg.Elements.Submit = nil

	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, want := range []string{"elements.email", "elements.submit"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %v", want, err)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected read error")
	}
}

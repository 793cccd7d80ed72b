package feedback

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// DefaultThemeName is the manifest shipped with the package.
const DefaultThemeName = "signup"

// Token keys read from the selected theme.
const (
	TokenErrorFG       = "error.fg"
	TokenErrorBG       = "error.bg"
	TokenSuccessFG     = "success.fg"
	TokenSuccessBG     = "success.bg"
	TokenSpinnerBorder = "spinner.border"
)

// DefaultManifest returns the built-in palette with a dark variant.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			TokenErrorFG:       "#dc3545",
			TokenErrorBG:       "#f8d7da",
			TokenSuccessFG:     "#28a745",
			TokenSuccessBG:     "#d4edda",
			TokenSpinnerBorder: "#fff",
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					TokenErrorFG:   "#f1aeb5",
					TokenErrorBG:   "#2c0b0e",
					TokenSuccessFG: "#a3cfbb",
					TokenSuccessBG: "#051b11",
				},
			},
		},
	}
}

// StaticSelector resolves selections from an in-memory set of manifests.
type StaticSelector struct {
	manifests map[string]*theme.Manifest
	fallback  string
}

var _ theme.ThemeSelector = (*StaticSelector)(nil)

// NewStaticSelector registers the manifests; the first one is used when a
// caller asks for an empty theme name.
func NewStaticSelector(manifests ...*theme.Manifest) *StaticSelector {
	s := &StaticSelector{manifests: make(map[string]*theme.Manifest, len(manifests))}
	for _, m := range manifests {
		if m == nil || strings.TrimSpace(m.Name) == "" {
			continue
		}
		if s.fallback == "" {
			s.fallback = m.Name
		}
		s.manifests[m.Name] = m
	}
	return s
}

// Select implements theme.ThemeSelector.
func (s *StaticSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = s.fallback
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("feedback: unknown theme %q", name)
	}
	variant = strings.TrimSpace(variant)
	if variant != "" && variant != "default" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("feedback: theme %q has no variant %q", name, variant)
		}
	}
	return &theme.Selection{
		Theme:    name,
		Variant:  variant,
		Manifest: manifest,
	}, nil
}

// ResolveTokens merges the manifest tokens with the selected variant's
// overrides.
func ResolveTokens(selection *theme.Selection) map[string]string {
	out := make(map[string]string)
	if selection == nil || selection.Manifest == nil {
		return out
	}
	for key, value := range selection.Manifest.Tokens {
		out[key] = value
	}
	if v, ok := selection.Manifest.Variants[selection.Variant]; ok {
		for key, value := range v.Tokens {
			out[key] = value
		}
	}
	return out
}

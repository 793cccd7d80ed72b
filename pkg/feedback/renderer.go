// Package feedback renders the markup the signup controller places on the
// page: message blocks for the error and success regions and the loading label
// of the submit control.
package feedback

import (
	"embed"
	"errors"
	"fmt"
	"html"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// Kind selects the message region.
type Kind string

const (
	KindError   Kind = "error"
	KindSuccess Kind = "success"
)

// DefaultLoadingText is shown next to the spinner while a request is in
// flight.
const DefaultLoadingText = "Processing..."

// Option configures a Renderer.
type Option func(*config)

type config struct {
	templates   fs.FS
	selector    theme.ThemeSelector
	themeName   string
	variant     string
	loadingText string
}

// WithTemplates overrides the template filesystem. It must provide
// message.tpl and loading.tpl at its root.
func WithTemplates(fsys fs.FS) Option {
	return func(cfg *config) {
		if fsys != nil {
			cfg.templates = fsys
		}
	}
}

// WithThemeSelector swaps the go-theme selector used for style tokens.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(cfg *config) {
		if selector != nil {
			cfg.selector = selector
		}
	}
}

// WithTheme picks the theme and variant handed to the selector.
func WithTheme(name, variant string) Option {
	return func(cfg *config) {
		cfg.themeName = strings.TrimSpace(name)
		cfg.variant = strings.TrimSpace(variant)
	}
}

// WithLoadingText overrides the text shown next to the spinner.
func WithLoadingText(text string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			cfg.loadingText = trimmed
		}
	}
}

// Renderer produces message and loading markup. It is safe for concurrent
// use.
type Renderer struct {
	message     *pongo2.Template
	loading     *pongo2.Template
	tokens      map[string]string
	loadingText string

	mu sync.Mutex
}

// TemplatesFS exposes the built-in templates.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

// New constructs a Renderer using the embedded templates and default theme
// unless overridden.
func New(options ...Option) (*Renderer, error) {
	cfg := &config{
		templates:   TemplatesFS(),
		selector:    NewStaticSelector(DefaultManifest()),
		themeName:   DefaultThemeName,
		loadingText: DefaultLoadingText,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	selection, err := cfg.selector.Select(cfg.themeName, cfg.variant)
	if err != nil {
		return nil, fmt.Errorf("feedback: select theme: %w", err)
	}

	set := pongo2.NewSet("signup-feedback", pongo2.NewFSLoader(cfg.templates))
	message, err := set.FromFile("message.tpl")
	if err != nil {
		return nil, fmt.Errorf("feedback: load message template: %w", err)
	}
	loading, err := set.FromFile("loading.tpl")
	if err != nil {
		return nil, fmt.Errorf("feedback: load loading template: %w", err)
	}

	return &Renderer{
		message:     message,
		loading:     loading,
		tokens:      ResolveTokens(selection),
		loadingText: cfg.loadingText,
	}, nil
}

// Message renders the block shown in the region for kind. The text is
// sanitised so that only inline formatting survives.
func (r *Renderer) Message(kind Kind, text string) (string, error) {
	if r == nil {
		return "", errors.New("feedback: renderer is nil")
	}
	var title, fg, bg string
	switch kind {
	case KindError:
		title, fg, bg = "Error", r.tokens[TokenErrorFG], r.tokens[TokenErrorBG]
	case KindSuccess:
		title, fg, bg = "Success", r.tokens[TokenSuccessFG], r.tokens[TokenSuccessBG]
	default:
		return "", fmt.Errorf("feedback: unknown message kind %q", kind)
	}

	return r.execute(r.message, pongo2.Context{
		"kind":  string(kind),
		"title": title,
		"fg":    fg,
		"bg":    bg,
		"text":  SanitizeText(text),
	})
}

// Loading renders the submit control label shown while a request is in
// flight.
func (r *Renderer) Loading() (string, error) {
	if r == nil {
		return "", errors.New("feedback: renderer is nil")
	}
	return r.execute(r.loading, pongo2.Context{
		"spinner": r.tokens[TokenSpinnerBorder],
		"label":   r.loadingText,
	})
}

// Token returns a resolved theme token.
func (r *Renderer) Token(key string) string {
	if r == nil {
		return ""
	}
	return r.tokens[key]
}

func (r *Renderer) execute(tpl *pongo2.Template, ctx pongo2.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out, err := tpl.Execute(ctx)
	if err != nil {
		return "", fmt.Errorf("feedback: execute template: %w", err)
	}
	return strings.TrimSpace(out), nil
}

var (
	inlineOnce   sync.Once
	inlinePolicy *bluemonday.Policy
	strictOnce   sync.Once
	strictPolicy *bluemonday.Policy
)

// SanitizeText keeps inline formatting and links and drops everything else,
// including script content.
func SanitizeText(raw string) string {
	inlineOnce.Do(func() {
		policy := bluemonday.NewPolicy()
		policy.AllowElements("b", "strong", "i", "em", "br", "code")
		policy.AllowAttrs("href").OnElements("a")
		policy.AllowStandardURLs()
		policy.RequireNoFollowOnLinks(true)
		inlinePolicy = policy
	})
	return strings.TrimSpace(inlinePolicy.Sanitize(raw))
}

// PlainText strips all markup and collapses whitespace, for terminal output
// and assertions.
func PlainText(markup string) string {
	strictOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
		strictPolicy.AddSpaceWhenStrippingTag(true)
	})
	text := html.UnescapeString(strictPolicy.Sanitize(markup))
	return strings.Join(strings.Fields(text), " ")
}

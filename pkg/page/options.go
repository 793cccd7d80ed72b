package page

import (
	"net/http"

	"github.com/goliatone/go-signup/pkg/config"
)

// GuardFunc rejects a page request by returning an error. Errors implementing
// HTTPError choose the status code.
type GuardFunc func(r *http.Request) error

// TokenFunc issues the anti-forgery token embedded in the served page.
type TokenFunc func(r *http.Request) (string, error)

type Options struct {
	RoutePath   string
	Title       string
	Heading     string
	ButtonLabel string
	Action      string
	Elements    config.Elements
	CSRFField   string
	Hidden      map[string]string
	Scripts     []string
	Token       TokenFunc
	Guard       GuardFunc
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	defaults := config.Default()
	return Options{
		RoutePath:   "/",
		Title:       "Newsletter",
		Heading:     "Subscribe to our newsletter",
		ButtonLabel: "Subscribe Now",
		Action:      defaults.Endpoint.Path,
		Elements:    defaults.Elements,
		CSRFField:   defaults.CSRF.Field,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	defaults := DefaultOptions()
	if opts.RoutePath == "" {
		opts.RoutePath = defaults.RoutePath
	}
	if opts.Action == "" {
		opts.Action = defaults.Action
	}
	if opts.CSRFField == "" {
		opts.CSRFField = defaults.CSRFField
	}
	if len(opts.Elements.Submit) == 0 {
		opts.Elements.Submit = defaults.Elements.Submit
	}
	if opts.Hidden != nil {
		opts.Hidden = MergeHiddenFields(opts.Hidden)
	}
	if opts.Scripts != nil {
		opts.Scripts = append([]string{}, opts.Scripts...)
	}
	return opts
}

// FromConfig applies the element ids, endpoint path and token field name of
// a resolved configuration.
func FromConfig(cfg config.Config) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Elements = cfg.Elements
		o.Action = cfg.Endpoint.Path
		o.CSRFField = cfg.CSRF.Field
	}
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithTitle(title string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Title = title
	}
}

func WithHeading(heading string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Heading = heading
	}
}

func WithButtonLabel(label string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.ButtonLabel = label
	}
}

// WithCSRFToken embeds a fixed token under the configured field name.
func WithCSRFToken(token string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Token = func(*http.Request) (string, error) { return token, nil }
	}
}

func WithTokenFunc(fn TokenFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Token = fn
	}
}

func WithHiddenFields(fields ...HiddenField) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Hidden = MergeHiddenFields(o.Hidden, fields...)
	}
}

// WithScripts appends script sources, for example the wasm loader.
func WithScripts(src ...string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Scripts = append(o.Scripts, src...)
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

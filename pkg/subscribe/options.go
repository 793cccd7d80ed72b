package subscribe

import (
	"context"
	"strings"

	"github.com/go-logr/logr"

	"github.com/goliatone/go-signup/pkg/config"
	"github.com/goliatone/go-signup/pkg/contract"
	"github.com/goliatone/go-signup/pkg/feedback"
	"github.com/goliatone/go-signup/pkg/transport"
)

// DefaultLabel is restored on the submit control when the captured label was
// empty.
const DefaultLabel = "Subscribe Now"

// Identifiers lists the element ids the controller binds. Submit holds the
// primary id followed by fallbacks.
type Identifiers struct {
	Form    string
	Email   string
	Name    string
	Submit  []string
	Error   string
	Success string
}

// DefaultIdentifiers matches the stock page markup.
func DefaultIdentifiers() Identifiers {
	return IdentifiersFromConfig(config.Default().Elements)
}

// IdentifiersFromConfig converts the config section into Identifiers.
func IdentifiersFromConfig(el config.Elements) Identifiers {
	return Identifiers{
		Form:    el.Form,
		Email:   el.Email,
		Name:    el.Name,
		Submit:  append([]string(nil), el.Submit...),
		Error:   el.Error,
		Success: el.Success,
	}
}

// Option configures a Controller.
type Option func(*Controller)

// WithIdentifiers overrides the element ids.
func WithIdentifiers(ids Identifiers) Option {
	return func(c *Controller) {
		c.ids = ids
	}
}

// WithCSRF overrides the hidden input name the token is read from and the
// header it is echoed in.
func WithCSRF(field, header string) Option {
	return func(c *Controller) {
		if field = strings.TrimSpace(field); field != "" {
			c.csrfField = field
		}
		if header = strings.TrimSpace(header); header != "" {
			c.csrfHeader = header
		}
	}
}

// WithEndpointPath overrides the path submissions are posted to. Without it
// the path comes from the endpoint contract.
func WithEndpointPath(path string) Option {
	return func(c *Controller) {
		c.endpointPath = strings.TrimSpace(path)
	}
}

// WithTransport supplies the HTTP client. The anti-forgery header is
// installed on it as a default header.
func WithTransport(client *transport.Client) Option {
	return func(c *Controller) {
		if client != nil {
			c.client = client
		}
	}
}

// WithRenderer supplies the feedback renderer.
func WithRenderer(renderer *feedback.Renderer) Option {
	return func(c *Controller) {
		if renderer != nil {
			c.renderer = renderer
		}
	}
}

// WithContract supplies a preloaded endpoint contract.
func WithContract(doc *contract.Contract) Option {
	return func(c *Controller) {
		if doc != nil {
			c.contract = doc
		}
	}
}

// WithLogger attaches a logger. Debug traces are written at V(1).
func WithLogger(logger logr.Logger) Option {
	return func(c *Controller) {
		c.log = logger
	}
}

// WithDispatcher replaces how event handlers run a submission. The default
// starts a goroutine so host callbacks return immediately.
func WithDispatcher(dispatch func(func())) Option {
	return func(c *Controller) {
		if dispatch != nil {
			c.dispatch = dispatch
		}
	}
}

// WithContext sets the context used for submissions triggered by page events.
func WithContext(ctx context.Context) Option {
	return func(c *Controller) {
		if ctx != nil {
			c.baseCtx = ctx
		}
	}
}

// WithDefaultLabel overrides the fallback label of the submit control.
func WithDefaultLabel(label string) Option {
	return func(c *Controller) {
		if label = strings.TrimSpace(label); label != "" {
			c.defaultLabel = label
		}
	}
}

// FromConfig maps a resolved configuration onto controller options. The
// transport client and renderer are built by the caller.
func FromConfig(cfg config.Config) []Option {
	return []Option{
		WithIdentifiers(IdentifiersFromConfig(cfg.Elements)),
		WithCSRF(cfg.CSRF.Field, cfg.CSRF.Header),
		WithEndpointPath(cfg.Endpoint.Path),
	}
}

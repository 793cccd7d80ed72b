// Package signup is the entry point of the newsletter signup form controller.
// It re-exports the controller from pkg/subscribe and wires it from a
// resolved configuration.
package signup

import (
	"fmt"

	"github.com/goliatone/go-signup/pkg/config"
	"github.com/goliatone/go-signup/pkg/dom"
	"github.com/goliatone/go-signup/pkg/feedback"
	"github.com/goliatone/go-signup/pkg/subscribe"
	"github.com/goliatone/go-signup/pkg/transport"
)

// Controller aliases subscribe.Controller.
type Controller = subscribe.Controller

// Option aliases subscribe.Option.
type Option = subscribe.Option

// Outcome aliases subscribe.Outcome.
type Outcome = subscribe.Outcome

// New binds a controller with package defaults. It mirrors subscribe.New.
func New(doc dom.Document, options ...Option) (*Controller, error) {
	return subscribe.New(doc, options...)
}

// Bind builds the transport client and feedback renderer described by cfg and
// binds a controller to doc. Options are applied after the configured ones so
// callers can override any of them.
func Bind(doc dom.Document, cfg config.Config, options ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	renderer, err := feedback.New(feedback.WithTheme(cfg.Theme.Name, cfg.Theme.Variant))
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}
	client := transport.New(
		transport.WithBaseURL(cfg.Endpoint.BaseURL),
		transport.WithTimeout(cfg.Endpoint.Timeout),
	)

	opts := append(subscribe.FromConfig(cfg),
		subscribe.WithTransport(client),
		subscribe.WithRenderer(renderer),
	)
	return subscribe.New(doc, append(opts, options...)...)
}

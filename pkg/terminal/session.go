// Package terminal runs the signup form from a terminal: prompts fill an
// in-memory page and the controller submits it exactly as it would in a
// browser.
package terminal

import (
	"context"
	"errors"

	"github.com/goliatone/go-signup/pkg/feedback"
	"github.com/goliatone/go-signup/pkg/subscribe"
)

// Session loops over prompts until the user stops.
type Session struct {
	ctrl   *subscribe.Controller
	driver PromptDriver
	styles Styles
	once   bool
}

// Option configures a Session.
type Option func(*Session)

// WithDriver swaps the prompt driver.
func WithDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithStyles overrides the output styles.
func WithStyles(styles Styles) Option {
	return func(s *Session) {
		s.styles = styles
	}
}

// WithSingleAttempt stops after the first submission instead of asking to
// subscribe another address.
func WithSingleAttempt() Option {
	return func(s *Session) {
		s.once = true
	}
}

// NewSession binds a session to a controller. The controller's renderer
// palette is used for output unless WithStyles is given.
func NewSession(ctrl *subscribe.Controller, renderer *feedback.Renderer, options ...Option) (*Session, error) {
	if ctrl == nil {
		return nil, errors.New("terminal: controller is nil")
	}
	s := &Session{
		ctrl:   ctrl,
		driver: NewSurveyDriver(nil),
	}
	if renderer != nil {
		s.styles = StylesFromRenderer(renderer)
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s, nil
}

// Run prompts for an address, submits it and prints the page message. An
// interrupted prompt ends the session without error.
func (s *Session) Run(ctx context.Context) error {
	err := s.loop(ctx)
	if errors.Is(err, ErrAborted) {
		return nil
	}
	return err
}

func (s *Session) loop(ctx context.Context) error {
	fields := s.ctrl.Fields()
	for {
		email, err := s.driver.Input(ctx, InputConfig{
			Message: "Email address",
			Default: fields.Email.Value(),
		})
		if err != nil {
			return err
		}
		name, err := s.driver.Input(ctx, InputConfig{
			Message: "Name",
			Default: fields.Name.Value(),
		})
		if err != nil {
			return err
		}

		fields.Email.SetValue(email)
		fields.Name.SetValue(name)

		outcome := s.ctrl.HandleSubmit(ctx)
		if err := s.driver.Info(ctx, s.Report(outcome)); err != nil {
			return err
		}

		if s.once {
			return nil
		}
		again, err := s.driver.Confirm(ctx, ConfirmConfig{
			Message: "Subscribe another address?",
		})
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

// Report renders the message currently shown on the page for outcome.
func (s *Session) Report(outcome subscribe.Outcome) string {
	fields := s.ctrl.Fields()
	switch {
	case outcome.Kind == subscribe.OutcomeSkipped:
		return s.styles.Muted.Render("A submission is already in progress.")
	case fields.Success.Visible():
		return s.styles.Success.Render(feedback.PlainText(fields.Success.Label()))
	case fields.Error.Visible():
		return s.styles.Error.Render(feedback.PlainText(fields.Error.Label()))
	default:
		return s.styles.Muted.Render(outcome.Message)
	}
}

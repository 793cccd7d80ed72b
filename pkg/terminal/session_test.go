package terminal

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-signup/pkg/feedback"
	"github.com/goliatone/go-signup/pkg/subscribe"
	"github.com/goliatone/go-signup/pkg/testsupport"
	"github.com/goliatone/go-signup/pkg/transport"
)

type stubDriver struct {
	inputs       []string
	confirm      []bool
	defaults     []string
	infoMessages []string
	inputPos     int
	confirmPos   int
	abortAfter   int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if s.abortAfter > 0 && s.inputPos >= s.abortAfter {
		return "", ErrAborted
	}
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	s.defaults = append(s.defaults, cfg.Default)
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func newSession(t *testing.T, srv *testsupport.Server, driver PromptDriver, opts ...Option) *Session {
	t.Helper()

	doc := testsupport.Page(t, "tok")
	renderer, err := feedback.New()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	ctrl, err := subscribe.New(doc,
		subscribe.WithTransport(transport.New(transport.WithBaseURL(srv.URL), transport.WithTimeout(5*time.Second))),
		subscribe.WithRenderer(renderer),
		subscribe.WithDispatcher(func(fn func()) { fn() }),
	)
	if err != nil {
		t.Fatalf("controller: %v", err)
	}
	session, err := NewSession(ctrl, renderer, append([]Option{WithDriver(driver)}, opts...)...)
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	return session
}

func TestSessionSubmitsUntilDeclined(t *testing.T) {
	srv := testsupport.NewServer(t, testsupport.Failure("Already subscribed"), testsupport.Success("Welcome!"))
	driver := &stubDriver{
		inputs:  []string{"", "Ann", "a@b.co", "Ann", "a@b.co", "Ann"},
		confirm: []bool{true, true, false},
	}
	session := newSession(t, srv, driver)

	if err := session.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(driver.infoMessages) != 3 {
		t.Fatalf("expected three reports, got %v", driver.infoMessages)
	}
	wants := []string{"Error: Email is required", "Error: Already subscribed", "Success: Welcome!"}
	for i, want := range wants {
		if !strings.Contains(driver.infoMessages[i], want) {
			t.Fatalf("report %d: expected %q in %q", i, want, driver.infoMessages[i])
		}
	}
	if srv.Count() != 2 {
		t.Fatalf("expected two requests, got %d", srv.Count())
	}
	// The rejected attempt keeps its values as prompt defaults.
	if driver.defaults[4] != "a@b.co" || driver.defaults[5] != "Ann" {
		t.Fatalf("unexpected defaults %v", driver.defaults)
	}
}

func TestSessionSingleAttempt(t *testing.T) {
	srv := testsupport.NewServer(t, testsupport.Success(""))
	driver := &stubDriver{inputs: []string{"a@b.co", "Ann"}}
	session := newSession(t, srv, driver, WithSingleAttempt())

	if err := session.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(driver.infoMessages) != 1 || !strings.Contains(driver.infoMessages[0], subscribe.MsgSubscribed) {
		t.Fatalf("unexpected reports %v", driver.infoMessages)
	}
}

func TestSessionAbortIsClean(t *testing.T) {
	srv := testsupport.NewServer(t)
	driver := &stubDriver{inputs: []string{"a@b.co"}, abortAfter: 1}
	session := newSession(t, srv, driver)

	if err := session.Run(context.Background()); err != nil {
		t.Fatalf("expected clean abort, got %v", err)
	}
	if srv.Count() != 0 {
		t.Fatalf("expected no requests")
	}
}

func TestSessionPropagatesDriverErrors(t *testing.T) {
	srv := testsupport.NewServer(t)
	driver := &stubDriver{}
	session := newSession(t, srv, driver)

	if err := session.Run(context.Background()); err == nil {
		t.Fatalf("expected driver error")
	}
}

func TestNewSessionRequiresController(t *testing.T) {
	if _, err := NewSession(nil, nil); err == nil {
		t.Fatalf("expected error")
	}
}

func TestTranslateSurveyErr(t *testing.T) {
	other := errors.New("boom")
	if got := translateSurveyErr(other); got != other {
		t.Fatalf("expected passthrough, got %v", got)
	}
}

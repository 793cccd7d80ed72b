// Package subscribe binds a newsletter signup form: it validates the email and
// name fields, posts them to the subscription endpoint one request at a time
// and renders the loading state and result messages on the page.
package subscribe

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/goliatone/go-signup/pkg/config"
	"github.com/goliatone/go-signup/pkg/contract"
	"github.com/goliatone/go-signup/pkg/dom"
	"github.com/goliatone/go-signup/pkg/feedback"
	"github.com/goliatone/go-signup/pkg/transport"
)

// Fields holds the resolved page elements.
type Fields struct {
	Form    dom.Element
	Email   dom.Element
	Name    dom.Element
	Submit  dom.Element
	Error   dom.Element
	Success dom.Element
}

// Controller drives one signup form.
type Controller struct {
	doc    dom.Document
	fields Fields

	ids          Identifiers
	csrfField    string
	csrfHeader   string
	endpointPath string
	defaultLabel string

	client   *transport.Client
	renderer *feedback.Renderer
	contract *contract.Contract
	log      logr.Logger
	dispatch func(func())
	baseCtx  context.Context

	mu         sync.Mutex
	state      State
	lastAction uint64
	savedLabel string
	csrfToken  string
}

// New resolves the page elements, installs the anti-forgery header when the
// page carries a token and binds the submit and click handlers.
func New(doc dom.Document, options ...Option) (*Controller, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	defaults := config.Default()
	c := &Controller{
		doc:          doc,
		ids:          DefaultIdentifiers(),
		csrfField:    defaults.CSRF.Field,
		csrfHeader:   defaults.CSRF.Header,
		defaultLabel: DefaultLabel,
		log:          logr.Discard(),
		dispatch:     func(fn func()) { go fn() },
		baseCtx:      context.Background(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}

	if c.contract == nil {
		loaded, err := contract.Load(c.baseCtx)
		if err != nil {
			return nil, fmt.Errorf("subscribe: %w", err)
		}
		c.contract = loaded
	}
	if c.endpointPath == "" {
		c.endpointPath = c.contract.Endpoint().Path
	}
	if c.client == nil {
		c.client = transport.New()
	}
	if c.renderer == nil {
		renderer, err := feedback.New()
		if err != nil {
			return nil, fmt.Errorf("subscribe: %w", err)
		}
		c.renderer = renderer
	}

	fields, err := resolveFields(doc, c.ids)
	if err != nil {
		return nil, err
	}
	c.fields = fields
	c.log.V(1).Info("form elements resolved", "submit", fields.Submit.ID())

	c.installCSRF()
	c.bind()
	return c, nil
}

func resolveFields(doc dom.Document, ids Identifiers) (Fields, error) {
	var f Fields
	required := []struct {
		role string
		id   string
		dst  *dom.Element
	}{
		{"form", ids.Form, &f.Form},
		{"email", ids.Email, &f.Email},
		{"name", ids.Name, &f.Name},
		{"error", ids.Error, &f.Error},
		{"success", ids.Success, &f.Success},
	}
	for _, ref := range required {
		el, err := doc.ElementByID(ref.id)
		if err != nil {
			return Fields{}, fmt.Errorf("%w: %s #%s: %w", ErrMissingElement, ref.role, ref.id, err)
		}
		*ref.dst = el
	}

	var lastErr error = dom.ErrNotFound
	for _, id := range ids.Submit {
		if strings.TrimSpace(id) == "" {
			continue
		}
		el, err := doc.ElementByID(id)
		if err != nil {
			lastErr = err
			continue
		}
		f.Submit = el
		return f, nil
	}
	return Fields{}, fmt.Errorf("%w: submit %s: %w", ErrMissingElement, strings.Join(ids.Submit, ", "), lastErr)
}

func (c *Controller) installCSRF() {
	token := c.readCSRF()
	c.csrfToken = token
	if token == "" {
		c.log.V(1).Info("csrf token not found", "field", c.csrfField)
		return
	}
	c.client.SetDefaultHeader(c.csrfHeader, token)
	c.log.V(1).Info("csrf token installed", "header", c.csrfHeader)
}

func (c *Controller) readCSRF() string {
	el, err := c.doc.ElementByName(c.csrfField)
	if err != nil {
		return ""
	}
	return el.Value()
}

// csrfBodyValue re-reads the hidden input so the body carries the current
// token, or an empty value when the input is gone.
func (c *Controller) csrfBodyValue() string {
	return c.readCSRF()
}

func (c *Controller) bind() {
	c.fields.Form.On(dom.EventSubmit, c.onEvent)
	c.fields.Submit.On(dom.EventClick, c.onEvent)
}

func (c *Controller) onEvent(ev *dom.Event) {
	ev.PreventDefault()
	if !c.claimAction(ev.Action) {
		c.log.V(1).Info("event already handled", "event", string(ev.Type), "action", ev.Action)
		return
	}
	c.log.V(1).Info("form event", "event", string(ev.Type), "action", ev.Action)
	ctx := c.baseCtx
	c.dispatch(func() {
		c.HandleSubmit(ctx)
	})
}

func (c *Controller) claimAction(action uint64) bool {
	if action == 0 {
		return true
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if action == c.lastAction {
		return false
	}
	c.lastAction = action
	return true
}

// Fields returns the resolved page elements.
func (c *Controller) Fields() Fields {
	return c.fields
}

// State reports whether a submission is in flight.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// CSRFToken returns the token discovered at construction, empty when the page
// had none.
func (c *Controller) CSRFToken() string {
	return c.csrfToken
}

// Client exposes the transport client carrying the default headers.
func (c *Controller) Client() *transport.Client {
	return c.client
}

// Validate reads the form, shows the first failure in the error region and
// returns it as *ValidationError. On success both regions are cleared.
func (c *Controller) Validate() (Submission, error) {
	sub, err := ValidateInput(c.fields.Email.Value(), c.fields.Name.Value())
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			c.ShowMessage(feedback.KindError, verr.Reason.Message())
		}
		return Submission{}, err
	}
	c.HideMessages()
	return sub, nil
}

// HandleSubmit runs one guarded submission. It is a no-op while another
// submission is in flight or the submit control is disabled. Every path
// that enters the loading state leaves it before returning.
func (c *Controller) HandleSubmit(ctx context.Context) Outcome {
	if ctx == nil {
		ctx = c.baseCtx
	}

	sub, attempt, outcome, ok := c.begin()
	if !ok {
		return outcome
	}
	defer c.finish(attempt)

	resp, err := c.submit(ctx, attempt, sub)
	if err != nil {
		msg := MsgUnexpected
		var terr *TransportError
		if errors.As(err, &terr) {
			msg = terr.Message
		} else {
			c.log.Error(err, "subscription failed", "attempt", attempt)
		}
		c.ShowMessage(feedback.KindError, msg)
		return Outcome{Kind: OutcomeFailed, Message: msg}
	}

	if resp.Success {
		msg := resp.Msg
		if msg == "" {
			msg = MsgSubscribed
		}
		c.ShowMessage(feedback.KindSuccess, msg)
		c.fields.Form.Reset()
		c.log.V(1).Info("subscription accepted", "attempt", attempt)
		return Outcome{Kind: OutcomeSucceeded, Message: msg}
	}

	msg := resp.Error
	if msg == "" {
		msg = resp.Msg
	}
	if msg == "" {
		msg = MsgSubscribeFailed
	}
	c.ShowMessage(feedback.KindError, msg)
	c.log.V(1).Info("subscription rejected", "attempt", attempt, "message", msg)
	return Outcome{Kind: OutcomeRejected, Message: msg}
}

// begin performs the guard check, validation and the Idle to Loading
// transition under one lock.
func (c *Controller) begin() (Submission, string, Outcome, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateLoading || c.fields.Submit.Disabled() {
		c.log.V(1).Info("submission already in progress")
		return Submission{}, "", Outcome{Kind: OutcomeSkipped}, false
	}

	sub, err := c.Validate()
	if err != nil {
		msg := MsgUnexpected
		var verr *ValidationError
		if errors.As(err, &verr) {
			msg = verr.Reason.Message()
		}
		c.log.V(1).Info("validation failed", "message", msg)
		return Submission{}, "", Outcome{Kind: OutcomeInvalid, Message: msg}, false
	}

	c.state = StateLoading
	c.showLoading()
	return sub, uuid.NewString(), Outcome{}, true
}

func (c *Controller) finish(attempt string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hideLoading()
	c.state = StateIdle
	c.log.V(1).Info("submission finished", "attempt", attempt)
}

// ShowMessage hides and empties both regions, then fills and shows the one
// matching kind.
func (c *Controller) ShowMessage(kind feedback.Kind, text string) {
	c.HideMessages()

	region := c.fields.Error
	if kind == feedback.KindSuccess {
		region = c.fields.Success
	}
	markup, err := c.renderer.Message(kind, text)
	if err != nil {
		c.log.Error(err, "render message", "kind", string(kind))
		markup = html.EscapeString(text)
	}
	region.SetHTML(markup)
	region.Show()
}

// HideMessages hides and empties both message regions.
func (c *Controller) HideMessages() {
	for _, region := range []dom.Element{c.fields.Error, c.fields.Success} {
		region.Hide()
		region.Empty()
	}
}

// ShowLoading captures the submit label, disables the control and shows the
// spinner label.
func (c *Controller) ShowLoading() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.showLoading()
}

// HideLoading re-enables the submit control and restores the captured label.
func (c *Controller) HideLoading() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hideLoading()
}

func (c *Controller) showLoading() {
	submit := c.fields.Submit
	c.savedLabel = submit.Label()
	markup, err := c.renderer.Loading()
	if err != nil {
		c.log.Error(err, "render loading label")
		markup = html.EscapeString(feedback.DefaultLoadingText)
	}
	submit.SetDisabled(true)
	submit.SetLabel(markup)
}

func (c *Controller) hideLoading() {
	label := c.savedLabel
	if strings.TrimSpace(label) == "" {
		label = c.defaultLabel
	}
	submit := c.fields.Submit
	submit.SetDisabled(false)
	submit.SetLabel(label)
}

package dom

import (
	"errors"
	"sync"
	"sync/atomic"
)

var (
	// ErrNotFound is returned when no element matches a lookup.
	ErrNotFound = errors.New("dom: element not found")
	// ErrAmbiguous is returned when a lookup that must be unique matches more
	// than one element.
	ErrAmbiguous = errors.New("dom: more than one element matches")
)

// EventType names the events the controller binds to.
type EventType string

const (
	EventSubmit EventType = "submit"
	EventClick  EventType = "click"
)

// Handler receives dispatched events. Handlers run on the dispatching
// goroutine and must return quickly; long work belongs on another goroutine.
type Handler func(*Event)

// Document is the capability surface a host page exposes to the controller.
type Document interface {
	ElementByID(id string) (Element, error)
	ElementByName(name string) (Element, error)
}

// Element is a single control or region on the page.
type Element interface {
	ID() string
	Value() string
	SetValue(value string)
	// Label returns the inner markup of the element.
	Label() string
	SetLabel(markup string)
	Disabled() bool
	SetDisabled(disabled bool)
	SetHTML(markup string)
	Empty()
	Show()
	Hide()
	Visible() bool
	// Reset restores form controls to their initial values. It is a no-op on
	// elements that are not forms.
	Reset()
	On(event EventType, handler Handler)
}

// Event is a dispatched DOM event. Action identifies the user action that
// produced it; every event caused by the same action shares the number.
type Event struct {
	Type   EventType
	Action uint64

	mu        sync.Mutex
	prevented bool
	onPrevent func()
}

// NewEvent constructs an event for the given action. onPrevent, when non-nil,
// runs the first time PreventDefault is called.
func NewEvent(eventType EventType, action uint64, onPrevent func()) *Event {
	return &Event{Type: eventType, Action: action, onPrevent: onPrevent}
}

// PreventDefault suppresses the host's native behaviour for the event.
func (e *Event) PreventDefault() {
	if e == nil {
		return
	}
	e.mu.Lock()
	first := !e.prevented
	e.prevented = true
	hook := e.onPrevent
	e.mu.Unlock()
	if first && hook != nil {
		hook()
	}
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	if e == nil {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.prevented
}

var actionSeq atomic.Uint64

// NextAction allocates a process-wide user action number.
func NextAction() uint64 {
	return actionSeq.Add(1)
}

//go:build js && wasm

// Package jsdom implements dom.Document on top of the browser DOM through
// syscall/js.
package jsdom

import (
	"fmt"
	"strings"
	"sync"
	"syscall/js"

	"github.com/goliatone/go-signup/pkg/dom"
)

// Document wraps the global browser document.
type Document struct {
	doc js.Value

	mu    sync.Mutex
	funcs []js.Func
}

var _ dom.Document = (*Document)(nil)

// New returns a Document bound to the global `document` object.
func New() (*Document, error) {
	doc := js.Global().Get("document")
	if !doc.Truthy() {
		return nil, fmt.Errorf("jsdom: global document is unavailable")
	}
	return &Document{doc: doc}, nil
}

// ElementByID resolves an element by id.
func (d *Document) ElementByID(id string) (dom.Element, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("jsdom: empty id: %w", dom.ErrNotFound)
	}
	matches := d.doc.Call("querySelectorAll", "#"+cssEscape(id))
	return d.single(matches, "id", id)
}

// ElementByName resolves an element by its name attribute.
func (d *Document) ElementByName(name string) (dom.Element, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("jsdom: empty name: %w", dom.ErrNotFound)
	}
	matches := d.doc.Call("getElementsByName", name)
	return d.single(matches, "name", name)
}

// Release frees the JS callbacks registered through On. Call it when the page
// is torn down.
func (d *Document) Release() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, fn := range d.funcs {
		fn.Release()
	}
	d.funcs = nil
}

func (d *Document) single(list js.Value, attr, value string) (dom.Element, error) {
	switch n := list.Get("length").Int(); n {
	case 0:
		return nil, fmt.Errorf("jsdom: %s=%q: %w", attr, value, dom.ErrNotFound)
	case 1:
		return &element{doc: d, node: list.Index(0)}, nil
	default:
		return nil, fmt.Errorf("jsdom: %s=%q: %w", attr, value, dom.ErrAmbiguous)
	}
}

func (d *Document) keep(fn js.Func) {
	d.mu.Lock()
	d.funcs = append(d.funcs, fn)
	d.mu.Unlock()
}

type element struct {
	doc  *Document
	node js.Value
}

func (e *element) ID() string {
	return e.node.Get("id").String()
}

func (e *element) Value() string {
	v := e.node.Get("value")
	if v.IsUndefined() || v.IsNull() {
		return ""
	}
	return v.String()
}

func (e *element) SetValue(value string) {
	e.node.Set("value", value)
}

func (e *element) Label() string {
	return e.node.Get("innerHTML").String()
}

func (e *element) SetLabel(markup string) {
	e.node.Set("innerHTML", markup)
}

func (e *element) Disabled() bool {
	return e.node.Get("disabled").Truthy()
}

func (e *element) SetDisabled(disabled bool) {
	e.node.Set("disabled", disabled)
}

func (e *element) SetHTML(markup string) {
	e.node.Set("innerHTML", markup)
}

func (e *element) Empty() {
	e.node.Set("innerHTML", "")
}

func (e *element) Show() {
	e.node.Call("removeAttribute", "hidden")
	e.node.Get("style").Call("removeProperty", "display")
}

func (e *element) Hide() {
	e.node.Get("style").Set("display", "none")
}

func (e *element) Visible() bool {
	if e.node.Call("hasAttribute", "hidden").Bool() {
		return false
	}
	return e.node.Get("style").Get("display").String() != "none"
}

func (e *element) Reset() {
	if strings.EqualFold(e.node.Get("tagName").String(), "form") {
		e.node.Call("reset")
	}
}

// On registers handler for the event. The handler runs synchronously inside
// the browser callback so PreventDefault takes effect; it must not block.
func (e *element) On(event dom.EventType, handler dom.Handler) {
	if handler == nil {
		return
	}
	fn := js.FuncOf(func(_ js.Value, args []js.Value) any {
		var native js.Value
		if len(args) > 0 {
			native = args[0]
		}
		ev := dom.NewEvent(event, dom.NextAction(), func() {
			if native.Truthy() {
				native.Call("preventDefault")
			}
		})
		handler(ev)
		return nil
	})
	e.doc.keep(fn)
	e.node.Call("addEventListener", string(event), fn)
}

// cssEscape defers to CSS.escape when the browser provides it.
func cssEscape(ident string) string {
	css := js.Global().Get("CSS")
	if css.Truthy() && css.Get("escape").Truthy() {
		return css.Call("escape", ident).String()
	}
	return ident
}

package htmldom

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-signup/pkg/dom"
)

// Document is an in-memory page parsed from HTML markup. It implements
// dom.Document and is safe for concurrent use; event handlers are always
// invoked without the document lock held.
type Document struct {
	mu       sync.Mutex
	root     *html.Node
	defaults map[*html.Node]string
	handlers map[*html.Node]map[dom.EventType][]dom.Handler
}

var _ dom.Document = (*Document)(nil)

// Parse reads page markup into a Document.
func Parse(r io.Reader) (*Document, error) {
	if r == nil {
		return nil, fmt.Errorf("htmldom: reader is nil")
	}
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("htmldom: parse: %w", err)
	}
	doc := &Document{
		root:     root,
		defaults: make(map[*html.Node]string),
		handlers: make(map[*html.Node]map[dom.EventType][]dom.Handler),
	}
	walk(root, func(n *html.Node) bool {
		if isValueControl(n) {
			doc.defaults[n] = nodeValue(n)
		}
		return true
	})
	return doc, nil
}

// ParseString is a convenience wrapper around Parse.
func ParseString(markup string) (*Document, error) {
	return Parse(strings.NewReader(markup))
}

// ElementByID returns the single element carrying the id attribute.
func (d *Document) ElementByID(id string) (dom.Element, error) {
	return d.lookup("id", id)
}

// ElementByName returns the single element carrying the name attribute.
func (d *Document) ElementByName(name string) (dom.Element, error) {
	return d.lookup("name", name)
}

func (d *Document) lookup(attr, value string) (dom.Element, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, fmt.Errorf("htmldom: empty %s: %w", attr, dom.ErrNotFound)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	var matches []*html.Node
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && getAttr(n, attr) == value {
			matches = append(matches, n)
		}
		return true
	})

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("htmldom: %s=%q: %w", attr, value, dom.ErrNotFound)
	case 1:
		return &element{doc: d, node: matches[0]}, nil
	default:
		return nil, fmt.Errorf("htmldom: %s=%q: %w", attr, value, dom.ErrAmbiguous)
	}
}

// Click simulates a user click on the element with the given id. Disabled
// controls swallow the click. When the click is not prevented and the
// control submits its form, the form receives a submit event carrying the
// same action number.
func (d *Document) Click(id string) (*dom.Event, error) {
	el, err := d.ElementByID(id)
	if err != nil {
		return nil, err
	}
	target := el.(*element)

	d.mu.Lock()
	_, disabled := hasAttr(target.node, "disabled")
	form := owningForm(target.node)
	submits := isSubmitControl(target.node)
	d.mu.Unlock()

	if disabled {
		return nil, nil
	}

	action := dom.NextAction()
	click := dom.NewEvent(dom.EventClick, action, nil)
	d.dispatch(target.node, click)

	if click.DefaultPrevented() || !submits || form == nil {
		return click, nil
	}
	d.dispatch(form, dom.NewEvent(dom.EventSubmit, action, nil))
	return click, nil
}

// Submit simulates implicit submission (for example pressing Enter) of the
// form with the given id.
func (d *Document) Submit(formID string) (*dom.Event, error) {
	el, err := d.ElementByID(formID)
	if err != nil {
		return nil, err
	}
	ev := dom.NewEvent(dom.EventSubmit, dom.NextAction(), nil)
	d.dispatch(el.(*element).node, ev)
	return ev, nil
}

// Render serialises the current state of the page.
func (d *Document) Render() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var buf bytes.Buffer
	if err := html.Render(&buf, d.root); err != nil {
		return "", fmt.Errorf("htmldom: render: %w", err)
	}
	return buf.String(), nil
}

func (d *Document) on(n *html.Node, event dom.EventType, handler dom.Handler) {
	if handler == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	byType, ok := d.handlers[n]
	if !ok {
		byType = make(map[dom.EventType][]dom.Handler)
		d.handlers[n] = byType
	}
	byType[event] = append(byType[event], handler)
}

func (d *Document) dispatch(n *html.Node, ev *dom.Event) {
	d.mu.Lock()
	handlers := append([]dom.Handler(nil), d.handlers[n][ev.Type]...)
	d.mu.Unlock()

	for _, handler := range handlers {
		handler(ev)
	}
}

type element struct {
	doc  *Document
	node *html.Node
}

var _ dom.Element = (*element)(nil)

func (e *element) ID() string {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	return getAttr(e.node, "id")
}

func (e *element) Value() string {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	return nodeValue(e.node)
}

func (e *element) SetValue(value string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	setNodeValue(e.node, value)
}

func (e *element) Label() string {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	return innerHTML(e.node)
}

func (e *element) SetLabel(markup string) {
	e.SetHTML(markup)
}

func (e *element) Disabled() bool {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	_, ok := hasAttr(e.node, "disabled")
	return ok
}

func (e *element) SetDisabled(disabled bool) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	if disabled {
		setAttr(e.node, "disabled", "")
		return
	}
	removeAttr(e.node, "disabled")
}

func (e *element) SetHTML(markup string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	context := &html.Node{Type: html.ElementNode, Data: e.node.Data, DataAtom: e.node.DataAtom}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	clearChildren(e.node)
	if err != nil {
		e.node.AppendChild(&html.Node{Type: html.TextNode, Data: markup})
		return
	}
	for _, child := range nodes {
		e.node.AppendChild(child)
	}
}

func (e *element) Empty() {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	clearChildren(e.node)
}

func (e *element) Show() {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	removeAttr(e.node, "hidden")
	setDisplay(e.node, "")
}

func (e *element) Hide() {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	setDisplay(e.node, "none")
}

func (e *element) Visible() bool {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	if _, hidden := hasAttr(e.node, "hidden"); hidden {
		return false
	}
	return display(e.node) != "none"
}

func (e *element) Reset() {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	if e.node.DataAtom != atom.Form {
		return
	}
	walk(e.node, func(n *html.Node) bool {
		if !isValueControl(n) || isFixedValueInput(n) {
			return true
		}
		if def, ok := e.doc.defaults[n]; ok {
			setNodeValue(n, def)
		} else {
			setNodeValue(n, "")
		}
		return true
	})
}

func (e *element) On(event dom.EventType, handler dom.Handler) {
	e.doc.on(e.node, event, handler)
}

package testsupport

import (
	"context"
	"testing"

	"github.com/goliatone/go-signup/pkg/dom"
	"github.com/goliatone/go-signup/pkg/dom/htmldom"
	"github.com/goliatone/go-signup/pkg/feedback"
	"github.com/goliatone/go-signup/pkg/page"
)

// Page renders the signup page with the given token and options and parses it
// into an in-memory document.
func Page(t testing.TB, token string, fns ...page.OptionFn) *htmldom.Document {
	t.Helper()

	markup, err := page.RenderWith(token, fns...)
	if err != nil {
		t.Fatalf("render page: %v", err)
	}
	return ParsePage(t, markup)
}

// ParsePage parses arbitrary markup, for pages that deviate from the stock
// template.
func ParsePage(t testing.TB, markup string) *htmldom.Document {
	t.Helper()

	doc, err := htmldom.ParseString(markup)
	if err != nil {
		t.Fatalf("parse page: %v", err)
	}
	return doc
}

// Element looks up id and fails the test when it is missing.
func Element(t testing.TB, doc dom.Document, id string) dom.Element {
	t.Helper()

	el, err := doc.ElementByID(id)
	if err != nil {
		t.Fatalf("element #%s: %v", id, err)
	}
	return el
}

// MessageText returns the visible text of a message region, or "" when the
// region is hidden.
func MessageText(t testing.TB, doc dom.Document, id string) string {
	t.Helper()

	el := Element(t, doc, id)
	if !el.Visible() {
		return ""
	}
	return feedback.PlainText(el.Label())
}

// Fill sets the email and name inputs of the stock page.
func Fill(t testing.TB, doc dom.Document, email, name string) {
	t.Helper()

	Element(t, doc, "userEmail").SetValue(email)
	Element(t, doc, "userName").SetValue(name)
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// Package page renders the signup form markup the controller binds to and
// serves it over net/http.
package page

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

const pageTemplate = "signup.html.tpl"

var (
	tplOnce sync.Once
	tpl     *pongo2.Template
	tplErr  error
	tplMu   sync.Mutex
)

// TemplatesFS exposes the built-in page template.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

func template() (*pongo2.Template, error) {
	tplOnce.Do(func() {
		set := pongo2.NewSet("signup-page", pongo2.NewFSLoader(TemplatesFS()))
		tpl, tplErr = set.FromFile(pageTemplate)
		if tplErr != nil {
			tplErr = fmt.Errorf("page: load template: %w", tplErr)
		}
	})
	return tpl, tplErr
}

// Render produces the page for opts. The token, when non-empty, is emitted as
// the anti-forgery hidden input.
func Render(opts Options, token string) (string, error) {
	t, err := template()
	if err != nil {
		return "", err
	}

	hidden := opts.Hidden
	if token != "" {
		hidden = MergeHiddenFields(hidden, CSRFToken(opts.CSRFField, token))
	}

	submit := ""
	if len(opts.Elements.Submit) > 0 {
		submit = opts.Elements.Submit[0]
	}

	tplMu.Lock()
	defer tplMu.Unlock()

	var buf bytes.Buffer
	err = t.ExecuteWriter(pongo2.Context{
		"title":   opts.Title,
		"heading": opts.Heading,
		"label":   opts.ButtonLabel,
		"action":  opts.Action,
		"hidden":  SortedHiddenFields(hidden),
		"scripts": opts.Scripts,
		"ids": map[string]string{
			"form":    opts.Elements.Form,
			"email":   opts.Elements.Email,
			"name":    opts.Elements.Name,
			"submit":  submit,
			"error":   opts.Elements.Error,
			"success": opts.Elements.Success,
		},
	}, &buf)
	if err != nil {
		return "", fmt.Errorf("page: execute template: %w", err)
	}
	return strings.TrimSpace(buf.String()) + "\n", nil
}

// RenderWith builds options from fns and renders the page with token.
func RenderWith(token string, fns ...OptionFn) (string, error) {
	return Render(NewOptions(fns...), token)
}

package signup

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-signup/pkg/config"
	"github.com/goliatone/go-signup/pkg/feedback"
	"github.com/goliatone/go-signup/pkg/subscribe"
	"github.com/goliatone/go-signup/pkg/testsupport"
)

func TestBindFromConfig(t *testing.T) {
	srv := testsupport.NewServer(t, testsupport.Success("Welcome!"))
	doc := testsupport.Page(t, "tok")

	cfg := config.Default()
	cfg.Endpoint.BaseURL = srv.URL
	cfg.Theme.Variant = "dark"

	ctrl, err := Bind(doc, cfg, subscribe.WithDispatcher(func(fn func()) { fn() }))
	if err != nil {
		t.Fatalf("bind: %v", err)
	}

	testsupport.Fill(t, doc, "a@b.co", "Ann")
	out := ctrl.HandleSubmit(context.Background())
	if out.Kind != subscribe.OutcomeSucceeded {
		t.Fatalf("unexpected outcome %+v", out)
	}
	markup := testsupport.Element(t, doc, "successMessage").Label()
	if !strings.Contains(markup, "#a3cfbb") {
		t.Fatalf("expected dark palette, got %s", markup)
	}
}

func TestBindRejectsInvalidConfig(t *testing.T) {
	doc := testsupport.Page(t, "")
	cfg := config.Default()
	cfg.Elements.Form = ""
	if _, err := Bind(doc, cfg); err == nil {
		t.Fatalf("expected config error")
	}

	cfg = config.Default()
	cfg.Theme.Variant = "neon"
	if _, err := Bind(doc, cfg); err == nil {
		t.Fatalf("expected theme error")
	}
}

func TestNewUsesDefaults(t *testing.T) {
	doc := testsupport.Page(t, "")
	ctrl, err := New(doc)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if ctrl.State() != subscribe.StateIdle {
		t.Fatalf("expected idle controller")
	}
}

func TestTemplatesAreReadable(t *testing.T) {
	for _, name := range []string{"message.tpl", "loading.tpl"} {
		if _, err := fs.ReadFile(Templates(), name); err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
	}
	if _, err := fs.ReadFile(PageTemplates(), "signup.html.tpl"); err != nil {
		t.Fatalf("read page template: %v", err)
	}

	r, err := feedback.New(feedback.WithTemplates(Templates()))
	if err != nil {
		t.Fatalf("renderer from exported templates: %v", err)
	}
	if _, err := r.Loading(); err != nil {
		t.Fatalf("loading: %v", err)
	}
}

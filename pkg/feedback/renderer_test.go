package feedback

import (
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"
)

func TestMessageUsesThemeTokens(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	out, err := r.Message(KindError, "Email is required")
	if err != nil {
		t.Fatalf("message: %v", err)
	}
	for _, want := range []string{
		`signup-message--error`,
		`color: #dc3545`,
		`background: #f8d7da`,
		`<strong>Error:</strong> Email is required`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %s", want, out)
		}
	}
	if got := PlainText(out); got != "Error: Email is required" {
		t.Fatalf("unexpected plain text %q", got)
	}

	out, err = r.Message(KindSuccess, "Welcome!")
	if err != nil {
		t.Fatalf("message: %v", err)
	}
	if !strings.Contains(out, `color: #28a745`) || PlainText(out) != "Success: Welcome!" {
		t.Fatalf("unexpected success markup %s", out)
	}

	if _, err := r.Message(Kind("warning"), "x"); err == nil {
		t.Fatalf("expected unknown kind error")
	}
}

func TestMessageSanitisesServerText(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	out, err := r.Message(KindError, `<script>alert(1)</script><b>Already</b> subscribed <img src=x onerror=alert(2)>`)
	if err != nil {
		t.Fatalf("message: %v", err)
	}
	if strings.Contains(out, "<script") || strings.Contains(out, "alert") || strings.Contains(out, "<img") {
		t.Fatalf("unsafe markup leaked: %s", out)
	}
	if !strings.Contains(out, "<b>Already</b> subscribed") {
		t.Fatalf("expected inline formatting kept: %s", out)
	}
}

func TestLoadingLabel(t *testing.T) {
	r, err := New(WithLoadingText("Sending..."))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	out, err := r.Loading()
	if err != nil {
		t.Fatalf("loading: %v", err)
	}
	if !strings.HasPrefix(out, `<span class="signup-spinner"`) || !strings.HasSuffix(out, "Sending...") {
		t.Fatalf("unexpected loading markup %s", out)
	}
	if !strings.Contains(out, "border: 2px solid #fff") {
		t.Fatalf("expected spinner token, got %s", out)
	}
}

func TestDarkVariantOverridesTokens(t *testing.T) {
	r, err := New(WithTheme(DefaultThemeName, "dark"))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if got := r.Token(TokenErrorFG); got != "#f1aeb5" {
		t.Fatalf("expected variant token, got %q", got)
	}
	if got := r.Token(TokenSpinnerBorder); got != "#fff" {
		t.Fatalf("expected base token to survive, got %q", got)
	}
}

func TestUnknownThemeFails(t *testing.T) {
	if _, err := New(WithTheme("missing", "")); err == nil {
		t.Fatalf("expected unknown theme error")
	}
	if _, err := New(WithTheme(DefaultThemeName, "neon")); err == nil {
		t.Fatalf("expected unknown variant error")
	}
}

func TestCustomSelector(t *testing.T) {
	manifest := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens: map[string]string{
			TokenErrorFG: "#123456",
		},
	}
	r, err := New(WithThemeSelector(NewStaticSelector(manifest)), WithTheme("acme", ""))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	out, err := r.Message(KindError, "x")
	if err != nil {
		t.Fatalf("message: %v", err)
	}
	if !strings.Contains(out, "color: #123456") {
		t.Fatalf("expected custom token, got %s", out)
	}
}

package subscribe

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name   string
		email  string
		user   string
		want   Submission
		reason Reason
	}{
		{name: "valid", email: "a@b.co", user: "Ann", want: Submission{Email: "a@b.co", Name: "Ann"}},
		{name: "trims", email: "  a@b.co\t", user: "\nAnn ", want: Submission{Email: "a@b.co", Name: "Ann"}},
		{name: "trims nbsp and bom", email: "\u00a0a@b.co\uFEFF", user: "Ann", want: Submission{Email: "a@b.co", Name: "Ann"}},
		{name: "subdomains", email: "first.last@mail.example.org", user: "Ann", want: Submission{Email: "first.last@mail.example.org", Name: "Ann"}},
		{name: "both empty", email: "", user: "", reason: ReasonMissingEmail},
		{name: "blank email", email: "   ", user: "Ann", reason: ReasonMissingEmail},
		{name: "blank name", email: "a@b.co", user: " \t", reason: ReasonMissingName},
		{name: "name checked before format", email: "nope", user: "", reason: ReasonMissingName},
		{name: "no at", email: "not-an-email", user: "Ann", reason: ReasonInvalidEmailFormat},
		{name: "no dot", email: "a@b", user: "Ann", reason: ReasonInvalidEmailFormat},
		{name: "empty local", email: "@b.co", user: "Ann", reason: ReasonInvalidEmailFormat},
		{name: "double at", email: "a@@b.co", user: "Ann", reason: ReasonInvalidEmailFormat},
		{name: "inner space", email: "a b@c.co", user: "Ann", reason: ReasonInvalidEmailFormat},
		{name: "inner nbsp", email: "a\u00a0b@c.co", user: "Ann", reason: ReasonInvalidEmailFormat},
		{name: "trailing dot only", email: "a@b.", user: "Ann", reason: ReasonInvalidEmailFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateInput(tt.email, tt.user)
			if tt.reason == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if diff := cmp.Diff(tt.want, got); diff != "" {
					t.Fatalf("submission mismatch (-want +got):\n%s", diff)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if verr.Reason != tt.reason {
				t.Fatalf("expected reason %s, got %s", tt.reason, verr.Reason)
			}
		})
	}
}

func TestReasonMessages(t *testing.T) {
	got := map[Reason]string{
		ReasonMissingEmail:       ReasonMissingEmail.Message(),
		ReasonMissingName:        ReasonMissingName.Message(),
		ReasonInvalidEmailFormat: ReasonInvalidEmailFormat.Message(),
	}
	want := map[Reason]string{
		ReasonMissingEmail:       "Email is required",
		ReasonMissingName:        "Name is required",
		ReasonInvalidEmailFormat: "Please enter a valid email address",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestTransportMessagePrecedence(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{name: "server error field", status: 400, body: `{"error":"Bad email"}`, want: "Bad email"},
		{name: "server msg field", status: 409, body: `{"msg":"Already there"}`, want: "Already there"},
		{name: "error wins over msg", status: 500, body: `{"error":"e","msg":"m"}`, want: "e"},
		{name: "no response", status: 0, want: MsgNoConnection},
		{name: "internal error", status: 500, body: "<h1>boom</h1>", want: MsgServerError},
		{name: "empty json object", status: 500, body: `{}`, want: MsgServerError},
		{name: "other status", status: 404, body: "missing", want: MsgNetworkError},
		{name: "2xx not json", status: 200, body: "ok", want: MsgNetworkError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := transportMessage(tt.status, []byte(tt.body)); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestServerResponseDecodesLoosely(t *testing.T) {
	tests := []struct {
		body string
		want ServerResponse
	}{
		{body: `{"success":true,"msg":"Welcome!"}`, want: ServerResponse{Success: true, Msg: "Welcome!"}},
		{body: `{"success":false,"error":"Nope"}`, want: ServerResponse{Error: "Nope"}},
		{body: `{"success":"yes"}`, want: ServerResponse{Success: true}},
		{body: `{"success":0,"msg":42}`, want: ServerResponse{Msg: "42"}},
		{body: `[1,2]`, want: ServerResponse{}},
		{body: `null`, want: ServerResponse{}},
	}
	for _, tt := range tests {
		var got ServerResponse
		if err := got.UnmarshalJSON([]byte(tt.body)); err != nil {
			t.Fatalf("%s: %v", tt.body, err)
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Fatalf("%s mismatch (-want +got):\n%s", tt.body, diff)
		}
	}
	var bad ServerResponse
	if err := bad.UnmarshalJSON([]byte("ok")); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestStateString(t *testing.T) {
	if StateIdle.String() != "idle" || StateLoading.String() != "loading" || State(9).String() != "unknown" {
		t.Fatalf("unexpected state names")
	}
}

package transport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func TestPostFormSendsDefaultHeadersAndBody(t *testing.T) {
	var gotHeader, gotExtra, gotType string
	var gotForm url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		gotHeader = r.Header.Get("X-CSRFToken")
		gotExtra = r.Header.Get("X-Request-ID")
		gotType = r.Header.Get("Content-Type")
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotForm = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"success":true}`)
	}))
	defer srv.Close()

	client := New(WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	client.SetDefaultHeader("X-CSRFToken", "tok")

	extra := http.Header{}
	extra.Set("X-Request-ID", "req-1")
	res, err := client.PostForm(context.Background(), "/subscribe/", url.Values{
		"email": {"alice@example.com"},
		"name":  {"Alice"},
	}, extra)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	if res.Status != http.StatusOK || string(res.Body) != `{"success":true}` {
		t.Fatalf("unexpected response %d %q", res.Status, res.Body)
	}
	if gotHeader != "tok" {
		t.Fatalf("expected default header, got %q", gotHeader)
	}
	if gotExtra != "req-1" {
		t.Fatalf("expected extra header, got %q", gotExtra)
	}
	if gotType != "application/x-www-form-urlencoded; charset=UTF-8" {
		t.Fatalf("unexpected content type %q", gotType)
	}
	if gotForm.Get("email") != "alice@example.com" || gotForm.Get("name") != "Alice" {
		t.Fatalf("unexpected form %v", gotForm)
	}
	if client.DefaultHeader("x-csrftoken") != "tok" {
		t.Fatalf("expected default header readable case-insensitively")
	}
}

func TestPostFormStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, "  boom \n")
	}))
	defer srv.Close()

	client := New(WithBaseURL(srv.URL))
	_, err := client.PostForm(context.Background(), "/subscribe/", nil, nil)

	var terr *Error
	if !errors.As(err, &terr) {
		t.Fatalf("expected *Error, got %T %v", err, err)
	}
	if terr.Status != http.StatusInternalServerError || string(terr.Body) != "boom" {
		t.Fatalf("unexpected error %+v", terr)
	}
	if terr.NoResponse() {
		t.Fatalf("status error should carry a response")
	}
}

func TestPostFormNoResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := srv.URL
	srv.Close()

	client := New(WithBaseURL(base))
	_, err := client.PostForm(context.Background(), "/subscribe/", nil, nil)

	var terr *Error
	if !errors.As(err, &terr) || !terr.NoResponse() {
		t.Fatalf("expected no-response error, got %v", err)
	}
}

func TestPostFormTimeoutIsNoResponse(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	client := New(WithBaseURL(srv.URL), WithTimeout(20*time.Millisecond))
	_, err := client.PostForm(context.Background(), "/subscribe/", nil, nil)

	var terr *Error
	if !errors.As(err, &terr) || !terr.NoResponse() {
		t.Fatalf("expected timeout reported as no response, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded in chain, got %v", err)
	}
}

func TestPostFormRequiresBaseForRelativePaths(t *testing.T) {
	client := New()
	if _, err := client.PostForm(context.Background(), "/subscribe/", nil, nil); !errors.Is(err, ErrNoBaseURL) {
		t.Fatalf("expected ErrNoBaseURL, got %v", err)
	}
}

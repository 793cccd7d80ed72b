package testsupport

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// Reply is one scripted answer of the fake subscription endpoint. When Hold
// is non-nil the handler waits for it to close (or the request to be
// cancelled) before answering.
type Reply struct {
	Status      int
	Body        string
	ContentType string
	Hold        <-chan struct{}
}

// JSONReply encodes v as the body of a reply with the given status.
func JSONReply(status int, v any) Reply {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return Reply{Status: status, Body: string(data), ContentType: "application/json"}
}

// Success is the reply of an accepted subscription.
func Success(msg string) Reply {
	body := map[string]any{"success": true}
	if msg != "" {
		body["msg"] = msg
	}
	return JSONReply(http.StatusOK, body)
}

// Failure is a 200 reply with success=false.
func Failure(errText string) Reply {
	body := map[string]any{"success": false}
	if errText != "" {
		body["error"] = errText
	}
	return JSONReply(http.StatusOK, body)
}

// Request is what the fake endpoint recorded for one call.
type Request struct {
	Method string
	Path   string
	Header http.Header
	Form   url.Values
}

// Server is a scripted stand-in for the subscription endpoint. Replies are
// served in order; the last one repeats once the script runs out.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	replies  []Reply
	requests []Request
	arrivals chan struct{}
}

// NewServer starts a fake endpoint closed when the test ends.
func NewServer(t testing.TB, replies ...Reply) *Server {
	t.Helper()
	if len(replies) == 0 {
		replies = []Reply{Success("")}
	}
	s := &Server{
		replies:  replies,
		arrivals: make(chan struct{}, 64),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	form, _ := url.ParseQuery(string(body))

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method: r.Method,
		Path:   r.URL.Path,
		Header: r.Header.Clone(),
		Form:   form,
	})
	reply := s.replies[0]
	if len(s.replies) > 1 {
		s.replies = s.replies[1:]
	}
	s.mu.Unlock()

	select {
	case s.arrivals <- struct{}{}:
	default:
	}

	if reply.Hold != nil {
		select {
		case <-reply.Hold:
		case <-r.Context().Done():
			return
		}
	}

	status := reply.Status
	if status == 0 {
		status = http.StatusOK
	}
	if reply.ContentType != "" {
		w.Header().Set("Content-Type", reply.ContentType)
	}
	w.WriteHeader(status)
	_, _ = io.WriteString(w, reply.Body)
}

// Arrivals receives a value each time a request reaches the endpoint.
func (s *Server) Arrivals() <-chan struct{} {
	return s.arrivals
}

// Requests returns a copy of the recorded requests.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Count reports how many requests were received.
func (s *Server) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

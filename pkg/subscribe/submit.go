package subscribe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/goliatone/go-signup/pkg/transport"
)

// RequestIDHeader carries the attempt id of a submission.
const RequestIDHeader = "X-Request-ID"

// ServerResponse is the JSON reply of the subscription endpoint. Decoding is
// lenient the way a browser reads it: success is truthy rather than strictly
// boolean and non-string msg/error values are stringified.
type ServerResponse struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg,omitempty"`
	Error   string `json:"error,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *ServerResponse) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = ServerResponse{}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	r.Success = truthy(obj["success"])
	r.Msg = text(obj["msg"])
	r.Error = text(obj["error"])
	return nil
}

// SubmitToServer posts one subscription request. A 2xx reply resolves with the
// decoded response whatever its success flag; anything else is returned as
// *TransportError carrying the derived user-facing message.
func (c *Controller) SubmitToServer(ctx context.Context, email, name string) (ServerResponse, error) {
	return c.submit(ctx, uuid.NewString(), Submission{Email: email, Name: name})
}

func (c *Controller) submit(ctx context.Context, attempt string, sub Submission) (ServerResponse, error) {
	form := url.Values{}
	form.Set("email", sub.Email)
	form.Set("name", sub.Name)
	form.Set(c.csrfField, c.csrfBodyValue())

	extra := http.Header{}
	extra.Set(RequestIDHeader, attempt)

	log := c.log.WithValues("attempt", attempt)
	log.V(1).Info("sending subscription", "path", c.endpointPath, "email", sub.Email)

	res, err := c.client.PostForm(ctx, c.endpointPath, form, extra)
	if err != nil {
		var terr *transport.Error
		if errors.As(err, &terr) {
			msg := transportMessage(terr.Status, terr.Body)
			log.V(1).Info("subscription request failed", "status", terr.Status, "message", msg, "error", err.Error())
			return ServerResponse{}, &TransportError{Status: terr.Status, Message: msg, Err: err}
		}
		return ServerResponse{}, fmt.Errorf("subscribe: post %s: %w", c.endpointPath, err)
	}

	if err := c.contract.CheckResponse(res.Body); err != nil {
		log.V(1).Info("response does not match the endpoint contract", "error", err.Error())
	}

	var out ServerResponse
	if err := json.Unmarshal(bytes.TrimSpace(res.Body), &out); err != nil {
		log.V(1).Info("response is not json", "status", res.Status, "error", err.Error())
		return ServerResponse{}, &TransportError{
			Status:  res.Status,
			Message: MsgNetworkError,
			Err:     fmt.Errorf("decode response: %w", err),
		}
	}
	log.V(1).Info("server response", "status", res.Status, "success", out.Success)
	return out, nil
}

// transportMessage picks the text shown for a failed request: the server's own
// error or msg, then no connectivity, then internal server fault, then a
// generic network error.
func transportMessage(status int, body []byte) string {
	var reply ServerResponse
	if len(bytes.TrimSpace(body)) > 0 && json.Unmarshal(body, &reply) == nil {
		if reply.Error != "" {
			return reply.Error
		}
		if reply.Msg != "" {
			return reply.Msg
		}
	}
	switch status {
	case 0:
		return MsgNoConnection
	case http.StatusInternalServerError:
		return MsgServerError
	default:
		return MsgNetworkError
	}
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	default:
		return true
	}
}

func text(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == 0 {
			return ""
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		if t {
			return "true"
		}
	}
	return ""
}

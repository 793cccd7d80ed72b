// Package contract exposes the OpenAPI description of the subscription
// endpoint the signup controller talks to.
package contract

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// OperationID names the subscribe operation in the embedded document.
const OperationID = "subscribe"

//go:embed subscribe.openapi.yaml
var embeddedDocument []byte

// ErrOperationMissing is returned when the document has no subscribe
// operation.
var ErrOperationMissing = errors.New("contract: subscribe operation not found")

// Endpoint is the resolved method and path of the subscribe operation.
type Endpoint struct {
	Method string
	Path   string
}

// Contract wraps the loaded OpenAPI operation.
type Contract struct {
	endpoint  Endpoint
	operation *openapi3.Operation
	response  *openapi3.Schema
}

// Load parses the embedded document.
func Load(ctx context.Context) (*Contract, error) {
	return LoadFromData(ctx, embeddedDocument)
}

// LoadFromData parses an OpenAPI document describing the subscribe operation.
func LoadFromData(ctx context.Context, raw []byte) (*Contract, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(raw) == 0 {
		return nil, errors.New("contract: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("contract: load document: %w", err)
	}
	if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("contract: validate: %w", err)
	}

	if spec.Paths == nil {
		return nil, ErrOperationMissing
	}
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op == nil || op.OperationID != OperationID {
				continue
			}
			return &Contract{
				endpoint:  Endpoint{Method: strings.ToUpper(method), Path: path},
				operation: op,
				response:  successSchema(op),
			}, nil
		}
	}
	return nil, ErrOperationMissing
}

// Endpoint reports where the operation lives.
func (c *Contract) Endpoint() Endpoint {
	if c == nil {
		return Endpoint{}
	}
	return c.endpoint
}

// RequestFields lists the form field names the request body declares, sorted.
func (c *Contract) RequestFields() []string {
	if c == nil || c.operation == nil || c.operation.RequestBody == nil || c.operation.RequestBody.Value == nil {
		return nil
	}
	var names []string
	for _, mt := range c.operation.RequestBody.Value.Content {
		if mt == nil || mt.Schema == nil || mt.Schema.Value == nil {
			continue
		}
		for name := range mt.Schema.Value.Properties {
			names = append(names, name)
		}
		break
	}
	sort.Strings(names)
	return names
}

// CheckResponse validates a JSON response body against the 200 schema.
func (c *Contract) CheckResponse(body []byte) error {
	if c == nil || c.response == nil {
		return nil
	}
	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return fmt.Errorf("contract: decode response: %w", err)
	}
	if err := c.response.VisitJSON(decoded); err != nil {
		return fmt.Errorf("contract: response does not match schema: %w", err)
	}
	return nil
}

func successSchema(op *openapi3.Operation) *openapi3.Schema {
	if op == nil || op.Responses == nil {
		return nil
	}
	ref := op.Responses.Status(200)
	if ref == nil || ref.Value == nil {
		return nil
	}
	mt := ref.Value.Content.Get("application/json")
	if mt == nil || mt.Schema == nil {
		return nil
	}
	return mt.Schema.Value
}

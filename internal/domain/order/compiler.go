package order

import (
	"encoding/json"
	"net/http"
)

// RequestDescriptor is a supplier request ready for transport. Sending it is
// the caller's concern.
type RequestDescriptor struct {
	URL     string            `json:"url"`
	Method  string            `json:"method"`
	Headers map[string]string `json:"headers"`
	Body    json.RawMessage   `json:"body"`
}

// NewJSONRequest builds a POST descriptor carrying body as JSON
func NewJSONRequest(url string, body any) (*RequestDescriptor, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	return &RequestDescriptor{
		URL:     url,
		Method:  http.MethodPost,
		Headers: map[string]string{"Content-Type": "application/json"},
		Body:    raw,
	}, nil
}

// Compiler turns a validated unified order into one supplier's request.
// Implementations must be pure: the same order always yields a
// byte-identical descriptor.
type Compiler interface {
	// Target returns the supplier this compiler serves
	Target() Target
	// Compile maps o onto the supplier request. It returns a
	// *PreconditionError when o violates the builder's guarantees.
	Compile(o *UnifiedOrder) (*RequestDescriptor, error)
}

package domain

import (
	"bytes"
	"encoding/json"
)

// DefaultOperator is used when a request omits the operator.
const DefaultOperator = "+"

// CalculationRequest is the inbound calculation. Fields are kept raw until
// coerced so that a missing field can be told apart from an explicit null.
type CalculationRequest struct {
	A  json.RawMessage `json:"a,omitempty"`
	B  json.RawMessage `json:"b,omitempty"`
	Op json.RawMessage `json:"op,omitempty"`
}

// Operator returns the requested token, or DefaultOperator when op is absent.
// An explicit null names no operation and is unsupported; any other non-string
// value is malformed.
func (r *CalculationRequest) Operator() (string, error) {
	raw := bytes.TrimSpace(r.Op)
	if len(raw) == 0 {
		return DefaultOperator, nil
	}

	if bytes.Equal(raw, []byte("null")) {
		return "", UnsupportedOperator("null")
	}

	var token string
	if raw[0] != '"' || json.Unmarshal(raw, &token) != nil {
		return "", MalformedInput("op must be a string")
	}
	return token, nil
}

// operatorLabel names the operator for logs and events, even when it is invalid.
func (r *CalculationRequest) operatorLabel() string {
	if token, err := r.Operator(); err == nil {
		return token
	}
	return string(bytes.TrimSpace(r.Op))
}

// Calculation is a coerced request together with its raw result.
type Calculation struct {
	Operator string
	A        float64
	B        float64
	Result   float64
	Cached   bool
}

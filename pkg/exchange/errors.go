package exchange

import (
	"fmt"
	"strings"
)

// FieldError describes a single offending field in an upstream payload.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (f FieldError) Error() string {
	return fmt.Sprintf("%s: %s", f.Field, f.Message)
}

// ValidationError aggregates every field-level failure found while parsing
// one upstream payload, so a single error reports the full damage.
type ValidationError struct {
	Entity string
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Error())
	}
	return fmt.Sprintf("invalid %s payload: %s", e.Entity, strings.Join(msgs, "; "))
}

// TransportError wraps a network, timeout or HTTP-status failure from the
// exchange. The core never interprets it beyond "data unavailable".
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: http %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

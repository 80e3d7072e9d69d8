package compaction

import (
	"errors"
	"fmt"
)

var (
	ErrMissingParameter = errors.New("missing parameter")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrInvalidRange     = errors.New("invalid moisture range")
)

// Reason narrows an error kind so callers can tell a malformed number apart
// from a well-formed one that is out of range.
type Reason string

const (
	ReasonMissing    Reason = "missing"
	ReasonMalformed  Reason = "malformed"
	ReasonOutOfRange Reason = "out_of_range"
	ReasonUnknown    Reason = "unknown"
)

// ParameterError reports which field failed and why.
type ParameterError struct {
	Kind   error
	Field  string
	Reason Reason
	Msg    string
	Cause  error
}

func (e *ParameterError) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Kind.Error()
	if e.Field != "" {
		msg = fmt.Sprintf("%s %s", msg, e.Field)
	}
	if e.Msg != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Msg)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *ParameterError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// MessageKey is the catalog key used to render a user-facing message.
func (e *ParameterError) MessageKey() string {
	switch {
	case errors.Is(e.Kind, ErrMissingParameter):
		return "error.missing_parameter"
	case errors.Is(e.Kind, ErrInvalidRange):
		return "error.invalid_range"
	case e.Reason == ReasonMalformed:
		return "error.malformed_number"
	case e.Reason == ReasonUnknown:
		return "error.unknown_value"
	default:
		return "error.out_of_range"
	}
}

func missing(field string) error {
	return &ParameterError{Kind: ErrMissingParameter, Field: field, Reason: ReasonMissing}
}

func outOfRange(field, format string, args ...any) error {
	return &ParameterError{
		Kind:   ErrInvalidParameter,
		Field:  field,
		Reason: ReasonOutOfRange,
		Msg:    fmt.Sprintf(format, args...),
	}
}

func invalidRange(format string, args ...any) error {
	return &ParameterError{
		Kind:   ErrInvalidRange,
		Field:  "optimal_moisture_percent",
		Reason: ReasonOutOfRange,
		Msg:    fmt.Sprintf(format, args...),
	}
}

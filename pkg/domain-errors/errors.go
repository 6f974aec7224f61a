// Package domainerrors defines the coded error values returned across the
// roster packages. Callers branch on Code, never on message text.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies an error for callers and transports.
type Code string

const (
	// CodeMalformedIdentifier: wrong group count, non-hex digits or overflow.
	CodeMalformedIdentifier Code = "malformed_identifier"
	// CodeUnknownEnumCode: wire text outside a codec's closed set.
	CodeUnknownEnumCode Code = "unknown_enum_code"
	// CodeUnresolvableTimestamp: date or date-time without a usable offset.
	CodeUnresolvableTimestamp Code = "unresolvable_timestamp"
	// CodeMissingRequiredField: a schema-required field is absent.
	CodeMissingRequiredField Code = "missing_required_field"
	// CodeInvalidInput: a field has the wrong wire type or shape.
	CodeInvalidInput Code = "invalid_input"

	CodeBadRequest Code = "bad_request"
	CodeNotFound   Code = "not_found"
	CodeInternal   Code = "internal_error"
)

// Error is a coded error optionally attributed to a wire field.
type Error struct {
	Code    Code
	Message string
	// Field is the dotted wire path of the offending field, e.g. "terms[1].sourcedId".
	Field string
	Err   error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a coded error.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// Newf creates a coded error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, Err: err}
}

// WithField attributes err to a wire field. A coded error keeps its code and
// gains the field as a prefix of any field already recorded, so nested
// decoders can build paths bottom-up. Uncoded errors become CodeInternal.
func WithField(err error, field string) error {
	if err == nil || field == "" {
		return err
	}
	var de *Error
	if !errors.As(err, &de) {
		return &Error{Code: CodeInternal, Message: err.Error(), Field: field, Err: err}
	}
	cp := *de
	switch {
	case cp.Field == "":
		cp.Field = field
	case cp.Field[0] == '[':
		cp.Field = field + cp.Field
	default:
		cp.Field = field + "." + cp.Field
	}
	return &cp
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	return CodeOf(err) == code
}

// HasCode reports whether err or anything it wraps carries the given code.
func HasCode(err error, code Code) bool {
	for err != nil {
		var de *Error
		if !errors.As(err, &de) {
			return false
		}
		if de.Code == code {
			return true
		}
		err = de.Err
	}
	return false
}

// CodeOf returns the outermost code in err, or CodeInternal for uncoded errors.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// FieldOf returns the wire field err is attributed to, if any.
func FieldOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Field
	}
	return ""
}

package domain

import (
	"fmt"

	dErrors "roster/pkg/domain-errors"
)

// UnknownEnumCodeError is the cause carried by CodeUnknownEnumCode errors.
type UnknownEnumCodeError struct {
	// Domain names the enumeration, e.g. "status" or "grade".
	Domain string
	// Text is the rejected wire code.
	Text string
}

func (e *UnknownEnumCodeError) Error() string {
	return fmt.Sprintf("unknown %s code %q", e.Domain, e.Text)
}

// UnknownEnumCode reports wire text outside the closed set of domain.
// Recover the details with errors.As(err, **UnknownEnumCodeError).
func UnknownEnumCode(domain, text string) error {
	cause := &UnknownEnumCodeError{Domain: domain, Text: text}
	return dErrors.Wrap(cause, dErrors.CodeUnknownEnumCode, "unrecognized wire code")
}

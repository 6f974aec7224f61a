package models

import (
	"fmt"
	"time"

	"roster/pkg/domain"
)

// SessionType is the kind of an academic session.
type SessionType int

const (
	SessionTypeGradingPeriod SessionType = iota + 1
	SessionTypeSemester
	SessionTypeSchoolYear
	SessionTypeTerm
)

// Session type codes differ by direction: the exchange format sends
// camelCase codes and expects lowercase ones back.
var (
	sessionTypeReadCodes = map[string]SessionType{
		"gradingPeriod": SessionTypeGradingPeriod,
		"semester":      SessionTypeSemester,
		"schoolYear":    SessionTypeSchoolYear,
		"term":          SessionTypeTerm,
	}
	sessionTypeWriteCodes = map[SessionType]string{
		SessionTypeGradingPeriod: "gradingperiod",
		SessionTypeSemester:      "semester",
		SessionTypeSchoolYear:    "schoolyear",
		SessionTypeTerm:          "term",
	}
)

// ParseSessionType decodes a wire session type using the read table.
//
// Errors: CodeUnknownEnumCode.
func ParseSessionType(s string) (SessionType, error) {
	st, ok := sessionTypeReadCodes[s]
	if !ok {
		return 0, domain.UnknownEnumCode("sessionType", s)
	}
	return st, nil
}

// WireCode returns the code written back to the wire.
func (s SessionType) WireCode() (string, error) {
	code, ok := sessionTypeWriteCodes[s]
	if !ok {
		return "", domain.UnknownEnumCode("sessionType", s.String())
	}
	return code, nil
}

func (s SessionType) IsValid() bool {
	_, ok := sessionTypeWriteCodes[s]
	return ok
}

func (s SessionType) String() string {
	switch s {
	case SessionTypeGradingPeriod:
		return "GradingPeriod"
	case SessionTypeSemester:
		return "Semester"
	case SessionTypeSchoolYear:
		return "SchoolYear"
	case SessionTypeTerm:
		return "Term"
	}
	return fmt.Sprintf("SessionType(%d)", int(s))
}

func (s SessionType) MarshalText() ([]byte, error) {
	code, err := s.WireCode()
	if err != nil {
		return nil, err
	}
	return []byte(code), nil
}

func (s *SessionType) UnmarshalText(text []byte) error {
	parsed, err := ParseSessionType(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// SessionTypes lists every declared session type.
func SessionTypes() []SessionType {
	return []SessionType{
		SessionTypeGradingPeriod,
		SessionTypeSemester,
		SessionTypeSchoolYear,
		SessionTypeTerm,
	}
}

// Session is a normalized academic session: a school year, semester, term or
// grading period.
type Session struct {
	ID       domain.SessionID
	Status   domain.Status
	Modified time.Time
	Metadata map[string]string

	Title      string
	Start      domain.Date
	End        domain.Date
	Type       SessionType
	SchoolYear uint16

	ParentID *domain.SessionID
	Children []domain.SessionID
}

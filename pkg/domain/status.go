package domain

// Status is the lifecycle state of a record.
type Status string

const (
	StatusActive      Status = "active"
	StatusToBeDeleted Status = "tobedeleted"
)

// statusReadCodes accepts the deprecated "inactive" alias; it is never emitted.
var statusReadCodes = map[string]Status{
	"active":      StatusActive,
	"tobedeleted": StatusToBeDeleted,
	"inactive":    StatusToBeDeleted,
}

var statusWriteCodes = map[Status]string{
	StatusActive:      "active",
	StatusToBeDeleted: "tobedeleted",
}

// ParseStatus decodes a wire status code.
//
// Errors: CodeUnknownEnumCode.
func ParseStatus(s string) (Status, error) {
	st, ok := statusReadCodes[s]
	if !ok {
		return "", UnknownEnumCode("status", s)
	}
	return st, nil
}

// IsValid reports whether s is a declared status.
func (s Status) IsValid() bool {
	_, ok := statusWriteCodes[s]
	return ok
}

// String returns the wire code.
func (s Status) String() string {
	return string(s)
}

func (s Status) MarshalText() ([]byte, error) {
	code, ok := statusWriteCodes[s]
	if !ok {
		return nil, UnknownEnumCode("status", string(s))
	}
	return []byte(code), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	st, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// Statuses lists every declared status.
func Statuses() []Status {
	return []Status{StatusActive, StatusToBeDeleted}
}

package wire

import (
	"roster/internal/roster/models"
	"roster/pkg/domain"
)

// Session is an academic session as sent on the wire.
type Session struct {
	SourcedID        domain.SessionID     `json:"sourcedId"`
	Status           domain.Status        `json:"status"`
	DateLastModified domain.WireTimestamp `json:"dateLastModified"`
	Metadata         map[string]string    `json:"metadata"`

	Title      string             `json:"title"`
	StartDate  domain.Date        `json:"startDate"`
	EndDate    domain.Date        `json:"endDate"`
	Type       models.SessionType `json:"type"`
	SchoolYear uint16             `json:"schoolYear"`

	Parent   *domain.IDRef  `json:"parent,omitempty"`
	Children []domain.IDRef `json:"children"`
}

// DecodeSession parses a wire academic session from JSON. schoolYear may be
// a number or a decimal string.
func DecodeSession(data []byte) (Session, error) {
	r, err := newReader(data)
	if err != nil {
		return Session{}, err
	}

	var s Session
	if s.SourcedID, err = required(r, "sourcedId", domain.ParseSessionID); err != nil {
		return Session{}, err
	}
	if s.Status, err = required(r, "status", domain.ParseStatus); err != nil {
		return Session{}, err
	}
	if s.DateLastModified, err = required(r, "dateLastModified", domain.ParseWireTimestamp); err != nil {
		return Session{}, err
	}
	if s.Metadata, err = r.metadata("metadata"); err != nil {
		return Session{}, err
	}
	if s.Title, err = r.requiredString("title"); err != nil {
		return Session{}, err
	}
	if s.StartDate, err = required(r, "startDate", domain.ParseDate); err != nil {
		return Session{}, err
	}
	if s.EndDate, err = required(r, "endDate", domain.ParseDate); err != nil {
		return Session{}, err
	}
	if s.Type, err = required(r, "type", models.ParseSessionType); err != nil {
		return Session{}, err
	}

	year, ok := r.lookup("schoolYear")
	if !ok {
		return Session{}, missing("schoolYear")
	}
	if s.SchoolYear, err = asUint16("schoolYear", year, true); err != nil {
		return Session{}, err
	}

	if s.Parent, err = r.optionalRef("parent"); err != nil {
		return Session{}, err
	}
	if s.Children, err = list(r, "children", false, refElem); err != nil {
		return Session{}, err
	}
	return s, nil
}

// DecodeSessionValue decodes a session supplied as structured field data.
func DecodeSessionValue(fields map[string]any) (Session, error) {
	data, err := marshalValue(fields)
	if err != nil {
		return Session{}, err
	}
	return DecodeSession(data)
}

package normalize

import (
	"roster/internal/roster/models"
	"roster/internal/roster/wire"
	"roster/pkg/domain"
)

// Session normalizes a wire academic session. Parent and children become
// SessionIDs.
func Session(raw wire.Session) (*models.Session, error) {
	modified, err := resolveModified(raw.DateLastModified)
	if err != nil {
		return nil, err
	}

	return &models.Session{
		ID:         raw.SourcedID,
		Status:     raw.Status,
		Modified:   modified,
		Metadata:   cloneMap(raw.Metadata),
		Title:      raw.Title,
		Start:      raw.StartDate,
		End:        raw.EndDate,
		Type:       raw.Type,
		SchoolYear: raw.SchoolYear,
		ParentID:   optionalRef[domain.SessionKind](raw.Parent),
		Children:   domain.RetypeRefs[domain.SessionKind](raw.Children),
	}, nil
}

// ParseSession decodes and normalizes a wire academic session.
func ParseSession(data []byte) (*models.Session, error) {
	raw, err := wire.DecodeSession(data)
	if err != nil {
		return nil, err
	}
	return Session(raw)
}

// SessionToWire rebuilds the wire shape of s. The session type is written with
// the lowercase write codes, so "gradingPeriod" comes back as "gradingperiod".
func SessionToWire(s *models.Session) wire.Session {
	return wire.Session{
		SourcedID:        s.ID,
		Status:           s.Status,
		DateLastModified: domain.WireTimestampOf(s.Modified),
		Metadata:         cloneMap(s.Metadata),
		Title:            s.Title,
		StartDate:        s.Start,
		EndDate:          s.End,
		Type:             s.Type,
		SchoolYear:       s.SchoolYear,
		Parent:           optionalIDRef(s.ParentID),
		Children:         domain.NewIDRefs(s.Children),
	}
}

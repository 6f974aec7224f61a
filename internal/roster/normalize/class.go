package normalize

import (
	"roster/internal/roster/models"
	"roster/internal/roster/wire"
	"roster/pkg/domain"
)

// Class normalizes a wire class. References become typed by field: course
// to CourseID, school to SchoolID, terms to SessionID and resources to
// ResourceID, whatever their wire "type" tag says.
//
// Errors: CodeUnresolvableTimestamp when dateLastModified has no offset.
func Class(raw wire.Class) (*models.Class, error) {
	modified, err := resolveModified(raw.DateLastModified)
	if err != nil {
		return nil, err
	}

	return &models.Class{
		ID:           raw.SourcedID,
		Status:       raw.Status,
		Modified:     modified,
		Metadata:     cloneMap(raw.Metadata),
		Title:        raw.Title,
		Code:         raw.ClassCode,
		Type:         raw.ClassType,
		Location:     raw.Location,
		Grades:       cloneSlice(raw.Grades),
		Subjects:     cloneSlice(raw.Subjects),
		CourseID:     optionalRef[domain.CourseKind](raw.Course),
		SchoolID:     optionalRef[domain.SchoolKind](raw.School),
		Terms:        domain.RetypeRefs[domain.SessionKind](raw.Terms),
		SubjectCodes: cloneSlice(raw.SubjectCodes),
		Periods:      cloneSlice(raw.Periods),
		Resources:    domain.RetypeRefs[domain.ResourceKind](raw.Resources),
	}, nil
}

// ParseClass decodes and normalizes a wire class in one step.
func ParseClass(data []byte) (*models.Class, error) {
	raw, err := wire.DecodeClass(data)
	if err != nil {
		return nil, err
	}
	return Class(raw)
}

// ClassToWire rebuilds the wire shape of c. References are emitted with the
// wire type tag of their kind.
func ClassToWire(c *models.Class) wire.Class {
	return wire.Class{
		SourcedID:        c.ID,
		Status:           c.Status,
		DateLastModified: domain.WireTimestampOf(c.Modified),
		Metadata:         cloneMap(c.Metadata),
		Title:            c.Title,
		ClassCode:        c.Code,
		ClassType:        c.Type,
		Location:         c.Location,
		Grades:           cloneSlice(c.Grades),
		Subjects:         cloneSlice(c.Subjects),
		Course:           optionalIDRef(c.CourseID),
		School:           optionalIDRef(c.SchoolID),
		Terms:            domain.NewIDRefs(c.Terms),
		SubjectCodes:     cloneSlice(c.SubjectCodes),
		Periods:          cloneSlice(c.Periods),
		Resources:        domain.NewIDRefs(c.Resources),
	}
}

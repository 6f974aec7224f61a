// Package wire holds the raw record shapes of the exchange format: one struct
// per entity mirroring the wire schema field for field. Decoding checks
// syntax only (identifiers, enum codes, dates); normalization into domain
// records is the job of the normalize package.
package wire

import (
	"roster/internal/roster/models"
	"roster/pkg/domain"
)

// Class is a class as sent on the wire.
type Class struct {
	SourcedID        domain.ClassID       `json:"sourcedId"`
	Status           domain.Status        `json:"status"`
	DateLastModified domain.WireTimestamp `json:"dateLastModified"`
	Metadata         map[string]string    `json:"metadata"`

	Title     string           `json:"title"`
	ClassCode string           `json:"classCode"`
	ClassType models.ClassType `json:"classType"`
	Location  string           `json:"location"`

	// Grades are class years: 09, 10, ...
	Grades   []domain.Grade `json:"grades"`
	Subjects []string       `json:"subjects"`

	Course *domain.IDRef  `json:"course,omitempty"`
	School *domain.IDRef  `json:"school,omitempty"`
	Terms  []domain.IDRef `json:"terms"`

	SubjectCodes []uint16       `json:"subjectCodes"`
	Periods      []string       `json:"periods"`
	Resources    []domain.IDRef `json:"resources"`
}

// DecodeClass parses a wire class from JSON.
//
// Errors: the first failing field, coded CodeMissingRequiredField,
// CodeMalformedIdentifier, CodeUnknownEnumCode, CodeUnresolvableTimestamp or
// CodeInvalidInput.
func DecodeClass(data []byte) (Class, error) {
	r, err := newReader(data)
	if err != nil {
		return Class{}, err
	}

	var c Class
	if c.SourcedID, err = required(r, "sourcedId", domain.ParseClassID); err != nil {
		return Class{}, err
	}
	if c.Status, err = required(r, "status", domain.ParseStatus); err != nil {
		return Class{}, err
	}
	if c.DateLastModified, err = required(r, "dateLastModified", domain.ParseWireTimestamp); err != nil {
		return Class{}, err
	}
	if c.Metadata, err = r.metadata("metadata"); err != nil {
		return Class{}, err
	}
	if c.Title, err = r.requiredString("title"); err != nil {
		return Class{}, err
	}
	if c.ClassCode, err = r.stringOrEmpty("classCode"); err != nil {
		return Class{}, err
	}
	if c.ClassType, err = required(r, "classType", models.ParseClassType); err != nil {
		return Class{}, err
	}
	if c.Location, err = r.stringOrEmpty("location"); err != nil {
		return Class{}, err
	}
	if c.Grades, err = list(r, "grades", false, parsed(domain.ParseGrade)); err != nil {
		return Class{}, err
	}
	if c.Subjects, err = list(r, "subjects", false, parsed(plainString)); err != nil {
		return Class{}, err
	}
	if c.Course, err = r.optionalRef("course"); err != nil {
		return Class{}, err
	}
	if c.School, err = r.optionalRef("school"); err != nil {
		return Class{}, err
	}
	if c.Terms, err = list(r, "terms", true, refElem); err != nil {
		return Class{}, err
	}
	if c.SubjectCodes, err = list(r, "subjectCodes", false, uint16Elem); err != nil {
		return Class{}, err
	}
	if c.Periods, err = list(r, "periods", false, parsed(plainString)); err != nil {
		return Class{}, err
	}
	if c.Resources, err = list(r, "resources", false, refElem); err != nil {
		return Class{}, err
	}
	return c, nil
}

// DecodeClassValue decodes a class supplied as structured field data.
func DecodeClassValue(fields map[string]any) (Class, error) {
	data, err := marshalValue(fields)
	if err != nil {
		return Class{}, err
	}
	return DecodeClass(data)
}

// Package models defines the normalized roster records handed to consumers.
// Records are built by the normalize package and never mutated afterwards;
// an update produces a new record.
package models

import (
	"time"

	"roster/pkg/domain"
)

// ClassType distinguishes homerooms from scheduled classes.
type ClassType string

const (
	ClassTypeHomeroom  ClassType = "homeroom"
	ClassTypeScheduled ClassType = "scheduled"
)

var classTypeCodes = map[string]ClassType{
	"homeroom":  ClassTypeHomeroom,
	"scheduled": ClassTypeScheduled,
}

// ParseClassType decodes a wire classType code.
//
// Errors: CodeUnknownEnumCode.
func ParseClassType(s string) (ClassType, error) {
	ct, ok := classTypeCodes[s]
	if !ok {
		return "", domain.UnknownEnumCode("classType", s)
	}
	return ct, nil
}

func (c ClassType) IsValid() bool {
	_, ok := classTypeCodes[string(c)]
	return ok
}

func (c ClassType) String() string {
	return string(c)
}

func (c ClassType) MarshalText() ([]byte, error) {
	if !c.IsValid() {
		return nil, domain.UnknownEnumCode("classType", string(c))
	}
	return []byte(c), nil
}

func (c *ClassType) UnmarshalText(text []byte) error {
	parsed, err := ParseClassType(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ClassTypes lists every declared class type.
func ClassTypes() []ClassType {
	return []ClassType{ClassTypeHomeroom, ClassTypeScheduled}
}

// Class is a normalized class: a homeroom or a scheduled section of a course.
//
// Invariants:
//   - Every reference is typed by the entity its field names
//   - Modified carries a fixed UTC offset
//   - Grades, Subjects, SubjectCodes and Periods keep wire order
type Class struct {
	ID       domain.ClassID
	Status   domain.Status
	Modified time.Time
	Metadata map[string]string

	Title    string
	Code     string
	Type     ClassType
	Location string

	Grades   []domain.Grade
	Subjects []string

	CourseID *domain.CourseID
	SchoolID *domain.SchoolID
	Terms    []domain.SessionID

	SubjectCodes []uint16
	Periods      []string
	Resources    []domain.ResourceID
}

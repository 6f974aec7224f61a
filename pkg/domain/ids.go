package domain

import (
	"slices"
)

// Kind is the marker for the entity an identifier names. The set of kinds is
// closed: only this package can declare one.
type Kind interface {
	// wireType is the "type" tag used when the identifier is emitted as a reference.
	wireType() string
	// collection is the path segment used for a reference's href.
	collection() string
}

// Entity kind markers.
type (
	AnyKind      struct{}
	SessionKind  struct{}
	ClassKind    struct{}
	CourseKind   struct{}
	SchoolKind   struct{}
	ResourceKind struct{}
)

func (AnyKind) wireType() string        { return "" }
func (AnyKind) collection() string      { return "" }
func (SessionKind) wireType() string    { return "academicSession" }
func (SessionKind) collection() string  { return "academicSessions" }
func (ClassKind) wireType() string      { return "class" }
func (ClassKind) collection() string    { return "classes" }
func (CourseKind) wireType() string     { return "course" }
func (CourseKind) collection() string   { return "courses" }
func (SchoolKind) wireType() string     { return "org" }
func (SchoolKind) collection() string   { return "orgs" }
func (ResourceKind) wireType() string   { return "resource" }
func (ResourceKind) collection() string { return "resources" }

// ID is an identifier tagged with the entity kind it names. IDs of different
// kinds are distinct types and cannot be assigned or compared to each other.
//
// Usage: construct via the ParseXxxID functions at trust boundaries. The zero
// value is the all-zero Guid and is a valid identifier.
type ID[K Kind] struct {
	guid Guid
}

// Typed identifiers.
type (
	// AnyID is an identifier not yet tied to an entity kind, as found in wire references.
	AnyID      = ID[AnyKind]
	SessionID  = ID[SessionKind]
	ClassID    = ID[ClassKind]
	CourseID   = ID[CourseKind]
	SchoolID   = ID[SchoolKind]
	ResourceID = ID[ResourceKind]
)

// ParseID parses s as an identifier of kind K.
//
// Errors: CodeMalformedIdentifier, see ParseGuid.
func ParseID[K Kind](s string) (ID[K], error) {
	g, err := ParseGuid(s)
	if err != nil {
		return ID[K]{}, err
	}
	return ID[K]{guid: g}, nil
}

// MustID parses s, panicking if invalid. Use only in tests.
func MustID[K Kind](s string) ID[K] {
	id, err := ParseID[K](s)
	if err != nil {
		panic(err)
	}
	return id
}

func ParseAnyID(s string) (AnyID, error)           { return ParseID[AnyKind](s) }
func ParseSessionID(s string) (SessionID, error)   { return ParseID[SessionKind](s) }
func ParseClassID(s string) (ClassID, error)       { return ParseID[ClassKind](s) }
func ParseCourseID(s string) (CourseID, error)     { return ParseID[CourseKind](s) }
func ParseSchoolID(s string) (SchoolID, error)     { return ParseID[SchoolKind](s) }
func ParseResourceID(s string) (ResourceID, error) { return ParseID[ResourceKind](s) }

// Guid returns the underlying Guid.
func (id ID[K]) Guid() Guid {
	return id.guid
}

// String returns the canonical Guid text.
func (id ID[K]) String() string {
	return id.guid.String()
}

// IsZero reports whether the identifier is the all-zero Guid.
func (id ID[K]) IsZero() bool {
	return id.guid.IsZero()
}

// Compare orders identifiers by their Guid.
func (id ID[K]) Compare(other ID[K]) int {
	return id.guid.Compare(other.guid)
}

// Less reports whether id orders before other.
func (id ID[K]) Less(other ID[K]) bool {
	return id.guid.Less(other.guid)
}

func (id ID[K]) MarshalText() ([]byte, error) {
	return id.guid.MarshalText()
}

func (id *ID[K]) UnmarshalText(text []byte) error {
	return id.guid.UnmarshalText(text)
}

// SortIDs orders ids in place by Guid order.
func SortIDs[K Kind](ids []ID[K]) {
	slices.SortFunc(ids, ID[K].Compare)
}

// Package domain holds the shared vocabulary of roster records: the Guid
// identifier, typed identifiers per entity kind, wire references and the
// closed enumerations shared by several record kinds.
//
// Domain Purity: no I/O, no context.Context and no time.Now() calls.
package domain

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	dErrors "roster/pkg/domain-errors"
)

// Guid is a five-group hexadecimal identifier (32/16/16/16/64 bits).
//
// Invariants:
//   - Canonical text is XXXXXXXX-XXXX-XXXX-XXXX-XXXXXXXXXXXX, uppercase
//   - Ordering is numeric over g1 | g2<<32 | g3<<48 | g4<<64 | g5<<80,
//     not the order of the text
//
// The zero value is the all-zero Guid.
type Guid struct {
	g1 uint32
	g2 uint16
	g3 uint16
	g4 uint16
	g5 uint64
}

// NewGuid builds a Guid from its five groups.
func NewGuid(g1 uint32, g2, g3, g4 uint16, g5 uint64) Guid {
	return Guid{g1: g1, g2: g2, g3: g3, g4: g4, g5: g5}
}

// ParseGuid parses the five dash-separated hexadecimal groups of s.
//
// Group width is not enforced: "1-2-3-4-5" is accepted and equals
// 00000001-0002-0003-0004-000000000005. A group whose value does not fit its
// integer width is rejected.
//
// Errors: CodeMalformedIdentifier.
func ParseGuid(s string) (Guid, error) {
	groups := strings.Split(s, "-")
	if len(groups) != 5 {
		return Guid{}, dErrors.Newf(dErrors.CodeMalformedIdentifier,
			"identifier %q has %d groups, want 5", s, len(groups))
	}

	g1, err := parseGroup(groups[0], 32, 1)
	if err != nil {
		return Guid{}, err
	}
	g2, err := parseGroup(groups[1], 16, 2)
	if err != nil {
		return Guid{}, err
	}
	g3, err := parseGroup(groups[2], 16, 3)
	if err != nil {
		return Guid{}, err
	}
	g4, err := parseGroup(groups[3], 16, 4)
	if err != nil {
		return Guid{}, err
	}
	g5, err := parseGroup(groups[4], 64, 5)
	if err != nil {
		return Guid{}, err
	}

	return Guid{g1: uint32(g1), g2: uint16(g2), g3: uint16(g3), g4: uint16(g4), g5: g5}, nil
}

// MustGuid parses s, panicking if invalid.
// Use only in tests or for compile-time constants.
func MustGuid(s string) Guid {
	g, err := ParseGuid(s)
	if err != nil {
		panic(err)
	}
	return g
}

func parseGroup(s string, bits, index int) (uint64, error) {
	v, err := strconv.ParseUint(s, 16, bits)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeMalformedIdentifier,
			fmt.Sprintf("group %d %q is not a %d-bit hexadecimal value", index, s, bits))
	}
	return v, nil
}

// String returns the canonical, zero-padded uppercase form.
func (g Guid) String() string {
	return fmt.Sprintf("%08X-%04X-%04X-%04X-%012X", g.g1, g.g2, g.g3, g.g4, g.g5)
}

// Groups returns the five numeric groups.
func (g Guid) Groups() (uint32, uint16, uint16, uint16, uint64) {
	return g.g1, g.g2, g.g3, g.g4, g.g5
}

// IsZero reports whether every group is zero.
func (g Guid) IsZero() bool {
	return g == Guid{}
}

// Compare returns -1, 0 or +1 by numeric order of the packed composite.
// Group 5 occupies the most significant bits, then groups 4, 3, 2 and 1.
func (g Guid) Compare(other Guid) int {
	if c := cmp.Compare(g.g5, other.g5); c != 0 {
		return c
	}
	if c := cmp.Compare(g.g4, other.g4); c != 0 {
		return c
	}
	if c := cmp.Compare(g.g3, other.g3); c != 0 {
		return c
	}
	if c := cmp.Compare(g.g2, other.g2); c != 0 {
		return c
	}
	return cmp.Compare(g.g1, other.g1)
}

// Less reports whether g orders before other.
func (g Guid) Less(other Guid) bool {
	return g.Compare(other) < 0
}

// MarshalText emits the canonical form.
func (g Guid) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// UnmarshalText parses any accepted form.
func (g *Guid) UnmarshalText(text []byte) error {
	parsed, err := ParseGuid(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// GuidFromUUID converts an RFC 4122 UUID into a Guid with the same text.
func GuidFromUUID(u uuid.UUID) Guid {
	var g5 uint64
	for _, b := range u[10:16] {
		g5 = g5<<8 | uint64(b)
	}
	return Guid{
		g1: uint32(u[0])<<24 | uint32(u[1])<<16 | uint32(u[2])<<8 | uint32(u[3]),
		g2: uint16(u[4])<<8 | uint16(u[5]),
		g3: uint16(u[6])<<8 | uint16(u[7]),
		g4: uint16(u[8])<<8 | uint16(u[9]),
		g5: g5,
	}
}

// UUID converts g into an RFC 4122 UUID with the same text. Group 5 of a UUID
// holds 48 bits, so wider values cannot be converted.
//
// Errors: CodeMalformedIdentifier when group 5 exceeds 48 bits.
func (g Guid) UUID() (uuid.UUID, error) {
	if g.g5>>48 != 0 {
		return uuid.Nil, dErrors.Newf(dErrors.CodeMalformedIdentifier,
			"identifier %s does not fit a UUID", g)
	}
	var u uuid.UUID
	u[0], u[1], u[2], u[3] = byte(g.g1>>24), byte(g.g1>>16), byte(g.g1>>8), byte(g.g1)
	u[4], u[5] = byte(g.g2>>8), byte(g.g2)
	u[6], u[7] = byte(g.g3>>8), byte(g.g3)
	u[8], u[9] = byte(g.g4>>8), byte(g.g4)
	for i := 0; i < 6; i++ {
		u[15-i] = byte(g.g5 >> (8 * i))
	}
	return u, nil
}

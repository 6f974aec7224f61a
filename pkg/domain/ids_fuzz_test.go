//go:build go1.18

package domain

import (
	"testing"
	"unicode/utf8"

	"github.com/google/uuid"
)

// FuzzParseGuid tests that parsing never panics on arbitrary input and that
// accepted input formats back into text that parses to the same value.
func FuzzParseGuid(f *testing.F) {
	f.Add("")
	f.Add("01234567-89AB-CDEF-0123-456789ABCDEF")
	f.Add("00000000-0000-0000-0000-000000000000")
	f.Add("1-2-3-4-5")
	f.Add(uuid.NewString())
	f.Add("0-0-0-0-FFFFFFFFFFFFFFFF")
	f.Add("not-a-guid")
	f.Add(string([]byte{0x00, 0x01, 0x02}))
	f.Add("01234567-89AB-CDEF-0123-456789ABCDEF\x00suffix")

	f.Fuzz(func(t *testing.T, input string) {
		g, err := ParseGuid(input)
		if err != nil {
			return
		}

		again, err := ParseGuid(g.String())
		if err != nil {
			t.Fatalf("canonical form %q failed to parse: %v", g.String(), err)
		}
		if again != g {
			t.Fatalf("round-trip changed value: %s != %s", again, g)
		}
		if again.String() != g.String() {
			t.Fatalf("canonical form is not stable: %q != %q", again.String(), g.String())
		}
		if !utf8.ValidString(input) {
			t.Errorf("non-UTF8 input %q was accepted", input)
		}
	})
}

// FuzzParseAllIDs ensures all identifier kinds accept and reject alike.
func FuzzParseAllIDs(f *testing.F) {
	f.Add("01234567-89AB-CDEF-0123-456789ABCDEF")
	f.Add("")
	f.Add("invalid")

	f.Fuzz(func(t *testing.T, input string) {
		_, errAny := ParseAnyID(input)
		_, errSession := ParseSessionID(input)
		_, errClass := ParseClassID(input)
		_, errCourse := ParseCourseID(input)
		_, errSchool := ParseSchoolID(input)
		_, errResource := ParseResourceID(input)

		accepted := errAny == nil
		for _, err := range []error{errSession, errClass, errCourse, errSchool, errResource} {
			if (err == nil) != accepted {
				t.Fatalf("inconsistent parsing across identifier kinds for %q", input)
			}
		}
	})
}

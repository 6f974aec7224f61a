package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roster/pkg/domain"
	dErrors "roster/pkg/domain-errors"
)

func assertUnknownEnum(t *testing.T, err error, domainName, text string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnknownEnumCode))
	var enumErr *domain.UnknownEnumCodeError
	require.True(t, errors.As(err, &enumErr))
	assert.Equal(t, domainName, enumErr.Domain)
	assert.Equal(t, text, enumErr.Text)
}

func TestClassTypeCodec(t *testing.T) {
	for _, ct := range ClassTypes() {
		code, err := ct.MarshalText()
		require.NoError(t, err)
		decoded, err := ParseClassType(string(code))
		require.NoError(t, err)
		assert.Equal(t, ct, decoded)
	}

	for _, s := range []string{"", "Homeroom", "SCHEDULED", "elective"} {
		_, err := ParseClassType(s)
		assertUnknownEnum(t, err, "classType", s)
	}
}

func TestGenderCodec(t *testing.T) {
	for _, g := range []Gender{GenderMale, GenderFemale} {
		code, err := g.MarshalText()
		require.NoError(t, err)
		decoded, err := ParseGender(string(code))
		require.NoError(t, err)
		assert.Equal(t, g, decoded)
	}

	_, err := ParseGender("M")
	assertUnknownEnum(t, err, "sex", "M")
}

// TestSessionTypeCodec pins the read/write asymmetry: the exchange format
// sends camelCase codes and receives lowercase ones.
func TestSessionTypeCodec(t *testing.T) {
	t.Run("read table", func(t *testing.T) {
		cases := map[string]SessionType{
			"gradingPeriod": SessionTypeGradingPeriod,
			"semester":      SessionTypeSemester,
			"schoolYear":    SessionTypeSchoolYear,
			"term":          SessionTypeTerm,
		}
		for code, want := range cases {
			got, err := ParseSessionType(code)
			require.NoError(t, err, code)
			assert.Equal(t, want, got)
		}
	})

	t.Run("write table", func(t *testing.T) {
		cases := map[SessionType]string{
			SessionTypeGradingPeriod: "gradingperiod",
			SessionTypeSemester:      "semester",
			SessionTypeSchoolYear:    "schoolyear",
			SessionTypeTerm:          "term",
		}
		for st, want := range cases {
			got, err := st.WireCode()
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("every variant has exactly one read code", func(t *testing.T) {
		for _, st := range SessionTypes() {
			n := 0
			for _, decoded := range sessionTypeReadCodes {
				if decoded == st {
					n++
				}
			}
			assert.Equal(t, 1, n, st.String())
		}
	})

	t.Run("lowercase write codes are not readable where casing differs", func(t *testing.T) {
		for _, s := range []string{"gradingperiod", "schoolyear"} {
			_, err := ParseSessionType(s)
			assertUnknownEnum(t, err, "sessionType", s)
		}
		for _, st := range []SessionType{SessionTypeSemester, SessionTypeTerm} {
			code, err := st.WireCode()
			require.NoError(t, err)
			back, err := ParseSessionType(code)
			require.NoError(t, err)
			assert.Equal(t, st, back)
		}
	})

	t.Run("undeclared values cannot be written", func(t *testing.T) {
		_, err := SessionType(0).WireCode()
		assertUnknownEnum(t, err, "sessionType", "SessionType(0)")
	})

	t.Run("json reads camelCase and writes lowercase", func(t *testing.T) {
		var v struct {
			Type SessionType `json:"type"`
		}
		require.NoError(t, json.Unmarshal([]byte(`{"type":"schoolYear"}`), &v))
		assert.Equal(t, SessionTypeSchoolYear, v.Type)

		out, err := json.Marshal(v)
		require.NoError(t, err)
		assert.JSONEq(t, `{"type":"schoolyear"}`, string(out))
	})
}

func TestDemographicDerived(t *testing.T) {
	d := &Demographic{Ethnicity: []Ethnicity{EthnicityAsian, EthnicityWhite}}
	assert.True(t, d.IsMultiRace())
	assert.True(t, d.HasEthnicity(EthnicityWhite))
	assert.False(t, d.HasEthnicity(EthnicityBlack))

	single := &Demographic{Ethnicity: []Ethnicity{EthnicityHispanic}}
	assert.False(t, single.IsMultiRace())
}

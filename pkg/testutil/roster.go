package testutil

import (
	"encoding/json"
	"maps"
	"testing"

	"github.com/stretchr/testify/require"
)

// Identifiers used by the wire payload fixtures below.
const (
	ClassGUID   = "01234567-89AB-CDEF-0123-456789ABCDEF"
	SchoolGUID  = "FEDCBA98-7654-3210-FEDC-BA9876543210"
	TermGUID    = "11111111-2222-3333-4444-555555555555"
	PersonGUID  = "0000000A-0000-0000-0000-00000000000B"
	SessionGUID = "22222222-3333-4444-5555-666666666666"
)

// ClassJSON returns a valid wire class, with overrides replacing top-level
// fields. A nil override value deletes the field.
func ClassJSON(t *testing.T, overrides map[string]any) []byte {
	t.Helper()
	return payload(t, map[string]any{
		"sourcedId":        ClassGUID,
		"status":           "active",
		"dateLastModified": "2024-03-01T12:30:00Z",
		"title":            "Biology",
		"classType":        "scheduled",
		"grades":           []any{"09", "10"},
		"school":           map[string]any{"href": "", "sourcedId": SchoolGUID, "type": "org"},
		"terms": []any{
			map[string]any{"href": "", "sourcedId": TermGUID, "type": "academicSession"},
		},
	}, overrides)
}

// DemographicJSON returns a valid wire demographic record.
func DemographicJSON(t *testing.T, overrides map[string]any) []byte {
	t.Helper()
	return payload(t, map[string]any{
		"sourcedId":        PersonGUID,
		"status":           "active",
		"dateLastModified": "2024-03-01T12:30:00Z",
		"birthDate":        "2010-04-12",
		"sex":              "female",
		"asian":            "true",
		"white":            true,
	}, overrides)
}

// SessionJSON returns a valid wire grading period.
func SessionJSON(t *testing.T, overrides map[string]any) []byte {
	t.Helper()
	return payload(t, map[string]any{
		"sourcedId":        SessionGUID,
		"status":           "active",
		"dateLastModified": "2024-03-01T12:30:00Z",
		"title":            "Q1",
		"startDate":        "2024-08-26",
		"endDate":          "2024-10-31",
		"type":             "gradingPeriod",
		"schoolYear":       "2025",
	}, overrides)
}

func payload(t *testing.T, base, overrides map[string]any) []byte {
	t.Helper()
	fields := maps.Clone(base)
	for k, v := range overrides {
		if v == nil {
			delete(fields, k)
			continue
		}
		fields[k] = v
	}
	data, err := json.Marshal(fields)
	require.NoError(t, err)
	return data
}

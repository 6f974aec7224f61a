// Package normalize converts raw wire records into domain records and back.
//
// Conversion is all-or-nothing: the first unrecoverable field aborts the
// record and the error names that field. Reference fields are re-typed by
// their position in the schema; the wire "type" tag and href are dropped.
package normalize

import (
	"maps"
	"slices"
	"time"

	"roster/pkg/domain"
	dErrors "roster/pkg/domain-errors"
)

func resolveModified(ts domain.WireTimestamp) (time.Time, error) {
	t, err := ts.Resolve()
	if err != nil {
		return time.Time{}, dErrors.WithField(err, "dateLastModified")
	}
	return t, nil
}

func optionalRef[K domain.Kind](ref *domain.IDRef) *domain.ID[K] {
	if ref == nil {
		return nil
	}
	id := domain.RetypeRef[K](*ref)
	return &id
}

func optionalIDRef[K domain.Kind](id *domain.ID[K]) *domain.IDRef {
	if id == nil {
		return nil
	}
	ref := domain.NewIDRef(*id)
	return &ref
}

// cloneMap and cloneSlice keep domain records from sharing backing storage
// with the raw records they were built from.
func cloneMap(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return maps.Clone(m)
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return slices.Clone(s)
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

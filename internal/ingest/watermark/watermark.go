// Package watermark remembers the newest dateLastModified delivered per
// record so replayed or out-of-order deliveries can be skipped.
package watermark

import (
	"context"
	"time"
)

// Key identifies one record stream.
type Key struct {
	Entity    string
	SourcedID string
}

func (k Key) String() string {
	return "roster:watermark:" + k.Entity + ":" + k.SourcedID
}

// Store tracks one mark per key. Checking and committing are separate so a
// mark only moves once the record has actually been delivered downstream.
type Store interface {
	// IsFresh reports whether modified is strictly newer than the stored
	// mark. It never changes the mark.
	IsFresh(ctx context.Context, key Key, modified time.Time) (bool, error)
	// Commit raises the mark to modified. Committing an older or equal
	// time leaves the mark unchanged.
	Commit(ctx context.Context, key Key, modified time.Time) error
}

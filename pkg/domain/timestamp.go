package domain

import (
	"cmp"
	"fmt"
	"time"

	dErrors "roster/pkg/domain-errors"
)

// Layouts for ISO-8601 date-times carrying an offset ("Z", "+hh:mm", "+hhmm"
// or "+hh"). Fractional seconds are accepted by time.Parse after any
// seconds field.
var offsetLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05Z07",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04Z0700",
}

// Layouts for date-times without offset information.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

const dateLayout = "2006-01-02"

// WireTimestamp is an ISO-8601 date-time as received on the wire. It may lack
// an offset; Resolve turns it into an instant only when one is present.
type WireTimestamp struct {
	text      string
	t         time.Time
	hasOffset bool
}

// ParseWireTimestamp parses ISO-8601 date-time text, with or without offset.
//
// Errors: CodeUnresolvableTimestamp when s is not an ISO-8601 date-time.
func ParseWireTimestamp(s string) (WireTimestamp, error) {
	for _, layout := range offsetLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return WireTimestamp{text: s, t: t, hasOffset: true}, nil
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return WireTimestamp{text: s, t: t}, nil
		}
	}
	return WireTimestamp{}, dErrors.Newf(dErrors.CodeUnresolvableTimestamp,
		"%q is not an ISO-8601 date-time", s)
}

// WireTimestampOf builds the wire form of an instant, keeping its offset.
func WireTimestampOf(t time.Time) WireTimestamp {
	return WireTimestamp{text: t.Format(time.RFC3339Nano), t: t, hasOffset: true}
}

// HasOffset reports whether the text carried offset information.
func (w WireTimestamp) HasOffset() bool {
	return w.hasOffset
}

// IsZero reports whether w was never parsed.
func (w WireTimestamp) IsZero() bool {
	return w.text == ""
}

// String returns the text as received.
func (w WireTimestamp) String() string {
	return w.text
}

// Resolve returns the instant in a fixed-offset location. A timestamp without
// offset is never defaulted to UTC or local time.
//
// Errors: CodeUnresolvableTimestamp.
func (w WireTimestamp) Resolve() (time.Time, error) {
	if w.IsZero() {
		return time.Time{}, dErrors.New(dErrors.CodeUnresolvableTimestamp, "timestamp is empty")
	}
	if !w.hasOffset {
		return time.Time{}, dErrors.Newf(dErrors.CodeUnresolvableTimestamp,
			"timestamp %q has no UTC offset", w.text)
	}
	return fixedOffset(w.t), nil
}

func (w WireTimestamp) MarshalText() ([]byte, error) {
	return []byte(w.text), nil
}

func (w *WireTimestamp) UnmarshalText(text []byte) error {
	parsed, err := ParseWireTimestamp(string(text))
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

// fixedOffset pins t to a location that carries only its offset; time.Parse
// otherwise attaches time.Local when the offset happens to match it.
func fixedOffset(t time.Time) time.Time {
	_, offset := t.Zone()
	if offset == 0 {
		return t.UTC()
	}
	return t.In(time.FixedZone("", offset))
}

// Date is a calendar date without time of day or location.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses an ISO-8601 calendar date (YYYY-MM-DD).
//
// Errors: CodeUnresolvableTimestamp.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, dErrors.Wrap(err, dErrors.CodeUnresolvableTimestamp,
			fmt.Sprintf("%q is not an ISO-8601 date", s))
	}
	return DateOf(t), nil
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Compare returns -1, 0 or +1 by calendar order.
func (d Date) Compare(other Date) int {
	if c := cmp.Compare(d.Year, other.Year); c != 0 {
		return c
	}
	if c := cmp.Compare(d.Month, other.Month); c != 0 {
		return c
	}
	return cmp.Compare(d.Day, other.Day)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

package models

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	wireLayout       = "2006-01-02T15:04:05-07:00"
	wireLayoutMicros = "2006-01-02T15:04:05.000000-07:00"
)

// input layouts tried in order; the offset-less ones are read as UTC
var parseLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// Timestamp is an instant that travels as an ISO-8601 string with an
// explicit UTC offset, e.g. 2025-07-01T10:00:00+00:00.
type Timestamp struct {
	time.Time
}

// NewTimestamp normalizes t to UTC at microsecond precision, which is what
// the store keeps.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC().Truncate(time.Microsecond)}
}

// FormatTimestamp renders t in UTC; fractional seconds appear only when non-zero.
func FormatTimestamp(t time.Time) string {
	t = t.UTC()
	if t.Nanosecond() == 0 {
		return t.Format(wireLayout)
	}
	return t.Format(wireLayoutMicros)
}

// ParseTimestamp accepts RFC 3339 and offset-less ISO-8601 strings.
func ParseTimestamp(s string) (Timestamp, error) {
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewTimestamp(t), nil
		}
	}
	return Timestamp{}, fmt.Errorf("%w: invalid datetime %q", ErrValidation, s)
}

func (t Timestamp) String() string {
	return FormatTimestamp(t.Time)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(FormatTimestamp(t.Time))
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: datetime must be a string", ErrValidation)
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

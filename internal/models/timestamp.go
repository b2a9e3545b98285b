package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// localLayouts carry no offset and are read in DefaultLocation
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// DefaultLocation is the zone for timestamps sent without an offset.
// Set once at startup from APP_TIMEZONE.
var DefaultLocation = time.UTC

// Timestamp is a JSON time accepting full RFC 3339 values as well as the bare
// dates sent by HTML date inputs. Empty strings and null decode to the zero value.
type Timestamp time.Time

// NewTimestamp converts a time.Time
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp(t)
}

// Time returns the underlying time
func (t Timestamp) Time() time.Time {
	return time.Time(t)
}

// IsZero reports whether no value was provided
func (t Timestamp) IsZero() bool {
	return time.Time(t).IsZero()
}

// Ptr returns nil for the zero value, otherwise a pointer to the time
func (t Timestamp) Ptr() *time.Time {
	if t.IsZero() {
		return nil
	}
	v := time.Time(t)
	return &v
}

// TimestampFrom converts an optional stored time
func TimestampFrom(t *time.Time) Timestamp {
	if t == nil {
		return Timestamp{}
	}
	return Timestamp(*t)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(time.Time(t).Format(time.RFC3339Nano))
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*t = Timestamp{}
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	if raw == "" {
		*t = Timestamp{}
		return nil
	}

	parsed, err := ParseTimestamp(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseTimestamp parses RFC 3339 or one of the local layouts
func ParseTimestamp(raw string) (Timestamp, error) {
	if parsed, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return Timestamp(parsed), nil
	}
	for _, layout := range localLayouts {
		if parsed, err := time.ParseInLocation(layout, raw, DefaultLocation); err == nil {
			return Timestamp(parsed), nil
		}
	}
	return Timestamp{}, fmt.Errorf("invalid date %q", raw)
}

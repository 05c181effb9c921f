// Package timex contains time helpers for values exchanged with the backend.
package timex

import (
	"bytes"
	"fmt"
	"time"
)

// layouts accepted from the backend, tried in order. The API emits naive
// ISO timestamps (no zone) for most columns and bare dates for aggregates.
var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	time.DateOnly,
}

// Time is a time.Time that tolerates the timestamp flavours used by the API.
// Values without a zone are interpreted as UTC. It marshals as RFC 3339.
type Time struct {
	time.Time
}

// Parse parses s using the accepted layouts.
func Parse(s string) (time.Time, error) {
	for _, l := range layouts {
		if t, err := time.ParseInLocation(l, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("timex: unsupported time format %q", s)
}

func (t *Time) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("timex: expected JSON string, got %s", b)
	}
	s := string(b[1 : len(b)-1])
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.UTC().Format(time.RFC3339Nano) + `"`), nil
}

// Of wraps tm.
func Of(tm time.Time) Time {
	return Time{Time: tm}
}

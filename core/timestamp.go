package core

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/volatiletech/null/v8"
)

// Time is a nullable timestamp accepting RFC 3339 and HTTP (RFC 1123) dates,
// the latter being how the backend serializes its datetimes.
type Time struct {
	null.Time
}

func TimeFrom(t time.Time) Time {
	return Time{null.TimeFrom(t)}
}

func (t *Time) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Valid = false
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		t.Valid = false
		return nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if parsed, err = http.ParseTime(s); err != nil {
			return err
		}
	}
	t.Time = null.TimeFrom(parsed.UTC())
	return nil
}

// Format formats the time with `layout`, or returns `def` when unset.
func (t Time) Format(layout, def string) string {
	if !t.Valid {
		return def
	}
	return t.Time.Time.Format(layout)
}

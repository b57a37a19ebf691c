package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// DateTime is a wall-clock datetime for JSON payloads. It marshals without
// an offset and accepts offset-less input, input without seconds, and
// RFC 3339 input whose offset is stripped (the wall-clock reading wins).
type DateTime struct {
	time.Time
}

// NewDateTime wraps a time value as a wire datetime.
func NewDateTime(t time.Time) DateTime {
	return DateTime{Time: StripZone(t)}
}

// MarshalJSON renders the offset-less ISO-8601 form.
func (d DateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateTimeLayout) + `"`), nil
}

// UnmarshalJSON parses the accepted wire forms.
func (d *DateTime) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		return fmt.Errorf("datetime is required")
	}

	for _, layout := range []string{DateTimeLayout, dateTimeShortLayout} {
		if parsed, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			d.Time = parsed
			return nil
		}
	}

	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		d.Time = StripZone(parsed)
		return nil
	}

	return fmt.Errorf("invalid datetime %q: expected YYYY-MM-DDTHH:MM[:SS]", raw)
}

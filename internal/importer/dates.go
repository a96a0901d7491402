package importer

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// FlexDate accepts the date shapes upstream systems actually emit: ISO with
// time, date-only, slash-separated, and numeric epoch (seconds or millis).
// Unparsable input decodes to nil rather than erroring; the record then
// simply drops out of date-dependent rollups.
type FlexDate struct {
	t *time.Time
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
}

func (d *FlexDate) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		return nil
	}

	if s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return nil
		}
		d.t = ParseDate(str)
		return nil
	}

	// Numeric epoch. Anything past ~5000 AD in seconds is milliseconds.
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	d.t = fromEpoch(n)
	return nil
}

func (d FlexDate) Time() *time.Time {
	return d.t
}

// ParseDate parses a date string against the known layouts, returning nil
// when nothing matches.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	// Bare epoch handed over as a string.
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return fromEpoch(n)
	}
	return nil
}

func fromEpoch(n float64) *time.Time {
	if n <= 0 {
		return nil
	}
	sec := int64(n)
	if n > 1e11 {
		sec = int64(n / 1000)
	}
	t := time.Unix(sec, 0).UTC()
	return &t
}

// Package date provides a calendar Date type that marshals as YYYY-MM-DD.
package date

import (
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"go.yaml.in/yaml/v3"
)

const format = "2006-01-02"

// loosePattern matches a date-shaped token with - or / separators and
// unpadded month/day, e.g. 2023/1/5 or 2023-12-01.
var loosePattern = regexp.MustCompile(`(\d{4})[/-](\d{1,2})[/-](\d{1,2})`)

// Date represents a calendar date without time or timezone.
type Date struct {
	time.Time
}

// New creates a Date from year, month, day.
func New(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns today's date.
func Today() Date {
	now := time.Now()
	return New(now.Year(), now.Month(), now.Day())
}

// Parse parses a YYYY-MM-DD string into a Date.
func Parse(s string) (Date, error) {
	t, err := time.Parse(format, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return Date{t}, nil
}

// ParseLoose finds the first date-shaped token in s and parses it,
// normalizing separators and zero-padding month and day. Board field
// values are already canonical; this covers dates written by hand in
// issue bodies.
func ParseLoose(s string) (Date, bool) {
	m := loosePattern.FindStringSubmatch(s)
	if m == nil {
		return Date{}, false
	}
	d, err := Parse(m[1] + "-" + pad(m[2]) + "-" + pad(m[3]))
	if err != nil {
		return Date{}, false
	}
	return d, true
}

func pad(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// String returns the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format(format)
}

// MarshalYAML implements yaml.Marshaler.
func (d Date) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// UnmarshalYAML implements yaml.v3 Unmarshaler.
func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := Parse(value.Value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

package note

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

const (
	// TransportLayout is the form dates take on the wire and in date inputs.
	TransportLayout = "2006-01-02"
	// DisplayLayout is the form dates take in lists and headers.
	DisplayLayout = "02/01/2006"
)

// Date is a calendar day without a time or zone. The zero value is unset.
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses the transport form. Timestamps are accepted and cut down
// to their date part since the backend occasionally sends datetimes.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if len(s) > len(TransportLayout) && (s[len(TransportLayout)] == 'T' || s[len(TransportLayout)] == ' ') {
		s = s[:len(TransportLayout)]
	}
	t, err := time.Parse(TransportLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return DateOf(t), nil
}

// ParseInput parses a date typed by the user. The transport and display
// forms are tried first so DD/MM/YYYY is never read month-first.
func ParseInput(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, fmt.Errorf("date is empty")
	}
	if d, err := ParseDate(s); err == nil {
		return d, nil
	}
	if t, err := time.Parse(DisplayLayout, s); err == nil {
		return DateOf(t), nil
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return Date{}, fmt.Errorf("unrecognised date %q", s)
	}
	return DateOf(t), nil
}

func (d Date) IsZero() bool {
	return d.t.IsZero()
}

func (d Date) Time() time.Time {
	return d.t
}

// String returns the transport form, or "" when unset.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(TransportLayout)
}

// Display returns the DD/MM/YYYY form, or "" when unset.
func (d Date) Display() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DisplayLayout)
}

func (d Date) Before(o Date) bool {
	return d.t.Before(o.t)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

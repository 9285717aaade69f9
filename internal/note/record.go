package note

import (
	"encoding/json"
	"fmt"
)

// Record is a note of any kind. Fields that do not apply to Kind stay zero.
type Record struct {
	ID              int         `json:"id"`
	Kind            Kind        `json:"-"`
	ClientID        int         `json:"client_id,omitempty"`
	Date            Date        `json:"date"`
	Content         string      `json:"content,omitempty"`
	PersonalNotes   string      `json:"personal_notes,omitempty"`
	DurationMinutes int         `json:"duration_minutes,omitempty"`
	DurationHours   float64     `json:"duration_hours,omitempty"`
	IsPaid          bool        `json:"is_paid,omitempty"`
	SessionType     SessionType `json:"session_type,omitempty"`
	Summary         string      `json:"summary,omitempty"`
	Organisation    string      `json:"organisation,omitempty"`
	Title           string      `json:"title,omitempty"`
	Medium          string      `json:"medium,omitempty"`
	LinkURL         string      `json:"link_url,omitempty"`
}

func (r Record) Ref() Ref {
	return Ref{ID: r.ID, Kind: r.Kind}
}

// Heading is the list title for the record, e.g. "Session · 05/03/2024".
func (r Record) Heading() string {
	if r.Kind == CPD && r.Title != "" {
		return fmt.Sprintf("CPD · %s · %s", r.Date.Display(), r.Title)
	}
	return fmt.Sprintf("%s · %s", r.Kind.Label(), r.Date.Display())
}

// HasPayment reports whether the kind tracks payment at all.
func (r Record) HasPayment() bool {
	return r.Kind == Session || r.Kind == Assessment
}

// wireRecord accepts the union of every variant's keys.
type wireRecord struct {
	ID              *int     `json:"id"`
	ClientID        *int     `json:"client_id"`
	SessionDate     *Date    `json:"session_date"`
	AssessmentDate  *Date    `json:"assessment_date"`
	SupervisionDate *Date    `json:"supervision_date"`
	CPDDate         *Date    `json:"cpd_date"`
	Content         *string  `json:"content"`
	PersonalNotes   *string  `json:"personal_notes"`
	DurationMinutes *int     `json:"duration_minutes"`
	DurationHours   *float64 `json:"duration_hours"`
	IsPaid          *bool    `json:"is_paid"`
	SessionType     *string  `json:"session_type"`
	Summary         *string  `json:"summary"`
	Organisation    *string  `json:"organisation"`
	Title           *string  `json:"title"`
	Medium          *string  `json:"medium"`
	LinkURL         *string  `json:"link_url"`
}

func (w wireRecord) date(k Kind) *Date {
	switch k {
	case Session:
		return w.SessionDate
	case Assessment:
		return w.AssessmentDate
	case Supervision:
		return w.SupervisionDate
	case CPD:
		return w.CPDDate
	}
	return nil
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func (w wireRecord) record(k Kind) (Record, error) {
	if !k.Valid() {
		return Record{}, fmt.Errorf("unknown note kind %d", int(k))
	}
	shape := func(field, reason string) error {
		return &ShapeError{Record: k.String(), Field: field, Reason: reason}
	}

	if w.ID == nil || *w.ID <= 0 {
		return Record{}, shape("id", "must be a positive integer")
	}
	date := w.date(k)
	if date == nil || date.IsZero() {
		return Record{}, shape(k.DateKey(), "is missing")
	}

	r := Record{
		ID:            *w.ID,
		Kind:          k,
		Date:          *date,
		Content:       str(w.Content),
		PersonalNotes: str(w.PersonalNotes),
	}
	if w.ClientID != nil {
		r.ClientID = *w.ClientID
	}

	switch k {
	case Session, Assessment, Supervision:
		if k.ClientScoped() && r.ClientID <= 0 {
			return Record{}, shape("client_id", "is missing")
		}
		if w.DurationMinutes != nil {
			r.DurationMinutes = *w.DurationMinutes
		}
		r.SessionType = InPerson
		if w.SessionType != nil && *w.SessionType != "" {
			st := SessionType(*w.SessionType)
			if !st.Valid() {
				return Record{}, shape("session_type", fmt.Sprintf("has unknown value %q", st))
			}
			r.SessionType = st
		}
		if k != Supervision && w.IsPaid != nil {
			r.IsPaid = *w.IsPaid
		}
		if k == Supervision {
			r.Summary = str(w.Summary)
		}
	case CPD:
		r.ClientID = 0
		if w.DurationHours != nil {
			r.DurationHours = *w.DurationHours
		}
		r.Organisation = str(w.Organisation)
		r.Title = str(w.Title)
		r.Medium = str(w.Medium)
		r.LinkURL = str(w.LinkURL)
	}

	return r, nil
}

// DecodeRecord decodes and validates a single record of kind k.
func DecodeRecord(k Kind, data []byte) (Record, error) {
	var w wireRecord
	if err := json.Unmarshal(data, &w); err != nil {
		return Record{}, &ShapeError{Record: k.String(), Field: "body", Reason: err.Error()}
	}
	return w.record(k)
}

// DecodeRecords decodes and validates a JSON array of records of kind k.
func DecodeRecords(k Kind, data []byte) ([]Record, error) {
	var ws []wireRecord
	if err := json.Unmarshal(data, &ws); err != nil {
		return nil, &ShapeError{Record: k.String(), Field: "body", Reason: err.Error()}
	}
	records := make([]Record, 0, len(ws))
	for _, w := range ws {
		r, err := w.record(k)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

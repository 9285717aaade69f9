package note

import (
	"strings"
	"unicode/utf8"
)

// Payload is the body of a note create or update request. Each kind has its
// own payload type so a request can only carry that kind's keys.
type Payload interface {
	Kind() Kind
	Validate() error
}

type SessionPayload struct {
	ClientID        int         `json:"client_id,omitempty"`
	SessionDate     Date        `json:"session_date"`
	DurationMinutes int         `json:"duration_minutes"`
	IsPaid          bool        `json:"is_paid"`
	SessionType     SessionType `json:"session_type"`
	Content         string      `json:"content"`
	PersonalNotes   string      `json:"personal_notes"`
}

func (SessionPayload) Kind() Kind { return Session }

func (p SessionPayload) Validate() error {
	return validateSessionLike(p.SessionDate, p.DurationMinutes, p.SessionType)
}

type AssessmentPayload struct {
	ClientID        int         `json:"client_id,omitempty"`
	AssessmentDate  Date        `json:"assessment_date"`
	DurationMinutes int         `json:"duration_minutes"`
	IsPaid          bool        `json:"is_paid"`
	SessionType     SessionType `json:"session_type"`
	Content         string      `json:"content"`
	PersonalNotes   string      `json:"personal_notes"`
}

func (AssessmentPayload) Kind() Kind { return Assessment }

func (p AssessmentPayload) Validate() error {
	return validateSessionLike(p.AssessmentDate, p.DurationMinutes, p.SessionType)
}

type SupervisionPayload struct {
	ClientID        int         `json:"client_id,omitempty"`
	SupervisionDate Date        `json:"supervision_date"`
	DurationMinutes int         `json:"duration_minutes"`
	SessionType     SessionType `json:"session_type"`
	Summary         string      `json:"summary"`
	Content         string      `json:"content"`
	PersonalNotes   string      `json:"personal_notes"`
}

func (SupervisionPayload) Kind() Kind { return Supervision }

func (p SupervisionPayload) Validate() error {
	if p.SupervisionDate.IsZero() {
		return invalid(FieldDate, "is required")
	}
	if p.DurationMinutes < 0 {
		return invalid(FieldDurationMinutes, "cannot be negative")
	}
	if !p.SessionType.Valid() {
		return invalid(FieldSessionType, "must be %s or %s", InPerson, Online)
	}
	if utf8.RuneCountInString(p.Summary) > SummaryLimit {
		return invalid(FieldSummary, "must be at most %d characters", SummaryLimit)
	}
	return nil
}

type CPDPayload struct {
	CPDDate       Date    `json:"cpd_date"`
	DurationHours float64 `json:"duration_hours"`
	Organisation  string  `json:"organisation"`
	Title         string  `json:"title"`
	Medium        string  `json:"medium"`
	LinkURL       string  `json:"link_url"`
	Content       string  `json:"content"`
	PersonalNotes string  `json:"personal_notes"`
}

func (CPDPayload) Kind() Kind { return CPD }

func (p CPDPayload) Validate() error {
	if p.CPDDate.IsZero() {
		return invalid(FieldDate, "is required")
	}
	if p.DurationHours < 0 {
		return invalid(FieldDurationHours, "cannot be negative")
	}
	if strings.TrimSpace(p.Organisation) == "" {
		return invalid(FieldOrganisation, "is required")
	}
	if strings.TrimSpace(p.Title) == "" {
		return invalid(FieldTitle, "is required")
	}
	return nil
}

func validateSessionLike(date Date, minutes int, st SessionType) error {
	if date.IsZero() {
		return invalid(FieldDate, "is required")
	}
	if minutes <= 0 {
		return invalid(FieldDurationMinutes, "must be a positive number of minutes")
	}
	if !st.Valid() {
		return invalid(FieldSessionType, "must be %s or %s", InPerson, Online)
	}
	return nil
}

// TruncateSummary cuts s to SummaryLimit characters.
func TruncateSummary(s string) string {
	if utf8.RuneCountInString(s) <= SummaryLimit {
		return s
	}
	return string([]rune(s)[:SummaryLimit])
}

// AllowedKeys is the set of JSON keys a payload of kind k may carry.
func AllowedKeys(k Kind) map[string]bool {
	keys := map[string]bool{
		k.DateKey():                true,
		string(FieldContent):       true,
		string(FieldPersonalNotes): true,
	}
	add := func(fs ...string) {
		for _, f := range fs {
			keys[f] = true
		}
	}
	switch k {
	case Session, Assessment:
		add("client_id", "duration_minutes", "is_paid", "session_type")
	case Supervision:
		add("client_id", "duration_minutes", "session_type", "summary")
	case CPD:
		add("duration_hours", "organisation", "title", "medium", "link_url")
	}
	return keys
}

// Defaults seeds new notes.
type Defaults struct {
	SessionType     SessionType
	DurationMinutes int
}

const (
	draftOrganisation = "Unspecified"
	draftTitle        = "Untitled"
)

// Draft builds the creation payload for a new, not yet edited note. CPD
// drafts carry placeholder organisation and title so the record is valid on
// the backend until the user fills them in.
func Draft(k Kind, clientID int, day Date, d Defaults) Payload {
	st := d.SessionType
	if !st.Valid() {
		st = InPerson
	}
	minutes := d.DurationMinutes
	if minutes <= 0 {
		minutes = 50
	}
	switch k {
	case Session:
		return SessionPayload{ClientID: clientID, SessionDate: day, DurationMinutes: minutes, SessionType: st}
	case Assessment:
		return AssessmentPayload{ClientID: clientID, AssessmentDate: day, DurationMinutes: minutes, SessionType: st}
	case Supervision:
		return SupervisionPayload{ClientID: clientID, SupervisionDate: day, DurationMinutes: minutes, SessionType: st}
	case CPD:
		return CPDPayload{CPDDate: day, DurationHours: 1, Organisation: draftOrganisation, Title: draftTitle}
	}
	return nil
}

// WithoutPlaceholders blanks the values Draft fills in only to satisfy the
// backend, so a freshly created note is edited with them empty and cannot be
// saved until they are entered.
func WithoutPlaceholders(rec Record) Record {
	if rec.Kind != CPD {
		return rec
	}
	if rec.Organisation == draftOrganisation {
		rec.Organisation = ""
	}
	if rec.Title == draftTitle {
		rec.Title = ""
	}
	return rec
}

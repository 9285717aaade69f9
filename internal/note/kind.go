// Package note defines the records exchanged with the casebook backend and
// the per-kind rules that decide which fields a note carries.
package note

import (
	"fmt"
	"strings"
)

// Kind identifies one of the four note variants.
type Kind int

const (
	Session Kind = iota
	Assessment
	Supervision
	CPD
)

// Kinds lists every variant in display order.
var Kinds = []Kind{Session, Assessment, Supervision, CPD}

// Field names a form field or payload attribute shared across kinds.
type Field string

const (
	FieldDate            Field = "date"
	FieldDurationMinutes Field = "duration_minutes"
	FieldDurationHours   Field = "duration_hours"
	FieldSessionType     Field = "session_type"
	FieldPaid            Field = "is_paid"
	FieldSummary         Field = "summary"
	FieldOrganisation    Field = "organisation"
	FieldTitle           Field = "title"
	FieldMedium          Field = "medium"
	FieldLinkURL         Field = "link_url"
	FieldPersonalNotes   Field = "personal_notes"
	FieldContent         Field = "content"
)

// SummaryLimit is the maximum length, in characters, of a supervision summary.
const SummaryLimit = 100

func (k Kind) Valid() bool {
	return k >= Session && k <= CPD
}

func (k Kind) String() string {
	switch k {
	case Session:
		return "session"
	case Assessment:
		return "assessment"
	case Supervision:
		return "supervision"
	case CPD:
		return "cpd"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

func (k Kind) Label() string {
	switch k {
	case Session:
		return "Session"
	case Assessment:
		return "Assessment"
	case Supervision:
		return "Supervision"
	case CPD:
		return "CPD"
	}
	return "Note"
}

// DateKey is the JSON key carrying the note date for this kind.
func (k Kind) DateKey() string {
	switch k {
	case Session:
		return "session_date"
	case Assessment:
		return "assessment_date"
	case Supervision:
		return "supervision_date"
	case CPD:
		return "cpd_date"
	}
	return ""
}

// Collection is the backend path segment for this kind.
func (k Kind) Collection() string {
	switch k {
	case Session:
		return "sessions"
	case Assessment:
		return "assessments"
	case Supervision:
		return "supervisions"
	case CPD:
		return "cpd"
	}
	return ""
}

// ClientScoped reports whether notes of this kind are listed per client.
func (k Kind) ClientScoped() bool {
	return k == Session || k == Assessment
}

// FormFields returns the fields shown on the editor form for this kind, in
// display order. Content is always last.
func (k Kind) FormFields() []Field {
	switch k {
	case Session, Assessment:
		return []Field{
			FieldDate,
			FieldDurationMinutes,
			FieldSessionType,
			FieldPaid,
			FieldPersonalNotes,
			FieldContent,
		}
	case Supervision:
		return []Field{
			FieldDate,
			FieldDurationMinutes,
			FieldSessionType,
			FieldSummary,
			FieldPersonalNotes,
			FieldContent,
		}
	case CPD:
		return []Field{
			FieldDate,
			FieldDurationHours,
			FieldOrganisation,
			FieldTitle,
			FieldMedium,
			FieldLinkURL,
			FieldPersonalNotes,
			FieldContent,
		}
	}
	return nil
}

// Shows reports whether f belongs on the form for this kind.
func (k Kind) Shows(f Field) bool {
	for _, field := range k.FormFields() {
		if field == f {
			return true
		}
	}
	return false
}

// Requires reports whether f must be filled in before a note of this kind
// can be submitted.
func (k Kind) Requires(f Field) bool {
	switch k {
	case Session, Assessment:
		return f == FieldDate || f == FieldDurationMinutes
	case Supervision:
		return f == FieldDate
	case CPD:
		return f == FieldDate || f == FieldOrganisation || f == FieldTitle
	}
	return false
}

// ParseKind accepts the kind name in any case, e.g. "Session" or "cpd".
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, k := range Kinds {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown note kind %q", s)
}

// Ref identifies a single note.
type Ref struct {
	ID   int
	Kind Kind
}

func (r Ref) String() string {
	return fmt.Sprintf("%s/%d", r.Kind, r.ID)
}

// SessionType is the medium a session was held in.
type SessionType string

const (
	InPerson SessionType = "In-Person"
	Online   SessionType = "Online"
)

func (t SessionType) Valid() bool {
	return t == InPerson || t == Online
}

// Toggle flips between the two session types.
func (t SessionType) Toggle() SessionType {
	if t == Online {
		return InPerson
	}
	return Online
}

// ParseSessionType accepts the canonical spellings plus a few loose forms.
func ParseSessionType(s string) (SessionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "in-person", "in person", "inperson":
		return InPerson, nil
	case "online":
		return Online, nil
	}
	return "", fmt.Errorf("unknown session type %q", s)
}

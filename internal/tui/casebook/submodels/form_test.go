package submodels

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Paintersrp/casebook/internal/lifecycle"
	"github.com/Paintersrp/casebook/internal/note"
)

type spyGuard struct {
	depth  int
	begins int
	ends   int
}

func (g *spyGuard) BeginLoad() {
	g.depth++
	g.begins++
}

func (g *spyGuard) EndLoad() {
	g.depth--
	g.ends++
}

func typeInto(f NoteForm, s string) NoteForm {
	for _, r := range s {
		f, _ = f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return f
}

func sampleRecords() []note.Record {
	return []note.Record{
		{ID: 7, Kind: note.Session, ClientID: 3, Date: note.NewDate(2024, 3, 5), DurationMinutes: 50, IsPaid: true, SessionType: note.Online, Content: "session body"},
		{ID: 2, Kind: note.Assessment, ClientID: 3, Date: note.NewDate(2024, 1, 10), DurationMinutes: 90, SessionType: note.InPerson, Content: "assessment body"},
		{ID: 4, Kind: note.Supervision, Date: note.NewDate(2024, 2, 1), DurationMinutes: 60, SessionType: note.InPerson, Summary: "caseload review"},
		{ID: 9, Kind: note.CPD, Date: note.NewDate(2024, 4, 20), DurationHours: 2.5, Organisation: "BACP", Title: "Ethics", Medium: "Webinar"},
	}
}

func TestProjectFromFormOnlyEmitsAllowedKeys(t *testing.T) {
	for _, rec := range sampleRecords() {
		t.Run(rec.Kind.String(), func(t *testing.T) {
			f := NewNoteForm()
			f.ProjectToForm(rec.Kind, rec, &spyGuard{})

			p, err := f.ProjectFromForm(rec.Kind)
			if err != nil {
				t.Fatalf("ProjectFromForm returned error: %v", err)
			}
			data, err := json.Marshal(p)
			if err != nil {
				t.Fatalf("failed to marshal payload: %v", err)
			}
			var keys map[string]json.RawMessage
			if err := json.Unmarshal(data, &keys); err != nil {
				t.Fatalf("failed to unmarshal payload: %v", err)
			}

			allowed := note.AllowedKeys(rec.Kind)
			for k := range keys {
				if !allowed[k] {
					t.Fatalf("%s payload carries %q", rec.Kind, k)
				}
			}
			if got := string(keys[rec.Kind.DateKey()]); got != `"`+rec.Date.String()+`"` {
				t.Fatalf("expected %s=%s, got %s", rec.Kind.DateKey(), rec.Date, got)
			}
		})
	}
}

func TestProjectToFormHoldsGuardForWholeSpan(t *testing.T) {
	g := &spyGuard{}
	f := NewNoteForm()
	f.ProjectToForm(note.CPD, sampleRecords()[3], g)

	if g.begins != 1 || g.ends != 1 || g.depth != 0 {
		t.Fatalf("expected one balanced load span, got begins=%d ends=%d", g.begins, g.ends)
	}
}

func TestProjectionNeverMarksDirty(t *testing.T) {
	var tracker lifecycle.Tracker
	tracker.Open(note.Ref{ID: 7, Kind: note.Session}, false)

	f := NewNoteForm()
	f.OnEdit(tracker.MarkDirty)
	f.ProjectToForm(note.Session, sampleRecords()[0], &tracker)

	if tracker.Loading() {
		t.Fatalf("expected loading to be cleared after projection")
	}
	if tracker.Dirty() {
		t.Fatalf("expected projection to leave the note clean")
	}

	f.FocusField(note.FieldContent)
	f = typeInto(f, "x")
	if !tracker.Dirty() {
		t.Fatalf("expected typing after projection to mark the note dirty")
	}
}

func TestEditsDuringLoadAreIgnored(t *testing.T) {
	var tracker lifecycle.Tracker
	tracker.Open(note.Ref{ID: 7, Kind: note.Session}, false)

	f := NewNoteForm()
	f.OnEdit(tracker.MarkDirty)
	f.FocusField(note.FieldContent)

	tracker.BeginLoad()
	f = typeInto(f, "synthetic")
	tracker.EndLoad()

	if tracker.Dirty() {
		t.Fatalf("expected input during load to be ignored")
	}
}

func TestDateRoundTripsThroughInput(t *testing.T) {
	f := NewNoteForm()
	f.ProjectToForm(note.Session, sampleRecords()[0], &spyGuard{})

	if got := f.Value(note.FieldDate); got != "2024-03-05" {
		t.Fatalf("expected transport date in the input, got %q", got)
	}

	p, err := f.ProjectFromForm(note.Session)
	if err != nil {
		t.Fatalf("ProjectFromForm returned error: %v", err)
	}
	if got := p.(note.SessionPayload).SessionDate.String(); got != "2024-03-05" {
		t.Fatalf("expected 2024-03-05, got %q", got)
	}
}

func TestDisplayDateTypedByUserIsCanonicalised(t *testing.T) {
	f := NewNoteForm()
	f.ProjectToForm(note.Session, note.Record{Kind: note.Session, DurationMinutes: 50}, &spyGuard{})
	f.FocusField(note.FieldDate)
	f = typeInto(f, "05/03/2024")

	p, err := f.ProjectFromForm(note.Session)
	if err != nil {
		t.Fatalf("ProjectFromForm returned error: %v", err)
	}
	if got := p.(note.SessionPayload).SessionDate.String(); got != "2024-03-05" {
		t.Fatalf("expected 2024-03-05, got %q", got)
	}
}

func TestEmptyCPDOrganisationIsRejected(t *testing.T) {
	rec := sampleRecords()[3]
	rec.Organisation = ""

	f := NewNoteForm()
	f.ProjectToForm(note.CPD, rec, &spyGuard{})

	_, err := f.ProjectFromForm(note.CPD)
	var verr *note.ValidationError
	if !errors.As(err, &verr) || verr.Field != note.FieldOrganisation {
		t.Fatalf("expected organisation error, got %v", err)
	}
}

func TestSupervisionSummaryIsTruncated(t *testing.T) {
	rec := sampleRecords()[2]

	f := NewNoteForm()
	f.ProjectToForm(note.Supervision, rec, &spyGuard{})
	f.set(note.FieldSummary, strings.Repeat("a", note.SummaryLimit+30))

	p, err := f.ProjectFromForm(note.Supervision)
	if err != nil {
		t.Fatalf("ProjectFromForm returned error: %v", err)
	}
	if got := len(p.(note.SupervisionPayload).Summary); got != note.SummaryLimit {
		t.Fatalf("expected summary of %d characters, got %d", note.SummaryLimit, got)
	}
}

func TestVisibilityAndRequiredFollowKind(t *testing.T) {
	f := NewNoteForm()

	f.ProjectToForm(note.CPD, sampleRecords()[3], &spyGuard{})
	if f.Visible(note.FieldPaid) || f.Visible(note.FieldSessionType) || f.Visible(note.FieldDurationMinutes) {
		t.Fatalf("CPD form shows session fields")
	}
	if !f.Required(note.FieldOrganisation) || !f.Required(note.FieldTitle) {
		t.Fatalf("CPD form must require organisation and title")
	}

	f.ProjectToForm(note.Session, sampleRecords()[0], &spyGuard{})
	if f.Visible(note.FieldOrganisation) || f.Required(note.FieldOrganisation) {
		t.Fatalf("session form must hide and not require organisation")
	}
	if !f.Visible(note.FieldPaid) || f.Visible(note.FieldSummary) {
		t.Fatalf("unexpected session field visibility")
	}
}

func TestToggleMarksDirty(t *testing.T) {
	f := NewNoteForm()
	edits := 0
	f.OnEdit(func() { edits++ })
	f.ProjectToForm(note.Session, sampleRecords()[0], &spyGuard{})

	f.FocusField(note.FieldPaid)
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if edits != 1 {
		t.Fatalf("expected one edit, got %d", edits)
	}
	if f.Value(note.FieldPaid) != "false" {
		t.Fatalf("expected paid to toggle off")
	}
}

// Package lifecycle tracks whether the open note has unsaved edits and
// decides what leaving it costs.
package lifecycle

import (
	"context"
	"errors"
	"fmt"

	"github.com/Paintersrp/casebook/internal/note"
)

// Tracker holds the edit state of the single open note.
type Tracker struct {
	ref     note.Ref
	open    bool
	dirty   bool
	isNew   bool
	loading int
	rev     int
}

// Open starts tracking ref. isNew marks a record created by "New" that the
// user has not saved yet.
func (t *Tracker) Open(ref note.Ref, isNew bool) {
	t.ref = ref
	t.open = true
	t.dirty = false
	t.isNew = isNew
	t.rev = 0
}

// Reset clears the dirty flag and sets isNew for the current note.
func (t *Tracker) Reset(isNew bool) {
	t.dirty = false
	t.isNew = isNew
}

// Close forgets the open note entirely.
func (t *Tracker) Close() {
	*t = Tracker{}
}

// MarkDirty records a user edit. Edits made while no note is open or while
// the form is being populated programmatically are ignored.
func (t *Tracker) MarkDirty() {
	if !t.open || t.loading > 0 {
		return
	}
	t.dirty = true
	t.rev++
}

// BeginLoad suppresses MarkDirty until the matching EndLoad. Calls nest.
func (t *Tracker) BeginLoad() {
	t.loading++
}

func (t *Tracker) EndLoad() {
	if t.loading > 0 {
		t.loading--
	}
}

func (t *Tracker) Loading() bool {
	return t.loading > 0
}

func (t *Tracker) Dirty() bool {
	return t.dirty
}

func (t *Tracker) IsNew() bool {
	return t.isNew
}

func (t *Tracker) IsOpen() bool {
	return t.open
}

// Current returns the open note, if any.
func (t *Tracker) Current() (note.Ref, bool) {
	return t.ref, t.open
}

// Revision increments on every accepted edit. A save captures it at dispatch
// and passes it back to Saved.
func (t *Tracker) Revision() int {
	return t.rev
}

// Saved records a successful save of ref taken at revision rev. The note
// stays dirty if it was edited again after the save was dispatched.
func (t *Tracker) Saved(ref note.Ref, rev int) {
	if !t.open || t.ref != ref {
		return
	}
	t.isNew = false
	if t.rev == rev {
		t.dirty = false
	}
}

// NeedsConfirmation reports whether leaving the open note loses work.
func (t *Tracker) NeedsConfirmation() bool {
	return t.open && (t.dirty || t.isNew)
}

// Prompt is the confirmation shown before discarding work.
type Prompt struct {
	Title         string
	Message       string
	DeletesRecord bool
}

// DiscardPrompt returns the prompt for leaving the open note, or false when
// no confirmation is needed.
func (t *Tracker) DiscardPrompt() (Prompt, bool) {
	if !t.NeedsConfirmation() {
		return Prompt{}, false
	}
	label := t.ref.Kind.Label()
	if t.isNew {
		return Prompt{
			Title:         "Discard new " + label + "?",
			Message:       fmt.Sprintf("This %s has not been saved. Leaving will delete it.", label),
			DeletesRecord: true,
		}, true
	}
	return Prompt{
		Title:   "Discard changes?",
		Message: fmt.Sprintf("Your edits to this %s have not been saved.", label),
	}, true
}

// Deleter removes a note on the backend.
type Deleter func(ctx context.Context, ref note.Ref) error

// Confirmer asks the user to accept a prompt.
type Confirmer interface {
	Confirm(Prompt) (bool, error)
}

// ConfirmerFunc adapts a plain function to Confirmer.
type ConfirmerFunc func(Prompt) (bool, error)

func (f ConfirmerFunc) Confirm(p Prompt) (bool, error) {
	return f(p)
}

var ErrDeleteRequired = errors.New("a deleter is required to discard a new note")

// Discard drops pending work. An unsaved new record is deleted first; if
// that fails the tracker is left unchanged and the error returned.
func (t *Tracker) Discard(ctx context.Context, del Deleter) error {
	if t.open && t.isNew {
		if del == nil {
			return ErrDeleteRequired
		}
		if err := del(ctx, t.ref); err != nil {
			return fmt.Errorf("failed to delete unsaved %s: %w", t.ref.Kind, err)
		}
	}
	t.Close()
	return nil
}

// ConfirmDiscardIfDirty returns true when navigation may proceed. A clean
// tracker proceeds without asking. A declined prompt leaves everything as
// it was.
func (t *Tracker) ConfirmDiscardIfDirty(ctx context.Context, c Confirmer, del Deleter) (bool, error) {
	prompt, ok := t.DiscardPrompt()
	if !ok {
		return true, nil
	}
	accepted, err := c.Confirm(prompt)
	if err != nil || !accepted {
		return false, err
	}
	if err := t.Discard(ctx, del); err != nil {
		return false, err
	}
	return true, nil
}

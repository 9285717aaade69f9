package cmd

import (
	"fmt"
	"strings"

	"github.com/erikgeiser/promptkit/textinput"
	"github.com/spf13/pflag"

	"github.com/Paintersrp/casebook/internal/note"
)

// ClientFlags holds the client fields accepted by add and edit.
type ClientFlags struct {
	Code      string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Born      string
}

func (f *ClientFlags) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&f.Code, "code", "", "Client code")
	fs.StringVar(&f.FirstName, "first", "", "First name")
	fs.StringVar(&f.LastName, "last", "", "Last name")
	fs.StringVar(&f.Email, "email", "", "Email address")
	fs.StringVar(&f.Phone, "phone", "", "Phone number")
	fs.StringVar(&f.Born, "born", "", "Date of birth (YYYY-MM-DD or DD/MM/YYYY)")
}

var clientFlagNames = []string{"code", "first", "last", "email", "phone", "born"}

// Changed reports whether any client field flag was set on fs.
func (f *ClientFlags) Changed(fs *pflag.FlagSet) bool {
	for _, name := range clientFlagNames {
		if fs.Changed(name) {
			return true
		}
	}
	return false
}

// Apply copies the flags that were set on fs into in.
func (f *ClientFlags) Apply(fs *pflag.FlagSet, in *note.ClientInput) error {
	if fs.Changed("code") {
		in.Code = strings.TrimSpace(f.Code)
	}
	if fs.Changed("first") {
		in.FirstName = strings.TrimSpace(f.FirstName)
	}
	if fs.Changed("last") {
		in.LastName = strings.TrimSpace(f.LastName)
	}
	if fs.Changed("email") {
		in.Email = strings.TrimSpace(f.Email)
	}
	if fs.Changed("phone") {
		in.Phone = strings.TrimSpace(f.Phone)
	}
	if fs.Changed("born") {
		if strings.TrimSpace(f.Born) == "" {
			in.DateOfBirth = nil
			return nil
		}
		d, err := note.ParseInput(f.Born)
		if err != nil {
			return fmt.Errorf("--born: %w", err)
		}
		in.DateOfBirth = &d
	}
	return nil
}

// PromptMissing asks for the required fields left empty in in.
func PromptMissing(in *note.ClientInput) error {
	required := []struct {
		label string
		dst   *string
	}{
		{"Client code:", &in.Code},
		{"First name:", &in.FirstName},
		{"Last name:", &in.LastName},
	}

	for _, r := range required {
		if strings.TrimSpace(*r.dst) != "" {
			continue
		}
		input := textinput.New(r.label)
		input.Validate = func(v string) error {
			if strings.TrimSpace(v) == "" {
				return fmt.Errorf("required")
			}
			return nil
		}
		v, err := input.RunPrompt()
		if err != nil {
			return err
		}
		*r.dst = strings.TrimSpace(v)
	}
	return nil
}

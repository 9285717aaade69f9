package settings

import (
	"fmt"
	"io"
	"strconv"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/erikgeiser/promptkit/selection"
	"github.com/erikgeiser/promptkit/textinput"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Paintersrp/casebook/internal/config"
	"github.com/Paintersrp/casebook/internal/note"
	"github.com/Paintersrp/casebook/internal/state"
	cmdpkg "github.com/Paintersrp/casebook/pkg/cmd"
)

const (
	menuFilter  = "Default client filter"
	menuURL     = "Backend URL"
	menuSession = "Session defaults"
	menuShow    = "Show settings"
)

func NewCmdSettings(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "settings",
		Aliases: []string{"s"},
		Short:   "CLI settings menu",
		Long: heredoc.Doc(`
			Adjust casebook settings without editing the configuration file. With
			no subcommand an interactive menu is shown.
		`),
		Example: heredoc.Doc(`
			casebook settings
			casebook settings filter all
			casebook settings url https://notes.example.com/api
			casebook settings session online 60
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmdpkg.IsInteractive() {
				return Show(cmd.OutOrStdout(), s.Config)
			}
			return menu(cmd, s.Config)
		},
	}

	cmd.AddCommand(
		newCmdFilter(s),
		newCmdURL(s),
		newCmdSession(s),
		newCmdShow(s),
	)

	return cmd
}

func newCmdFilter(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:       "filter <active|archived|all>",
		Short:     "Set the default client filter",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(note.FilterActive), string(note.FilterArchived), string(note.FilterAll)},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.Config.ChangeFilter(args[0]); err != nil {
				return err
			}
			cmd.Printf("Default filter set to %s\n", s.Config.DefaultFilter)
			return nil
		},
	}
}

func newCmdURL(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:   "url <base-url>",
		Short: "Set the backend API base URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.Config.ChangeBaseURL(args[0]); err != nil {
				return err
			}
			cmd.Printf("Backend URL set to %s\n", s.Config.BaseURL)
			return nil
		},
	}
}

func newCmdSession(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:   "session <in-person|online> <minutes>",
		Short: "Set the type and length of new sessions",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid minutes %q", args[1])
			}
			if err := s.Config.ChangeSessionDefaults(args[0], minutes); err != nil {
				return err
			}
			cmd.Printf("New sessions default to %s, %d minutes\n", s.Config.DefaultSessionType, minutes)
			return nil
		},
	}
}

func newCmdShow(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Show(cmd.OutOrStdout(), s.Config)
		},
	}
}

// Show writes the settings as YAML with the backup secret masked.
func Show(w io.Writer, cfg *config.Config) error {
	masked := *cfg
	if masked.Backup.SecretAccessKey != "" {
		masked.Backup.SecretAccessKey = "********"
	}

	fmt.Fprintf(w, "# %s\n", cfg.GetConfigPath())
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&masked); err != nil {
		return err
	}
	return enc.Close()
}

func menu(cmd *cobra.Command, cfg *config.Config) error {
	choice, err := selection.New("Which setting?", []string{
		menuFilter,
		menuURL,
		menuSession,
		menuShow,
	}).RunPrompt()
	if err != nil {
		return err
	}

	switch choice {
	case menuFilter:
		f, err := selection.New("Default client filter", []string{
			string(note.FilterActive),
			string(note.FilterArchived),
			string(note.FilterAll),
		}).RunPrompt()
		if err != nil {
			return err
		}
		if err := cfg.ChangeFilter(f); err != nil {
			return err
		}

	case menuURL:
		input := textinput.New("Backend URL:")
		input.InitialValue = cfg.BaseURL
		input.Validate = config.ValidateBaseURL
		raw, err := input.RunPrompt()
		if err != nil {
			return err
		}
		if err := cfg.ChangeBaseURL(raw); err != nil {
			return err
		}

	case menuSession:
		st, err := selection.New("Session type", []string{
			string(note.InPerson),
			string(note.Online),
		}).RunPrompt()
		if err != nil {
			return err
		}
		input := textinput.New("Length in minutes:")
		input.InitialValue = strconv.Itoa(cfg.DefaultDurationMinutes)
		input.Validate = func(v string) error {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				return fmt.Errorf("enter a positive number")
			}
			return nil
		}
		raw, err := input.RunPrompt()
		if err != nil {
			return err
		}
		minutes, _ := strconv.Atoi(raw)
		if err := cfg.ChangeSessionDefaults(st, minutes); err != nil {
			return err
		}

	case menuShow:
		return Show(cmd.OutOrStdout(), cfg)
	}

	cmd.Println("Settings saved")
	return nil
}

package state

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/viper"

	"github.com/Paintersrp/casebook/internal/api"
	"github.com/Paintersrp/casebook/internal/config"
	"github.com/Paintersrp/casebook/internal/constants"
)

type State struct {
	Config *config.Config
	Home   string

	client  *api.Client
	logFile io.Closer
}

func NewState() (*State, error) {
	home, err := GetHomeDir()
	if err != nil {
		return nil, err
	}

	cfg, err := LoadConfig(home)
	if err != nil {
		return nil, err
	}

	return &State{Config: cfg, Home: home}, nil
}

func GetHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory. err: %s", err)
	}

	return home, nil
}

func LoadConfig(home string) (*config.Config, error) {
	viper.AddConfigPath(home + constants.ConfigDir)
	viper.SetConfigName(constants.ConfigFile)
	viper.SetConfigType(constants.ConfigFileType)
	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.AutomaticEnv()

	if err := config.EnsureConfigExists(home); err != nil {
		return nil, err
	}
	viper.ReadInConfig()

	return config.Load(home)
}

// API returns the backend client for the configured base URL. Flag and
// environment overrides must be applied before the first call.
func (s *State) API() *api.Client {
	if s.client == nil {
		s.client = api.New(s.Config.BaseURL)
	}
	return s.client
}

// StartLogging sends the standard logger to the configured file in debug
// mode and discards it otherwise, so nothing is written over the TUI.
func (s *State) StartLogging() error {
	if !s.Config.Debug {
		log.SetOutput(io.Discard)
		return nil
	}

	f, err := tea.LogToFile(s.Config.LogFile, constants.AppName)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	s.logFile = f
	log.Printf("casebook %s using %s", constants.Version, s.Config.BaseURL)
	return nil
}

func (s *State) Close() error {
	if s == nil || s.logFile == nil {
		return nil
	}
	err := s.logFile.Close()
	s.logFile = nil
	if err != nil && !errors.Is(err, os.ErrClosed) {
		return err
	}
	return nil
}

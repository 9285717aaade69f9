package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Paintersrp/casebook/internal/api"
	"github.com/Paintersrp/casebook/internal/constants"
	"github.com/Paintersrp/casebook/internal/note"
)

const defaultDurationMinutes = 50

// Backup configures the S3 destination for exports.
type Backup struct {
	Bucket          string `yaml:"bucket"            json:"bucket"`
	Prefix          string `yaml:"prefix"            json:"prefix"`
	Region          string `yaml:"region"            json:"region"`
	Endpoint        string `yaml:"endpoint"          json:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"     json:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key" json:"-"`
}

func (b Backup) Enabled() bool {
	return strings.TrimSpace(b.Bucket) != ""
}

type Config struct {
	BaseURL                string `yaml:"base_url"                 json:"base_url"`
	DefaultFilter          string `yaml:"default_filter"           json:"default_filter"`
	DefaultSessionType     string `yaml:"default_session_type"     json:"default_session_type"`
	DefaultDurationMinutes int    `yaml:"default_duration_minutes" json:"default_duration_minutes"`
	LogFile                string `yaml:"log_file"                 json:"log_file"`
	Debug                  bool   `yaml:"debug"                    json:"debug"`
	Backup                 Backup `yaml:"backup"                   json:"backup"`

	home string `yaml:"-"`
}

// Default returns the configuration written on first run.
func Default(home string) *Config {
	return &Config{
		BaseURL:                api.DefaultBaseURL,
		DefaultFilter:          string(note.FilterActive),
		DefaultSessionType:     string(note.InPerson),
		DefaultDurationMinutes: defaultDurationMinutes,
		LogFile:                filepath.Join(home, constants.ConfigDir, constants.LogFile),
		home:                   home,
	}
}

func GetConfigPath(homeDir string) string {
	return filepath.Join(
		homeDir,
		constants.ConfigDir,
		constants.ConfigFile+"."+constants.ConfigFileType,
	)
}

// EnsureConfigExists writes the default configuration unless a file is
// already present.
func EnsureConfigExists(homeDir string) error {
	configPath := GetConfigPath(homeDir)
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	_, err := os.Stat(configPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return Default(homeDir).Save()
	case err != nil:
		return fmt.Errorf("failed to check config file existence: %w", err)
	}
	return nil
}

func Load(home string) (*Config, error) {
	data, err := os.ReadFile(GetConfigPath(home))
	if err != nil {
		return nil, err
	}

	cfg := Default(home)
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, &ConfigInitError{msg: fmt.Sprintf("invalid config file: %v", err)}
		}
	}
	cfg.home = home
	cfg.fillDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) fillDefaults() {
	d := Default(cfg.home)
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = d.BaseURL
	}
	if cfg.DefaultFilter == "" {
		cfg.DefaultFilter = d.DefaultFilter
	}
	if cfg.DefaultSessionType == "" {
		cfg.DefaultSessionType = d.DefaultSessionType
	}
	if cfg.DefaultDurationMinutes == 0 {
		cfg.DefaultDurationMinutes = d.DefaultDurationMinutes
	}
	if cfg.LogFile == "" {
		cfg.LogFile = d.LogFile
	}
}

func (cfg *Config) Validate() error {
	if err := ValidateBaseURL(cfg.BaseURL); err != nil {
		return err
	}
	if _, err := note.ParseFilter(cfg.DefaultFilter); err != nil {
		return &ConfigInitError{msg: fmt.Sprintf("default_filter: %v", err)}
	}
	if _, err := note.ParseSessionType(cfg.DefaultSessionType); err != nil {
		return &ConfigInitError{msg: fmt.Sprintf("default_session_type: %v", err)}
	}
	if cfg.DefaultDurationMinutes < 0 {
		return &ConfigInitError{msg: "default_duration_minutes cannot be negative"}
	}
	if cfg.Backup.Enabled() && cfg.Backup.Region == "" {
		return &ConfigInitError{msg: "backup.region is required when backup.bucket is set"}
	}
	return nil
}

func ValidateBaseURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return &ConfigInitError{msg: fmt.Sprintf("base_url: %v", err)}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &ConfigInitError{msg: fmt.Sprintf("base_url %q must use http or https", raw)}
	}
	if u.Host == "" {
		return &ConfigInitError{msg: fmt.Sprintf("base_url %q has no host", raw)}
	}
	return nil
}

// ApplyOverrides takes flag and environment values bound through viper in
// preference to the file.
func (cfg *Config) ApplyOverrides() error {
	if viper.IsSet("base_url") {
		cfg.BaseURL = viper.GetString("base_url")
	}
	if viper.IsSet("filter") {
		cfg.DefaultFilter = viper.GetString("filter")
	}
	if viper.IsSet("debug") {
		cfg.Debug = viper.GetBool("debug")
	}
	return cfg.Validate()
}

func (cfg *Config) Filter() note.ClientFilter {
	f, err := note.ParseFilter(cfg.DefaultFilter)
	if err != nil {
		return note.FilterActive
	}
	return f
}

// Defaults seeds new notes.
func (cfg *Config) Defaults() note.Defaults {
	st, err := note.ParseSessionType(cfg.DefaultSessionType)
	if err != nil {
		st = note.InPerson
	}
	return note.Defaults{SessionType: st, DurationMinutes: cfg.DefaultDurationMinutes}
}

func (cfg *Config) ChangeFilter(filter string) error {
	f, err := note.ParseFilter(filter)
	if err != nil {
		return err
	}
	cfg.DefaultFilter = string(f)
	return cfg.Save()
}

func (cfg *Config) ChangeBaseURL(raw string) error {
	if err := ValidateBaseURL(raw); err != nil {
		return err
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(raw), "/")
	return cfg.Save()
}

func (cfg *Config) ChangeSessionDefaults(sessionType string, minutes int) error {
	st, err := note.ParseSessionType(sessionType)
	if err != nil {
		return err
	}
	if minutes <= 0 {
		return fmt.Errorf("default duration must be a positive number of minutes")
	}
	cfg.DefaultSessionType = string(st)
	cfg.DefaultDurationMinutes = minutes
	return cfg.Save()
}

func (cfg *Config) GetConfigPath() string {
	return GetConfigPath(cfg.home)
}

func (cfg *Config) Save() error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	configPath := cfg.GetConfigPath()
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return err
	}

	cfg.syncViper()
	return nil
}

func (cfg *Config) syncViper() {
	viper.Set("base_url", cfg.BaseURL)
	viper.Set("filter", cfg.DefaultFilter)
	viper.Set("debug", cfg.Debug)
}

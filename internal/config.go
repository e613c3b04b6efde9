package internal

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config represents the application configuration.
type Config struct {
	App      ApplicationConfig `yaml:"app"`
	Store    StoreConfig       `yaml:"store"`
	Scan     ScanConfig        `yaml:"scan"`
	Journal  JournalConfig     `yaml:"journal"`
	DevStore DevStoreConfig    `yaml:"devstore"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Store.Validate(); err != nil {
		return err
	}
	if err := c.Scan.Validate(); err != nil {
		return err
	}
	return c.DevStore.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
}

// StoreConfig holds the connection settings for the external note store.
type StoreConfig struct {
	BaseURL string `yaml:"base_url"`
	Token   string `yaml:"token"`
}

// Validate validates the store configuration.
func (c *StoreConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.Required),
	)
}

// ScanConfig holds the scan loop settings.
type ScanConfig struct {
	// DelayMS is the clipboard polling interval in milliseconds.
	DelayMS int `yaml:"delay_ms"`
	// FolderName is the folder that holds influence notes.
	FolderName string `yaml:"folder_name"`
	// UninfluencedTitles is a semicolon-delimited list of paste titles that
	// are inserted as narrative text instead of being linked as influences.
	UninfluencedTitles string `yaml:"uninfluenced_titles"`
}

// Validate validates the scan configuration.
func (c *ScanConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.DelayMS, validation.Required, validation.Min(1)),
		validation.Field(&c.FolderName, validation.Required),
	)
}

// Delay returns the polling interval as a duration.
func (c *ScanConfig) Delay() time.Duration {
	return time.Duration(c.DelayMS) * time.Millisecond
}

// Uninfluenced returns the configured uninfluenced titles in order.
// Matching is exact, so entries are not trimmed or normalized.
func (c *ScanConfig) Uninfluenced() []string {
	if c.UninfluencedTitles == "" {
		return nil
	}
	var out []string
	for _, title := range strings.Split(c.UninfluencedTitles, ";") {
		if title != "" {
			out = append(out, title)
		}
	}
	return out
}

// JournalConfig holds the capture journal settings. An empty path disables
// the journal.
type JournalConfig struct {
	Path string `yaml:"path"`
}

// DevStoreConfig holds the settings for the built-in development store server.
type DevStoreConfig struct {
	Port int `yaml:"port"`
}

// Address returns the devstore listen address.
func (c *DevStoreConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the devstore configuration.
func (c *DevStoreConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
		},
		Store: StoreConfig{
			BaseURL: "http://127.0.0.1:41184",
		},
		Scan: ScanConfig{
			DelayMS:    1000,
			FolderName: "Influences",
		},
		Journal: JournalConfig{
			Path: "./ansuz.db",
		},
		DevStore: DevStoreConfig{
			Port: 41184,
		},
	}
}

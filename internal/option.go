package internal

import (
	"github.com/starford/ansuz/internal/clipboard"
	"github.com/starford/ansuz/internal/dialog"
)

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config    *Config
	clipboard clipboard.Device
	dialog    dialog.Dialog
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithClipboard overrides the clipboard device (used in tests).
func WithClipboard(dev clipboard.Device) Option {
	return func(a *application) {
		a.clipboard = dev
	}
}

// WithDialog overrides the confirmation dialog (used in tests).
func WithDialog(d dialog.Dialog) Option {
	return func(a *application) {
		a.dialog = d
	}
}

// Package clipboard abstracts the system clipboard behind a small device
// interface so the scan loop can be tested without one.
package clipboard

import "github.com/atotto/clipboard"

// Device reads and writes clipboard text.
type Device interface {
	ReadText() (string, error)
	WriteText(text string) error
}

// System is the real system clipboard.
type System struct{}

var _ Device = System{}

// ReadText returns the current clipboard text.
func (System) ReadText() (string, error) {
	return clipboard.ReadAll()
}

// WriteText replaces the clipboard text.
func (System) WriteText(text string) error {
	return clipboard.WriteAll(text)
}

// Package paste parses raw clipboard captures into structured pastes.
package paste

import (
	"fmt"
	"strings"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/models"
)

// Parse turns one raw clipboard capture into a Paste.
//
// A valid capture has a title line, an empty separator line, and at least one
// body line; the body is the remaining lines rejoined with newlines. The title
// may be empty if the first line is empty. Anything else is malformed and the
// capture is skipped by the caller.
func Parse(raw string) (*models.Paste, error) {
	lines := strings.Split(raw, "\n")
	if len(lines) < 3 {
		return nil, fmt.Errorf("paste: %d lines: %w", len(lines), apperr.ErrMalformedInput)
	}
	if lines[1] != "" {
		return nil, fmt.Errorf("paste: second line not empty: %w", apperr.ErrMalformedInput)
	}
	return &models.Paste{
		Title: lines[0],
		Body:  strings.Join(lines[2:], "\n"),
	}, nil
}

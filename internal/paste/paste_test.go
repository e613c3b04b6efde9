package paste

import (
	"errors"
	"testing"

	"github.com/starford/ansuz/internal/apperr"
)

func TestParse_Valid(t *testing.T) {
	p, err := Parse("Rose\n\nA flower of the walled garden.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Title != "Rose" {
		t.Errorf("title = %q, want %q", p.Title, "Rose")
	}
	if p.Body != "A flower of the walled garden." {
		t.Errorf("body = %q", p.Body)
	}
}

func TestParse_MultiLineBody(t *testing.T) {
	p, err := Parse("Moth\n\nfirst\nsecond\nthird")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Body != "first\nsecond\nthird" {
		t.Errorf("body = %q, want lines rejoined", p.Body)
	}
}

func TestParse_EmptyTitleAllowed(t *testing.T) {
	p, err := Parse("\n\nbody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Title != "" {
		t.Errorf("title = %q, want empty", p.Title)
	}
}

func TestParse_Malformed(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"one line", "Rose"},
		{"two lines", "Rose\n"},
		{"separator not empty", "Rose\ndesc\nmore"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse(tc.raw); !errors.Is(err, apperr.ErrMalformedInput) {
				t.Errorf("Parse(%q) error = %v, want ErrMalformedInput", tc.raw, err)
			}
		})
	}
}

package dialog

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestPrompt_Answers(t *testing.T) {
	tests := []struct {
		input string
		want  Choice
	}{
		{"f\n", Finished},
		{"finished\n", Finished},
		{"a\n", Another},
		{"ANOTHER\n", Another},
		{"  a  \n", Another},
	}
	for _, tc := range tests {
		d := NewTerminal(strings.NewReader(tc.input), &bytes.Buffer{})
		got, err := d.Prompt(context.Background())
		if err != nil {
			t.Fatalf("Prompt(%q): %v", tc.input, err)
		}
		if got != tc.want {
			t.Errorf("Prompt(%q) = %s, want %s", tc.input, got, tc.want)
		}
	}
}

func TestPrompt_ReasksOnGarbage(t *testing.T) {
	var out bytes.Buffer
	d := NewTerminal(strings.NewReader("what\nanother\n"), &out)

	got, err := d.Prompt(context.Background())
	if err != nil {
		t.Fatalf("Prompt: %v", err)
	}
	if got != Another {
		t.Errorf("Prompt = %s, want another", got)
	}
	if !strings.Contains(out.String(), "Please answer") {
		t.Errorf("output = %q, want a re-prompt", out.String())
	}
}

func TestPrompt_EOFMeansFinished(t *testing.T) {
	d := NewTerminal(strings.NewReader(""), &bytes.Buffer{})

	got, err := d.Prompt(context.Background())
	if err != nil {
		t.Fatalf("Prompt: %v", err)
	}
	if got != Finished {
		t.Errorf("Prompt = %s, want finished", got)
	}
}

func TestPrompt_CancelledContext(t *testing.T) {
	// A reader that never delivers a line keeps Prompt blocked on the context.
	d := NewTerminal(blockingReader{}, &bytes.Buffer{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got, err := d.Prompt(ctx)
	if err == nil {
		t.Fatal("want context error")
	}
	if got != Finished {
		t.Errorf("Prompt = %s, want finished", got)
	}
}

type blockingReader struct{}

func (blockingReader) Read([]byte) (int, error) {
	time.Sleep(time.Hour)
	return 0, nil
}

// Package dialog is the confirmation dialog collaborator: it asks the user
// whether the scan is finished or should continue with another document.
package dialog

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Choice is the user's answer.
type Choice string

const (
	// Finished ends the scan session.
	Finished Choice = "finished"
	// Another starts a new document and keeps scanning.
	Another Choice = "another"
)

// Dialog prompts the user and blocks until an answer arrives or the context
// is cancelled.
type Dialog interface {
	Prompt(ctx context.Context) (Choice, error)
}

// Terminal prompts on a terminal: it prints to out and reads answers line by
// line from in.
type Terminal struct {
	out   io.Writer
	lines chan string
}

var _ Dialog = (*Terminal)(nil)

// NewTerminal creates a Terminal dialog. A goroutine reads in for the
// lifetime of the process.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	t := &Terminal{
		out:   out,
		lines: make(chan string),
	}
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			t.lines <- scanner.Text()
		}
		close(t.lines)
	}()
	return t
}

// Prompt asks until it gets a recognisable answer. EOF on the input counts
// as finished.
func (t *Terminal) Prompt(ctx context.Context) (Choice, error) {
	for {
		fmt.Fprint(t.out, "Scanning clipboard. [f]inished or [a]nother document? ")
		select {
		case <-ctx.Done():
			return Finished, ctx.Err()
		case line, ok := <-t.lines:
			if !ok {
				return Finished, nil
			}
			switch strings.ToLower(strings.TrimSpace(line)) {
			case "f", "finished":
				return Finished, nil
			case "a", "another":
				return Another, nil
			}
			fmt.Fprintln(t.out, "Please answer f or a.")
		}
	}
}

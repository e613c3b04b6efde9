package scan

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/starford/ansuz/internal/clipboard"
	"github.com/starford/ansuz/internal/dialog"
	"github.com/starford/ansuz/internal/refindex"
)

// Loop polls the clipboard and feeds changed captures through the Processor
// until the dialog answers finished.
type Loop struct {
	Processor

	Clipboard clipboard.Device
	Dialog    dialog.Dialog
	Refs      *refindex.Index
	Delay     time.Duration
}

// Run executes one scan session: reset volatile state, rebuild the reference
// index, clear the clipboard so a stale capture is not merged, then poll.
//
// One goroutine owns the session state; the dialog answer arrives on a
// channel. The next poll is scheduled only after the current handler
// completes, so at most one merge is in flight and it always finishes before
// the loop exits.
func (l *Loop) Run(ctx context.Context) error {
	session := &Session{}

	if err := l.Refs.Rebuild(ctx); err != nil {
		return fmt.Errorf("scan: rebuild reference index: %w", err)
	}

	if err := l.Clipboard.WriteText(""); err != nil {
		slog.Warn("clipboard clear failed", slog.String("error", err.Error()))
	}
	last := ""

	answers := make(chan dialog.Choice)
	go func() {
		defer close(answers)
		for {
			choice, err := l.Dialog.Prompt(ctx)
			if err != nil {
				return
			}
			select {
			case answers <- choice:
			case <-ctx.Done():
				return
			}
			if choice == dialog.Finished {
				return
			}
		}
	}()

	timer := time.NewTimer(l.Delay)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case choice, ok := <-answers:
			if !ok || choice == dialog.Finished {
				slog.Info("scan finished")
				return nil
			}
			// "another": the next capture starts a fresh document.
			session.ActiveID = ""
			slog.Info("starting another document")
		case <-timer.C:
			if err := l.tick(ctx, session, &last); err != nil {
				return err
			}
			timer.Reset(l.Delay)
		}
	}
}

// tick reads the clipboard once and processes it when it changed.
func (l *Loop) tick(ctx context.Context, session *Session, last *string) error {
	raw, err := l.Clipboard.ReadText()
	if err != nil {
		slog.Warn("clipboard read failed", slog.String("error", err.Error()))
		return nil
	}
	if raw == *last || raw == "" {
		return nil
	}
	*last = raw

	_, err = l.Process(ctx, session, raw)
	return err
}

// Package scan drives the poll-parse-resolve-merge-persist cycle.
package scan

import (
	"context"
	"errors"
	"log/slog"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/journal"
	"github.com/starford/ansuz/internal/merge"
	"github.com/starford/ansuz/internal/paste"
	"github.com/starford/ansuz/internal/resolver"
	"github.com/starford/ansuz/internal/store"
)

// OutcomeRejected marks a capture that did not parse.
const OutcomeRejected = "rejected"

// Session is the volatile state of one scan session: the id of the document
// currently receiving pastes. Reset to empty when the user asks for another
// document.
type Session struct {
	ActiveID string
}

// Recorder receives one event per handled capture. *journal.DB satisfies it.
type Recorder interface {
	Record(e journal.Event) error
}

// Processor runs a single capture through parse, resolve, merge, and persist.
type Processor struct {
	Store    store.Provider
	Resolver *resolver.Resolver
	Engine   *merge.Engine
	Journal  Recorder // optional
}

// Process handles one raw capture. Malformed input is logged and journalled
// but returns a nil error; store failures propagate and abort the session.
func (p *Processor) Process(ctx context.Context, s *Session, raw string) (string, error) {
	parsed, err := paste.Parse(raw)
	if err != nil {
		if errors.Is(err, apperr.ErrMalformedInput) {
			slog.Info("capture rejected", slog.String("error", err.Error()))
			p.record(journal.Event{Outcome: OutcomeRejected})
			return OutcomeRejected, nil
		}
		return "", err
	}

	doc, err := p.Resolver.Resolve(ctx, s.ActiveID, *parsed)
	if err != nil {
		return "", err
	}
	s.ActiveID = doc.ID

	next, outcome, err := p.Engine.Merge(ctx, *doc, *parsed)
	if err != nil {
		return "", err
	}

	if next.Title != doc.Title || next.Body != doc.Body {
		if _, err := p.Store.UpdateNote(ctx, next.ID, next.Title, next.Body); err != nil {
			return "", err
		}
	}

	slog.Info("capture merged",
		slog.String("title", parsed.Title),
		slog.String("outcome", string(outcome)),
		slog.String("note_id", doc.ID))
	p.record(journal.Event{Title: parsed.Title, Outcome: string(outcome), NoteID: doc.ID})
	return string(outcome), nil
}

func (p *Processor) record(e journal.Event) {
	if p.Journal == nil {
		return
	}
	if err := p.Journal.Record(e); err != nil {
		slog.Warn("journal write failed", slog.String("error", err.Error()))
	}
}

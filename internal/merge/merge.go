// Package merge computes the next state of a document from an incoming paste.
package merge

import (
	"context"
	"slices"
	"strings"

	"github.com/starford/ansuz/internal/influence"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/refindex"
)

// Outcome classifies what a merge did.
type Outcome string

const (
	// OutcomeFilled means an empty document adopted the paste wholesale.
	OutcomeFilled Outcome = "filled"
	// OutcomeDuplicate means the paste body was already present; no change.
	OutcomeDuplicate Outcome = "duplicate"
	// OutcomeAppended means the paste continued the document's own subject.
	OutcomeAppended Outcome = "appended"
	// OutcomeUninfluenced means the paste was inserted as narrative text.
	OutcomeUninfluenced Outcome = "uninfluenced"
	// OutcomeLinked means the paste named a distinct influence.
	OutcomeLinked Outcome = "linked"
)

// Engine applies the merge rules. The fill, duplicate, append, and
// uninfluenced paths are pure; the influence path creates the reference note
// and tag through the reference index.
type Engine struct {
	refs         *refindex.Index
	uninfluenced []string
}

// NewEngine creates an Engine. uninfluenced lists the titles treated as plain
// narrative inserts; matching is exact, no normalization.
func NewEngine(refs *refindex.Index, uninfluenced []string) *Engine {
	return &Engine{refs: refs, uninfluenced: uninfluenced}
}

// Merge returns the next document state. The checks run in literal order:
// empty title, duplicate body, same title, uninfluenced title, influence.
func (e *Engine) Merge(ctx context.Context, doc models.Document, p models.Paste) (models.Document, Outcome, error) {
	if doc.Title == "" {
		doc.Title = p.Title
		doc.Body = p.Body
		return doc, OutcomeFilled, nil
	}

	if strings.Contains(doc.Body, p.Body) {
		return doc, OutcomeDuplicate, nil
	}

	if doc.Title == p.Title {
		doc.Body = doc.Body + "\n\n" + p.Body
		return doc, OutcomeAppended, nil
	}

	if slices.Contains(e.uninfluenced, p.Title) {
		doc.Body = doc.Body + "\n\n*" + p.Title + "*\n\n" + p.Body
		return doc, OutcomeUninfluenced, nil
	}

	return e.link(ctx, doc, p)
}

// link adds an influence marker for the paste and attaches the matching tag.
func (e *Engine) link(ctx context.Context, doc models.Document, p models.Paste) (models.Document, Outcome, error) {
	noteID, err := e.refs.ResolveInfluenceNote(ctx, p)
	if err != nil {
		return doc, OutcomeLinked, err
	}

	if l, ok := influence.Locate(doc.Body); !ok || !l.ContainsID(noteID) {
		doc.Body = influence.Append(doc.Body, influence.Format(p.Title, noteID))
	}

	tagID, err := e.refs.ResolveTag(ctx, p.Title)
	if err != nil {
		return doc, OutcomeLinked, err
	}
	if err := e.refs.AttachTag(ctx, tagID, doc.ID); err != nil {
		return doc, OutcomeLinked, err
	}
	return doc, OutcomeLinked, nil
}

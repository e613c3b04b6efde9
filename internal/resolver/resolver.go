// Package resolver decides which document a paste belongs to.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/store"
)

// Resolver selects or creates the target document for an incoming paste.
type Resolver struct {
	store store.Provider
}

// New creates a Resolver over the given store.
func New(provider store.Provider) *Resolver {
	return &Resolver{store: provider}
}

// Resolve returns the document the paste should merge into. When activeID is
// non-empty the active document is re-fetched by id; if it vanished from the
// store, resolution falls back to the start logic.
func (r *Resolver) Resolve(ctx context.Context, activeID string, p models.Paste) (*models.Document, error) {
	if activeID != "" {
		note, err := r.store.GetNote(ctx, activeID)
		if err == nil {
			return docFromNote(note), nil
		}
		if !errors.Is(err, apperr.ErrNotFound) {
			return nil, err
		}
		slog.Warn("active document vanished, restarting resolution", slog.String("id", activeID))
	}
	return r.start(ctx, p)
}

// start picks a target by priority: exact-title selected note, exact-title
// search hit, blank selected note, sibling of the selected note, the selected
// folder's parent, or the default location. Reusing a title match or a blank
// scratch note beats creating clutter; a sibling is created only when the user
// is positioned inside existing content that must not be overwritten.
func (r *Resolver) start(ctx context.Context, p models.Paste) (*models.Document, error) {
	sel, err := r.store.Selection(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolver: read selection: %w", err)
	}

	var selected *models.Note
	if sel.NoteID != "" {
		selected, err = r.store.GetNote(ctx, sel.NoteID)
		if err != nil && !errors.Is(err, apperr.ErrNotFound) {
			return nil, err
		}
	}

	// 1. Selected note already has the paste's title.
	if selected != nil && selected.Title == p.Title {
		return docFromNote(selected), nil
	}

	// 2. A note titled exactly like the paste exists somewhere.
	if note, err := r.findByTitle(ctx, p.Title); err != nil {
		return nil, err
	} else if note != nil {
		return docFromNote(note), nil
	}

	// 3. Selected note is a blank scratch note.
	if selected != nil && selected.Title == "" && selected.Body == "" {
		return docFromNote(selected), nil
	}

	// 4. Selected note has content: create a sibling next to it.
	if selected != nil {
		return r.create(ctx, selected.ParentID)
	}

	// 5. Only a folder is selected: create in that folder's parent.
	if sel.FolderID != "" {
		folder, err := r.store.GetFolder(ctx, sel.FolderID)
		if err == nil {
			return r.create(ctx, folder.ParentID)
		}
		if !errors.Is(err, apperr.ErrNotFound) {
			return nil, err
		}
	}

	// 6. Nothing usable is selected.
	return r.create(ctx, "")
}

// findByTitle searches for a note titled exactly title and returns the top
// match, re-fetched by id.
func (r *Resolver) findByTitle(ctx context.Context, title string) (*models.Note, error) {
	results, err := r.store.SearchNotes(ctx, fmt.Sprintf("title:%q", title), 10)
	if err != nil {
		return nil, fmt.Errorf("resolver: search by title: %w", err)
	}
	for _, hit := range results {
		if hit.Title != title {
			continue
		}
		note, err := r.store.GetNote(ctx, hit.ID)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				continue
			}
			return nil, err
		}
		return note, nil
	}
	return nil, nil
}

// create synthesizes a fresh empty note under parentID.
func (r *Resolver) create(ctx context.Context, parentID string) (*models.Document, error) {
	note, err := r.store.CreateNote(ctx, parentID, "", "")
	if err != nil {
		return nil, fmt.Errorf("resolver: create document: %w", err)
	}
	slog.Info("document created", slog.String("id", note.ID), slog.String("parent", parentID))
	return docFromNote(note), nil
}

func docFromNote(n *models.Note) *models.Document {
	return &models.Document{ID: n.ID, Title: n.Title, Body: n.Body}
}

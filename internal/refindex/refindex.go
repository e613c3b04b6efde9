// Package refindex caches influence note and tag identifiers for one scan
// session.
package refindex

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/store"
)

// Index maps influence titles to note ids and tag titles to tag ids.
//
// Both maps are a best-effort cache over the external store: staleness is
// resolved lazily by search-then-create fallback. The index is rebuilt
// wholesale at the start of every scan and never incrementally invalidated.
type Index struct {
	store      store.Provider
	folderName string

	folderID string
	notes    map[string]string // influence title -> note id
	tags     map[string]string // tag title -> tag id
}

// New creates an Index over the given store. folderName is the folder that
// holds influence notes.
func New(provider store.Provider, folderName string) *Index {
	return &Index{
		store:      provider,
		folderName: folderName,
		notes:      make(map[string]string),
		tags:       make(map[string]string),
	}
}

// Rebuild clears both maps and repopulates them from the store: it resolves
// (or creates) the influence folder, lists every note in it, and keeps only
// the tags whose title names a known influence.
func (x *Index) Rebuild(ctx context.Context) error {
	x.notes = make(map[string]string)
	x.tags = make(map[string]string)
	x.folderID = ""

	folderID, err := x.resolveFolder(ctx)
	if err != nil {
		return err
	}
	x.folderID = folderID

	notes, err := x.store.ListFolderNotes(ctx, folderID)
	if err != nil {
		return fmt.Errorf("refindex: list influence notes: %w", err)
	}
	for _, n := range notes {
		x.notes[n.Title] = n.ID
	}

	tags, err := x.store.ListTags(ctx)
	if err != nil {
		return fmt.Errorf("refindex: list tags: %w", err)
	}
	for _, t := range tags {
		if _, ok := x.notes[t.Title]; ok {
			x.tags[t.Title] = t.ID
		}
	}

	slog.Debug("reference index rebuilt",
		slog.Int("influences", len(x.notes)),
		slog.Int("tags", len(x.tags)))
	return nil
}

// resolveFolder finds the influence folder by name, creating it when absent.
func (x *Index) resolveFolder(ctx context.Context) (string, error) {
	folders, err := x.store.SearchFolders(ctx, x.folderName)
	if err != nil {
		return "", fmt.Errorf("refindex: search folder: %w", err)
	}
	for _, f := range folders {
		if f.Title == x.folderName {
			return f.ID, nil
		}
	}
	folder, err := x.store.CreateFolder(ctx, x.folderName)
	if err != nil {
		return "", fmt.Errorf("refindex: create folder: %w", err)
	}
	return folder.ID, nil
}

// ResolveInfluenceNote returns the id of the influence note for the paste's
// title, creating the note under the influence folder on a cache miss. A given
// title maps to exactly one note for the lifetime of the cache.
func (x *Index) ResolveInfluenceNote(ctx context.Context, p models.Paste) (string, error) {
	if id, ok := x.notes[p.Title]; ok {
		return id, nil
	}
	note, err := x.store.CreateNote(ctx, x.folderID, p.Title, p.Body)
	if err != nil {
		return "", fmt.Errorf("refindex: create influence note: %w", err)
	}
	x.notes[p.Title] = note.ID
	slog.Info("influence note created", slog.String("title", p.Title), slog.String("id", note.ID))
	return note.ID, nil
}

// ResolveTag returns the id of the tag with the given title: cache hit, else
// search by title, else create. The result is cached before any attach.
func (x *Index) ResolveTag(ctx context.Context, title string) (string, error) {
	if id, ok := x.tags[title]; ok {
		return id, nil
	}
	tags, err := x.store.SearchTags(ctx, title)
	if err != nil {
		return "", fmt.Errorf("refindex: search tag: %w", err)
	}
	for _, t := range tags {
		if t.Title == title {
			x.tags[title] = t.ID
			return t.ID, nil
		}
	}
	tag, err := x.store.CreateTag(ctx, title)
	if err != nil {
		return "", fmt.Errorf("refindex: create tag: %w", err)
	}
	x.tags[title] = tag.ID
	return tag.ID, nil
}

// AttachTag attaches a tag to a note.
func (x *Index) AttachTag(ctx context.Context, tagID, noteID string) error {
	if err := x.store.AttachTag(ctx, tagID, noteID); err != nil {
		return fmt.Errorf("refindex: attach tag: %w", err)
	}
	return nil
}

// Influences returns the cached influence titles with their note ids.
func (x *Index) Influences() map[string]string {
	out := make(map[string]string, len(x.notes))
	for title, id := range x.notes {
		out[title] = id
	}
	return out
}

// Package store defines the remote note store abstraction and its HTTP client.
package store

import (
	"context"

	"github.com/starford/ansuz/internal/models"
)

// Provider is the interface for remote note store operations.
// Lookup methods return apperr.ErrNotFound when the item does not exist.
type Provider interface {
	// GetNote returns the note with the given id.
	GetNote(ctx context.Context, id string) (*models.Note, error)
	// CreateNote creates a note; parentID may be empty for the default location.
	CreateNote(ctx context.Context, parentID, title, body string) (*models.Note, error)
	// UpdateNote replaces the title and body of an existing note.
	UpdateNote(ctx context.Context, id, title, body string) (*models.Note, error)

	// CreateFolder creates a top-level folder.
	CreateFolder(ctx context.Context, title string) (*models.Folder, error)
	// GetFolder returns the folder with the given id.
	GetFolder(ctx context.Context, id string) (*models.Folder, error)
	// ListFolderNotes returns every note in a folder, walking all pages.
	ListFolderNotes(ctx context.Context, folderID string) ([]models.Note, error)

	// ListTags returns every tag in the store, walking all pages.
	ListTags(ctx context.Context) ([]models.Tag, error)
	// CreateTag creates a tag.
	CreateTag(ctx context.Context, title string) (*models.Tag, error)
	// AttachTag attaches a tag to a note. Attaching twice is a no-op.
	AttachTag(ctx context.Context, tagID, noteID string) error

	// SearchNotes runs a full-text query; a `title:"X"` query matches titles exactly.
	SearchNotes(ctx context.Context, query string, limit int) ([]models.Note, error)
	// SearchFolders searches folders by title.
	SearchFolders(ctx context.Context, query string) ([]models.Folder, error)
	// SearchTags searches tags by title.
	SearchTags(ctx context.Context, query string) ([]models.Tag, error)

	// Selection returns the note/folder currently selected in the store's UI.
	Selection(ctx context.Context) (*models.Selection, error)
}

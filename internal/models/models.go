// Package models defines the domain types for Ansuz.
package models

// Paste is one parsed clipboard capture: a title line and a body.
// Immutable once produced by the parser.
type Paste struct {
	Title string
	Body  string
}

// Note is a note as held by the external store.
type Note struct {
	ID       string `json:"id"`
	ParentID string `json:"parent_id,omitempty"`
	Title    string `json:"title"`
	Body     string `json:"body"`
}

// Folder is a notebook/folder in the external store.
type Folder struct {
	ID       string `json:"id"`
	ParentID string `json:"parent_id,omitempty"`
	Title    string `json:"title"`
}

// Tag is a tag in the external store.
type Tag struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Selection reflects what is currently selected in the store's UI.
// Either field may be empty.
type Selection struct {
	NoteID   string `json:"note_id,omitempty"`
	FolderID string `json:"folder_id,omitempty"`
}

// Document is the note currently being built during a scan session.
// An empty ID means the note has not been created yet; once set it never
// changes for the document's lifetime.
type Document struct {
	ID    string
	Title string
	Body  string
}

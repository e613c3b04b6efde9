// Package devstore implements the note store wire API in memory. It backs the
// store client's tests and the `devstore` command, which serves it over HTTP
// for local development.
package devstore

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"sync"

	"github.com/starford/ansuz/internal/models"
)

// Store holds notes, folders, and tags in memory.
//
// A mutex guards all maps: the HTTP handlers may be called concurrently even
// though the scanner itself issues one request at a time.
type Store struct {
	mu sync.Mutex

	notes   map[string]*models.Note
	folders map[string]*models.Folder
	tags    map[string]*models.Tag
	// tagNotes maps tag id to the set of note ids it is attached to.
	tagNotes map[string]map[string]struct{}

	// insertion order, for stable pagination
	noteOrder []string
	tagOrder  []string

	selection models.Selection
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		notes:    make(map[string]*models.Note),
		folders:  make(map[string]*models.Folder),
		tags:     make(map[string]*models.Tag),
		tagNotes: make(map[string]map[string]struct{}),
	}
}

func newID() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

// CreateNote adds a note and returns it with a fresh id.
func (s *Store) CreateNote(parentID, title, body string) *models.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := &models.Note{ID: newID(), ParentID: parentID, Title: title, Body: body}
	s.notes[n.ID] = n
	s.noteOrder = append(s.noteOrder, n.ID)
	return n
}

// GetNote returns the note with the given id, or nil.
func (s *Store) GetNote(id string) *models.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n, ok := s.notes[id]; ok {
		cp := *n
		return &cp
	}
	return nil
}

// UpdateNote replaces title and body of an existing note. Returns nil when
// the note does not exist.
func (s *Store) UpdateNote(id, title, body string) *models.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notes[id]
	if !ok {
		return nil
	}
	n.Title = title
	n.Body = body
	cp := *n
	return &cp
}

// CreateFolder adds a folder and returns it with a fresh id.
func (s *Store) CreateFolder(parentID, title string) *models.Folder {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := &models.Folder{ID: newID(), ParentID: parentID, Title: title}
	s.folders[f.ID] = f
	return f
}

// GetFolder returns the folder with the given id, or nil.
func (s *Store) GetFolder(id string) *models.Folder {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.folders[id]; ok {
		cp := *f
		return &cp
	}
	return nil
}

// FolderNotes returns one page of the notes in a folder.
func (s *Store) FolderNotes(folderID string, pageNum, limit int) ([]models.Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var all []models.Note
	for _, id := range s.noteOrder {
		if n := s.notes[id]; n.ParentID == folderID {
			all = append(all, *n)
		}
	}
	return paginate(all, pageNum, limit)
}

// CreateTag adds a tag and returns it with a fresh id.
func (s *Store) CreateTag(title string) *models.Tag {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &models.Tag{ID: newID(), Title: title}
	s.tags[t.ID] = t
	s.tagOrder = append(s.tagOrder, t.ID)
	s.tagNotes[t.ID] = make(map[string]struct{})
	return t
}

// Tags returns one page of all tags.
func (s *Store) Tags(pageNum, limit int) ([]models.Tag, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var all []models.Tag
	for _, id := range s.tagOrder {
		all = append(all, *s.tags[id])
	}
	return paginate(all, pageNum, limit)
}

// AttachTag attaches a tag to a note. Returns false when the tag is unknown.
func (s *Store) AttachTag(tagID, noteID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.tagNotes[tagID]
	if !ok {
		return false
	}
	set[noteID] = struct{}{}
	return true
}

// TagNotes returns the ids of the notes a tag is attached to.
func (s *Store) TagNotes(tagID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for id := range s.tagNotes[tagID] {
		out = append(out, id)
	}
	return out
}

// SearchNotes matches notes against query. A `title:"X"` query matches titles
// exactly; anything else is a case-insensitive substring match over title and
// body.
func (s *Store) SearchNotes(query string, limit int) []models.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	exact, isExact := exactTitleQuery(query)
	var out []models.Note
	for _, id := range s.noteOrder {
		n := s.notes[id]
		if isExact {
			if n.Title == exact {
				out = append(out, *n)
			}
		} else if containsFold(n.Title, query) || containsFold(n.Body, query) {
			out = append(out, *n)
		}
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// SearchFolders matches folders by title substring.
func (s *Store) SearchFolders(query string) []models.Folder {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Folder
	for _, f := range s.folders {
		if containsFold(f.Title, query) {
			out = append(out, *f)
		}
	}
	return out
}

// SearchTags matches tags by title substring.
func (s *Store) SearchTags(query string) []models.Tag {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Tag
	for _, id := range s.tagOrder {
		if t := s.tags[id]; containsFold(t.Title, query) {
			out = append(out, *t)
		}
	}
	return out
}

// Selection returns the current UI selection.
func (s *Store) Selection() models.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection
}

// SetSelection replaces the current UI selection.
func (s *Store) SetSelection(sel models.Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = sel
}

// exactTitleQuery recognises the `title:"X"` search form.
func exactTitleQuery(query string) (string, bool) {
	const prefix = `title:"`
	if strings.HasPrefix(query, prefix) && strings.HasSuffix(query, `"`) && len(query) > len(prefix) {
		return query[len(prefix) : len(query)-1], true
	}
	return "", false
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func paginate[T any](all []T, pageNum, limit int) ([]T, bool) {
	if pageNum < 1 {
		pageNum = 1
	}
	if limit < 1 {
		limit = 100
	}
	start := (pageNum - 1) * limit
	if start >= len(all) {
		return nil, false
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], end < len(all)
}

package store_test

import (
	"context"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/devstore"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/store"
	"github.com/starford/ansuz/internal/testutil"
)

func TestClient_NoteCRUD(t *testing.T) {
	client, _ := testutil.TestStore(t)
	ctx := context.Background()

	created, err := client.CreateNote(ctx, "", "Rose", "a flower")
	if err != nil {
		t.Fatalf("CreateNote: %v", err)
	}
	if created.ID == "" {
		t.Fatal("created note has no id")
	}

	got, err := client.GetNote(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetNote: %v", err)
	}
	if got.Title != "Rose" || got.Body != "a flower" {
		t.Errorf("got %+v", got)
	}

	updated, err := client.UpdateNote(ctx, created.ID, "Rose", "a flower\n\nmore")
	if err != nil {
		t.Fatalf("UpdateNote: %v", err)
	}
	if updated.Body != "a flower\n\nmore" {
		t.Errorf("updated body = %q", updated.Body)
	}
}

func TestClient_GetNoteNotFound(t *testing.T) {
	client, _ := testutil.TestStore(t)
	_, err := client.GetNote(context.Background(), "nope")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestClient_BadTokenRejected(t *testing.T) {
	srv := httptest.NewServer(devstore.NewRouter(devstore.New(), "secret"))
	defer srv.Close()

	client := store.NewClient(srv.URL, "wrong")
	_, err := client.CreateNote(context.Background(), "", "Rose", "body")
	if err == nil {
		t.Fatal("expected auth error")
	}
	if errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("error = %v, want a non-NotFound auth failure", err)
	}
}

func TestClient_ListFolderNotesWalksPages(t *testing.T) {
	client, mem := testutil.TestStore(t)
	ctx := context.Background()

	folder := mem.CreateFolder("", "Influences")
	for i := 0; i < 205; i++ {
		mem.CreateNote(folder.ID, fmt.Sprintf("Influence %03d", i), "body")
	}

	notes, err := client.ListFolderNotes(ctx, folder.ID)
	if err != nil {
		t.Fatalf("ListFolderNotes: %v", err)
	}
	if len(notes) != 205 {
		t.Errorf("len(notes) = %d, want 205", len(notes))
	}
}

func TestClient_ListTagsWalksPages(t *testing.T) {
	client, mem := testutil.TestStore(t)
	ctx := context.Background()

	for i := 0; i < 150; i++ {
		mem.CreateTag(fmt.Sprintf("tag-%03d", i))
	}
	tags, err := client.ListTags(ctx)
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	if len(tags) != 150 {
		t.Errorf("len(tags) = %d, want 150", len(tags))
	}
}

func TestClient_SearchNotesExactTitle(t *testing.T) {
	client, mem := testutil.TestStore(t)
	ctx := context.Background()

	mem.CreateNote("", "Rose", "one")
	mem.CreateNote("", "Rose Garden", "two")

	notes, err := client.SearchNotes(ctx, `title:"Rose"`, 10)
	if err != nil {
		t.Fatalf("SearchNotes: %v", err)
	}
	if len(notes) != 1 || notes[0].Title != "Rose" {
		t.Errorf("notes = %+v, want exactly the note titled Rose", notes)
	}
}

func TestClient_TagCreateAndAttach(t *testing.T) {
	client, mem := testutil.TestStore(t)
	ctx := context.Background()

	note := mem.CreateNote("", "Rose", "body")
	tag, err := client.CreateTag(ctx, "Moth")
	if err != nil {
		t.Fatalf("CreateTag: %v", err)
	}
	if err := client.AttachTag(ctx, tag.ID, note.ID); err != nil {
		t.Fatalf("AttachTag: %v", err)
	}
	attached := mem.TagNotes(tag.ID)
	if len(attached) != 1 || attached[0] != note.ID {
		t.Errorf("attached = %v, want [%s]", attached, note.ID)
	}
}

func TestClient_Selection(t *testing.T) {
	client, mem := testutil.TestStore(t)
	ctx := context.Background()

	note := mem.CreateNote("", "Rose", "body")
	mem.SetSelection(models.Selection{NoteID: note.ID})

	sel, err := client.Selection(ctx)
	if err != nil {
		t.Fatalf("Selection: %v", err)
	}
	if sel.NoteID != note.ID {
		t.Errorf("sel.NoteID = %q, want %q", sel.NoteID, note.ID)
	}
}

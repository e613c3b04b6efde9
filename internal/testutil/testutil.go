// Package testutil provides shared test helpers for setting up stores and journals.
package testutil

import (
	"net/http/httptest"
	"os"
	"testing"

	"github.com/starford/ansuz/internal/devstore"
	"github.com/starford/ansuz/internal/journal"
	"github.com/starford/ansuz/internal/store"
)

// Token is the Bearer token the test store expects.
const Token = "test-token"

// TestStore serves an in-memory devstore over HTTP and returns a client
// connected to it, plus the backing store for seeding and inspection.
func TestStore(t *testing.T) (*store.Client, *devstore.Store) {
	t.Helper()
	mem := devstore.New()
	srv := httptest.NewServer(devstore.NewRouter(mem, Token))
	t.Cleanup(srv.Close)
	return store.NewClient(srv.URL, Token), mem
}

// TestJournal creates a temporary journal database that is automatically cleaned up.
func TestJournal(t *testing.T) *journal.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "ansuz-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := journal.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

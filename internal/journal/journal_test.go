package journal_test

import (
	"testing"
	"time"

	"github.com/starford/ansuz/internal/journal"
	"github.com/starford/ansuz/internal/testutil"
)

func TestRecordAndRecent(t *testing.T) {
	db := testutil.TestJournal(t)

	first := journal.Event{
		At:      time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Title:   "Rose",
		Outcome: "filled",
		NoteID:  "n1",
	}
	second := journal.Event{
		At:      time.Date(2026, 8, 1, 12, 1, 0, 0, time.UTC),
		Title:   "Moth",
		Outcome: "linked",
		NoteID:  "n1",
	}
	if err := db.Record(first); err != nil {
		t.Fatalf("record first: %v", err)
	}
	if err := db.Record(second); err != nil {
		t.Fatalf("record second: %v", err)
	}

	events, err := db.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("events = %+v, want 2", events)
	}
	// Newest first.
	if events[0].Title != "Moth" || events[1].Title != "Rose" {
		t.Errorf("order = [%s, %s], want [Moth, Rose]", events[0].Title, events[1].Title)
	}
	if events[0].Outcome != "linked" || events[0].NoteID != "n1" {
		t.Errorf("event = %+v", events[0])
	}
}

func TestRecordFillsZeroTime(t *testing.T) {
	db := testutil.TestJournal(t)

	if err := db.Record(journal.Event{Title: "Rose", Outcome: "filled"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	events, err := db.Recent(1)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(events) != 1 || events[0].At.IsZero() {
		t.Errorf("events = %+v, want a stamped event", events)
	}
}

func TestRecentHonoursLimit(t *testing.T) {
	db := testutil.TestJournal(t)

	for i := 0; i < 5; i++ {
		if err := db.Record(journal.Event{Title: "Rose", Outcome: "appended"}); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	events, err := db.Recent(3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(events) != 3 {
		t.Errorf("len = %d, want 3", len(events))
	}
}

package scan_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/starford/ansuz/internal/devstore"
	"github.com/starford/ansuz/internal/dialog"
	"github.com/starford/ansuz/internal/scan"
)

// fakeClipboard is a concurrency-safe in-memory clipboard. The cleared
// channel signals the session-start clear so tests can order their writes
// after it.
type fakeClipboard struct {
	mu      sync.Mutex
	text    string
	cleared chan struct{}
	once    sync.Once
}

func newFakeClipboard() *fakeClipboard {
	return &fakeClipboard{cleared: make(chan struct{})}
}

func (c *fakeClipboard) ReadText() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text, nil
}

func (c *fakeClipboard) WriteText(text string) error {
	c.mu.Lock()
	c.text = text
	c.mu.Unlock()
	c.once.Do(func() { close(c.cleared) })
	return nil
}

func (c *fakeClipboard) Set(text string) {
	c.mu.Lock()
	c.text = text
	c.mu.Unlock()
}

// scriptedDialog hands out answers pushed onto its channel.
type scriptedDialog struct {
	answers chan dialog.Choice
}

func newScriptedDialog() *scriptedDialog {
	return &scriptedDialog{answers: make(chan dialog.Choice)}
}

func (d *scriptedDialog) Prompt(ctx context.Context) (dialog.Choice, error) {
	select {
	case <-ctx.Done():
		return dialog.Finished, ctx.Err()
	case choice := <-d.answers:
		return choice, nil
	}
}

func testLoop(t *testing.T) (*scan.Loop, *fakeClipboard, *scriptedDialog, *devstore.Store) {
	t.Helper()
	proc, refs, mem := testProcessor(t)
	clip := newFakeClipboard()
	dlg := newScriptedDialog()
	loop := &scan.Loop{
		Processor: *proc,
		Clipboard: clip,
		Dialog:    dlg,
		Refs:      refs,
		Delay:     2 * time.Millisecond,
	}
	return loop, clip, dlg, mem
}

func runLoop(t *testing.T, loop *scan.Loop) chan error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- loop.Run(context.Background()) }()
	return done
}

func waitForNote(t *testing.T, mem *devstore.Store, title string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(mem.SearchNotes(`title:"`+title+`"`, 0)) > 0 {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("note %q never appeared", title)
}

func TestLoop_FinishedStops(t *testing.T) {
	loop, _, dlg, _ := testLoop(t)
	done := runLoop(t, loop)

	dlg.answers <- dialog.Finished
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop on finished")
	}
}

func TestLoop_ProcessesChangedClipboard(t *testing.T) {
	loop, clip, dlg, mem := testLoop(t)
	done := runLoop(t, loop)

	<-clip.cleared
	clip.Set("Rose\n\ndesc")
	waitForNote(t, mem, "Rose")

	dlg.answers <- dialog.Finished
	if err := <-done; err != nil {
		t.Fatalf("Run: %v", err)
	}

	// One capture, one note (plus the influence folder holds none).
	notes := mem.SearchNotes("desc", 0)
	if len(notes) != 1 {
		t.Errorf("notes = %+v, want exactly one", notes)
	}
}

func TestLoop_AnotherStartsNewDocument(t *testing.T) {
	loop, clip, dlg, mem := testLoop(t)
	done := runLoop(t, loop)

	<-clip.cleared
	clip.Set("Rose\n\ndesc")
	waitForNote(t, mem, "Rose")

	dlg.answers <- dialog.Another
	// Let the loop consume the answer before the next capture lands.
	time.Sleep(50 * time.Millisecond)
	clip.Set("Lily\n\nleaf")
	waitForNote(t, mem, "Lily")

	dlg.answers <- dialog.Finished
	if err := <-done; err != nil {
		t.Fatalf("Run: %v", err)
	}

	rose := mem.SearchNotes(`title:"Rose"`, 0)
	lily := mem.SearchNotes(`title:"Lily"`, 0)
	if len(rose) != 1 || len(lily) != 1 {
		t.Fatalf("rose = %+v, lily = %+v", rose, lily)
	}
	if rose[0].ID == lily[0].ID {
		t.Error("second capture reused the first document")
	}
	if lily[0].ParentID != "" {
		t.Errorf("lily parent = %q, want a fresh document at the root", lily[0].ParentID)
	}
}

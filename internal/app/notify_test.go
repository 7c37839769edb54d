package app

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/mdplus/internal/engine/document"
)

func TestChangeNotifierFlush(t *testing.T) {
	n := NewChangeNotifier(time.Hour)
	id := uuid.New()

	var got []Change
	n.Subscribe(func(c Change) { got = append(got, c) })

	n.Flush()
	if len(got) != 0 {
		t.Fatal("flush without changes should not notify")
	}

	n.Notify(document.ChangeEvent{DocumentID: id, Revision: 1})
	n.Notify(document.ChangeEvent{DocumentID: id, Revision: 2})
	n.Flush()

	if len(got) != 1 {
		t.Fatalf("got %d notifications, want 1", len(got))
	}
	if got[0].Revision != 2 || got[0].Edits != 2 || got[0].DocumentID != id {
		t.Errorf("change = %+v", got[0])
	}
}

func TestChangeNotifierClose(t *testing.T) {
	n := NewChangeNotifier(time.Hour)

	calls := 0
	n.Subscribe(func(Change) { calls++ })

	n.Notify(document.ChangeEvent{Revision: 1})
	n.Close()
	n.Flush()
	n.Notify(document.ChangeEvent{Revision: 2})
	n.Flush()

	if calls != 0 {
		t.Errorf("closed notifier delivered %d changes", calls)
	}
}

func TestChangeNotifierNegativeDelay(t *testing.T) {
	n := NewChangeNotifier(-time.Second)

	calls := 0
	n.Subscribe(func(Change) { calls++ })
	n.Notify(document.ChangeEvent{Revision: 1})

	if calls != 1 {
		t.Errorf("negative delay should notify synchronously, got %d calls", calls)
	}
}

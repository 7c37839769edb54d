package app

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/mdplus/internal/engine/document"
)

// Change is delivered to subscribers once a burst of edits has settled.
type Change struct {
	// DocumentID identifies the document that changed.
	DocumentID uuid.UUID
	// Revision is the document revision after the last edit.
	Revision uint64
	// Edits is the number of mutations coalesced into this notification.
	Edits int
}

// ChangeNotifier coalesces document change events and notifies subscribers
// after the document has been quiet for the debounce delay.
// A zero delay notifies synchronously on every change.
type ChangeNotifier struct {
	mu sync.Mutex

	delay   time.Duration
	timer   *time.Timer
	pending Change

	subs   map[int]func(Change)
	nextID int
	closed bool
}

// NewChangeNotifier creates a notifier with the given debounce delay.
func NewChangeNotifier(delay time.Duration) *ChangeNotifier {
	if delay < 0 {
		delay = 0
	}
	return &ChangeNotifier{
		delay: delay,
		subs:  make(map[int]func(Change)),
	}
}

// Subscribe registers fn and returns a function that removes it.
func (n *ChangeNotifier) Subscribe(fn func(Change)) (unsubscribe func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.subs[id] = fn

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

// SetDelay changes the debounce delay for subsequent changes.
func (n *ChangeNotifier) SetDelay(delay time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if delay < 0 {
		delay = 0
	}
	n.delay = delay
}

// Notify records a document change. It is a document.ChangeListener.
func (n *ChangeNotifier) Notify(ev document.ChangeEvent) {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}

	n.pending.DocumentID = ev.DocumentID
	n.pending.Revision = ev.Revision
	n.pending.Edits++

	if n.delay == 0 {
		n.mu.Unlock()
		n.Flush()
		return
	}

	if n.timer == nil {
		n.timer = time.AfterFunc(n.delay, n.Flush)
	} else {
		n.timer.Reset(n.delay)
	}
	n.mu.Unlock()
}

// Flush delivers the pending change now, if any.
func (n *ChangeNotifier) Flush() {
	n.mu.Lock()
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	change := n.pending
	n.pending = Change{}
	subs := make([]func(Change), 0, len(n.subs))
	for _, fn := range n.subs {
		subs = append(subs, fn)
	}
	n.mu.Unlock()

	if change.Edits == 0 {
		return
	}
	for _, fn := range subs {
		fn(change)
	}
}

// Close drops any pending change and stops further notifications.
func (n *ChangeNotifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.pending = Change{}
	n.closed = true
}

package evaluator

import "sync"

// CollectionEntry is one recorded "interesting operation": a host DOM
// element paired with the {type, info} the checker reported.
type CollectionEntry struct {
	Element interface{}
	Type    interface{}
	Info    *CallInfo
}

// Collection is the append-only artifact store the interpreter produces as
// its side-effectful output. Entries are never rewritten, only appended.
type Collection struct {
	mu      sync.Mutex
	entries []CollectionEntry
}

// NewCollection creates an empty Collection.
func NewCollection() *Collection { return &Collection{} }

// Append records one entry. Safe to call concurrently — a checker
// implementation may itself dispatch across goroutines, and the Collection
// is a shared sink a host application may also read from while a batch of
// interpreters run (cmd/jstrack).
func (c *Collection) Append(entry CollectionEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, entry)
}

// Entries returns a snapshot copy of the recorded entries.
func (c *Collection) Entries() []CollectionEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]CollectionEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len reports the number of recorded entries.
func (c *Collection) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

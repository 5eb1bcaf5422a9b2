package logger

import (
	"sync"
	"time"
)

// ErrorEntry is one retained error log line.
type ErrorEntry struct {
	Message string                 `json:"message"`
	Fields  map[string]interface{} `json:"fields,omitempty"`
	Count   int                    `json:"count"`
	LastAt  time.Time              `json:"last_at"`
}

// ErrorBuffer retains recent error log entries, deduplicated by message,
// so the health endpoint can surface what went wrong in the last runs.
type ErrorBuffer struct {
	mu      sync.Mutex
	max     int
	entries map[string]*ErrorEntry
	order   []string
}

func NewErrorBuffer(max int) *ErrorBuffer {
	if max <= 0 {
		max = 50
	}
	return &ErrorBuffer{max: max, entries: make(map[string]*ErrorEntry)}
}

func (b *ErrorBuffer) Add(msg string, fields []Field) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if e, ok := b.entries[msg]; ok {
		e.Count++
		e.LastAt = time.Now()
		return
	}

	if len(b.order) >= b.max {
		oldest := b.order[0]
		b.order = b.order[1:]
		delete(b.entries, oldest)
	}

	fm := make(map[string]interface{}, len(fields))
	for _, f := range fields {
		k, v := f.GetKeyValue()
		fm[k] = v
	}
	b.entries[msg] = &ErrorEntry{Message: msg, Fields: fm, Count: 1, LastAt: time.Now()}
	b.order = append(b.order, msg)
}

// Snapshot returns the retained entries in insertion order.
func (b *ErrorBuffer) Snapshot() []ErrorEntry {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]ErrorEntry, 0, len(b.order))
	for _, msg := range b.order {
		out = append(out, *b.entries[msg])
	}
	return out
}

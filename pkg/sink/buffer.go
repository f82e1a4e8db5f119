package sink

import (
	"strings"
	"sync"
)

// Buffer is a thread-safe, append-only sequence of formatted log lines.
// It is shared between a capture hook, which appends, and the test body,
// which reads; lines are never removed for the lifetime of the buffer.
type Buffer struct {
	mu    sync.Mutex
	lines []string
}

// NewBuffer creates an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Append adds a formatted line to the end of the buffer.
func (b *Buffer) Append(line string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.lines = append(b.lines, line)
}

// Snapshot returns a copy of all captured lines in arrival order. The
// returned slice is independent of the buffer, so later appends or caller
// mutations do not affect each other.
func (b *Buffer) Snapshot() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// Len returns the number of captured lines.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.lines)
}

// Count returns how many captured lines contain the given substring.
func (b *Buffer) Count(substr string) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := 0
	for _, line := range b.lines {
		if strings.Contains(line, substr) {
			n++
		}
	}
	return n
}

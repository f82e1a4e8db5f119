package sink

import (
	"fmt"
	"strings"
	"sync"
	"testing"
)

func TestBuffer_AppendOrder(t *testing.T) {
	buf := NewBuffer()
	buf.Append("first")
	buf.Append("second")
	buf.Append("third")

	got := buf.Snapshot()
	want := []string{"first", "second", "third"}

	if len(got) != len(want) {
		t.Fatalf("Expected %d lines, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected line %d to be %q, got %q", i, want[i], got[i])
		}
	}
}

func TestBuffer_SnapshotIsCopy(t *testing.T) {
	buf := NewBuffer()
	buf.Append("one")

	snap := buf.Snapshot()
	buf.Append("two")

	if len(snap) != 1 {
		t.Errorf("Expected snapshot to stay at 1 line, got %d", len(snap))
	}

	snap[0] = "mutated"
	if buf.Snapshot()[0] != "one" {
		t.Error("Mutating a snapshot must not affect the buffer")
	}
}

func TestBuffer_ConcurrentAppend(t *testing.T) {
	const producers = 8
	const perProducer = 200

	buf := NewBuffer()
	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				buf.Append(fmt.Sprintf("p%d-%04d", p, i))
			}
		}(p)
	}
	wg.Wait()

	snap := buf.Snapshot()
	if len(snap) != producers*perProducer {
		t.Fatalf("Expected %d lines, got %d", producers*perProducer, len(snap))
	}

	// No line lost or duplicated.
	seen := make(map[string]bool, len(snap))
	for _, line := range snap {
		if seen[line] {
			t.Fatalf("Duplicate line %q", line)
		}
		seen[line] = true
	}

	// Each producer's relative order survives the interleaving.
	for p := 0; p < producers; p++ {
		prefix := fmt.Sprintf("p%d-", p)
		last := ""
		for _, line := range snap {
			if !strings.HasPrefix(line, prefix) {
				continue
			}
			if line <= last {
				t.Fatalf("Producer %d out of order: %q after %q", p, line, last)
			}
			last = line
		}
	}
}

func TestBuffer_Count(t *testing.T) {
	buf := NewBuffer()
	buf.Append("INFO app started")
	buf.Append("ERROR app crashed")
	buf.Append("INFO app stopped")

	if got := buf.Count("INFO"); got != 2 {
		t.Errorf("Expected 2 INFO lines, got %d", got)
	}
	if got := buf.Count("ERROR"); got != 1 {
		t.Errorf("Expected 1 ERROR line, got %d", got)
	}
	if got := buf.Count("missing"); got != 0 {
		t.Errorf("Expected 0 matches, got %d", got)
	}
}

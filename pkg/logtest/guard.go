package logtest

import "sync"

// Tests that assert on global log output cannot run in parallel with each
// other: there is one logger per process and the emitting code, not the
// test, picks the target. serialMu is the process-wide lock such tests
// hold for their duration.
var serialMu sync.Mutex

// Guard represents held exclusive use of the process-global logger.
// Release is idempotent and safe from defer or t.Cleanup even when the
// test body has failed or panicked, so the lock cannot be left held by a
// dead test. (Go mutexes do not poison; a panicking holder leaves no
// corrupted state behind.)
type Guard struct {
	once sync.Once
}

// AcquireExclusive blocks until no other Guard is held, then returns a
// new held Guard. Waiters are admitted one at a time without starvation.
func AcquireExclusive() *Guard {
	serialMu.Lock()
	return &Guard{}
}

// Release releases the guard. Calls after the first are no-ops.
func (g *Guard) Release() {
	g.once.Do(serialMu.Unlock)
}

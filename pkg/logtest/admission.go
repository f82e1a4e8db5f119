package logtest

import "sync"

type phase int

const (
	uninitialized phase = iota
	initializing
	initialized
)

// Admission serializes one-time initialization of a shared resource. It
// guarantees the apply step runs at most once per Admission, that callers
// arriving while initialization is in flight block until it finishes, and
// that success becomes visible only after the apply step has fully
// returned. A failed apply rolls back to uninitialized so a corrected
// retry can win.
type Admission struct {
	mu    sync.Mutex
	cond  *sync.Cond
	phase phase
}

// NewAdmission creates an Admission in the uninitialized state.
func NewAdmission() *Admission {
	a := &Admission{}
	a.cond = sync.NewCond(&a.mu)
	return a
}

// InitOnce runs apply unless this Admission has already initialized
// successfully, in which case it returns nil immediately. Exactly one
// caller wins the race to run apply; losers block and return nil once the
// winner finishes. The apply error, if any, goes to the winner alone.
// apply runs with no internal lock held, so it may safely call into the
// logging facility.
func (a *Admission) InitOnce(apply func() error) error {
	a.mu.Lock()
	for {
		switch a.phase {
		case initialized:
			a.mu.Unlock()
			return nil
		case initializing:
			a.cond.Wait()
		case uninitialized:
			a.phase = initializing
			a.mu.Unlock()
			return a.runApply(apply)
		}
	}
}

// runApply executes the apply step and publishes the outcome. Waiters are
// woken on every outcome, including a panicking apply, so nobody can hang
// on a phase that will never change.
func (a *Admission) runApply(apply func() error) error {
	completed := false
	defer func() {
		if !completed {
			a.settle(uninitialized)
		}
	}()

	err := apply()

	completed = true
	if err != nil {
		a.settle(uninitialized)
		return err
	}
	a.settle(initialized)
	return nil
}

func (a *Admission) settle(p phase) {
	a.mu.Lock()
	a.phase = p
	a.cond.Broadcast()
	a.mu.Unlock()
}

// Initialized reports whether a successful initialization has completed.
func (a *Admission) Initialized() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.phase == initialized
}

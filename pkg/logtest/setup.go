// Package logtest lets test suites share the process-global logger
// safely. It covers two use cases: testing your logs, where a test takes
// exclusive use of the logger and asserts on captured output (Setup,
// SetupCapture), and logging your tests, where many parallel tests just
// want the logger configured once with sensible visibility (InitOnce,
// InitOnceFor, InitDefault).
package logtest

import (
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/gleicon/logtest/pkg/logconf"
	"github.com/gleicon/logtest/pkg/sink"
)

var (
	admission = NewAdmission()

	appliedMu sync.Mutex
	applied   *logconf.Config
)

// Setup acquires exclusive use of the global logger, applies cfg to it,
// and registers release with t.Cleanup so the guard is dropped on every
// exit path, including assertion failures inside the test body. An
// invalid config fails the test immediately. The returned Guard is
// already held; most tests ignore it, but it allows early release.
func Setup(t testing.TB, cfg *logconf.Config) *Guard {
	t.Helper()

	guard := AcquireExclusive()
	t.Cleanup(guard.Release)

	require.NoError(t, logconf.Apply(cfg, logrus.StandardLogger()),
		"failed to apply logging config")
	return guard
}

// SetupCapture is Setup with a fresh in-memory capture sink: every record
// at or above level is formatted and appended to the returned buffer. The
// zero level captures everything; a nil formatter uses sink.LineFormatter.
// The returned Guard is already held and auto-released, like Setup's.
func SetupCapture(t testing.TB, level logconf.Severity, formatter logrus.Formatter) (*Guard, *sink.Buffer) {
	t.Helper()

	hook, buf := sink.NewCaptureHook(formatter)
	guard := Setup(t, &logconf.Config{
		Sinks:        []logconf.SinkSpec{{Name: "capture", Hook: hook}},
		TargetLevels: make(map[string]logconf.Severity),
		RootLevel:    level,
	})
	return guard, buf
}

// InitOnce configures the global logger at most once per process. The
// first successful call wins for the process lifetime; later calls are
// silent no-ops even when their config differs, since a global logger
// cannot be partially reconfigured. A failed apply propagates to its
// caller and leaves initialization open for a corrected retry. Safe to
// call from any number of parallel tests; it takes no serialization lock.
func InitOnce(cfg *logconf.Config) error {
	err := admission.InitOnce(func() error {
		if err := logconf.Apply(cfg, logrus.StandardLogger()); err != nil {
			return err
		}
		appliedMu.Lock()
		applied = cfg
		appliedMu.Unlock()
		return nil
	})
	if err != nil {
		return err
	}

	appliedMu.Lock()
	mismatch := applied != nil && applied != cfg
	appliedMu.Unlock()
	if mismatch {
		logrus.Debug("logging already initialized, keeping the first configuration")
	}
	return nil
}

// InitOnceFor is InitOnce with a cached config covering exactly the given
// targets at the given severity (root off, console sink). Repeated calls
// with the same arguments reuse the identical config, so they never count
// as a mismatch.
func InitOnceFor(targets []string, level logconf.Severity) error {
	cfg, err := logconf.Get(targets, level, nil)
	if err != nil {
		return err
	}
	return InitOnce(cfg)
}

// InitDefault is InitOnce with a config read from LOGTEST_* environment
// variables.
func InitDefault() error {
	cfg, err := logconf.FromEnv()
	if err != nil {
		return err
	}
	return InitOnce(cfg)
}

// Target returns an entry scoped to the named target, the unit of routing
// and level filtering. Records emitted through it carry the target field
// that sinks match on.
func Target(name string) *logrus.Entry {
	return logrus.WithField(sink.TargetField, name)
}

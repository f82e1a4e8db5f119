package logconf

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gleicon/logtest/pkg/sink"
)

func TestBuild_Deterministic(t *testing.T) {
	hook, _ := sink.NewCaptureHook(nil)

	first, err := Build([]string{"foo", "bar", "foo"}, Debug, hook)
	require.NoError(t, err)
	second, err := Build([]string{"bar", "foo"}, Debug, hook)
	require.NoError(t, err)

	assert.Equal(t, first, second, "equal inputs must build structurally equal configs")
	assert.Equal(t, Off, first.RootLevel)
	assert.Equal(t, map[string]Severity{"foo": Debug, "bar": Debug}, first.TargetLevels)
	require.Len(t, first.Sinks, 1)
}

func TestBuild_RejectsBadTargets(t *testing.T) {
	for _, targets := range [][]string{
		{""},
		{"ok", ""},
		{"has space"},
		{"has\ttab"},
	} {
		_, err := Build(targets, Info, nil)
		assert.ErrorIs(t, err, ErrInvalidConfig, "targets %q", targets)
	}
}

func TestGet_ReturnsCachedInstance(t *testing.T) {
	first, err := Get([]string{"alpha", "beta"}, Info, nil)
	require.NoError(t, err)
	second, err := Get([]string{"beta", "alpha", "beta"}, Info, nil)
	require.NoError(t, err)

	assert.Same(t, first, second, "identical parameters must hit the cache")

	other, err := Get([]string{"alpha", "beta"}, Warn, nil)
	require.NoError(t, err)
	assert.NotSame(t, first, other, "a different level is a different key")
}

func TestGet_CommaInTargetNameIsDistinct(t *testing.T) {
	joined, err := Get([]string{"a,b"}, Info, nil)
	require.NoError(t, err)
	split, err := Get([]string{"a", "b"}, Info, nil)
	require.NoError(t, err)

	assert.NotSame(t, joined, split, "a comma in a target name must not collide with a multi-target set")
	assert.Equal(t, map[string]Severity{"a,b": Info}, joined.TargetLevels)
	assert.Equal(t, map[string]Severity{"a": Info, "b": Info}, split.TargetLevels)
}

func TestGet_KeyedBySinkIdentity(t *testing.T) {
	hookA, _ := sink.NewCaptureHook(nil)
	hookB, _ := sink.NewCaptureHook(nil)

	withA, err := Get([]string{"gamma"}, Info, hookA)
	require.NoError(t, err)
	withB, err := Get([]string{"gamma"}, Info, hookB)
	require.NoError(t, err)
	withoutSink, err := Get([]string{"gamma"}, Info, nil)
	require.NoError(t, err)

	assert.NotSame(t, withA, withB)
	assert.NotSame(t, withA, withoutSink)

	again, err := Get([]string{"gamma"}, Info, hookA)
	require.NoError(t, err)
	assert.Same(t, withA, again)
}

func TestApply_RoutesByTarget(t *testing.T) {
	hook, buf := sink.NewCaptureHook(nil)
	cfg, err := Build([]string{"covered"}, Info, hook)
	require.NoError(t, err)

	logger := logrus.New()
	require.NoError(t, Apply(cfg, logger))

	logger.WithField(sink.TargetField, "covered").Debug("below threshold")
	logger.WithField(sink.TargetField, "covered").Info("at threshold")
	logger.WithField(sink.TargetField, "uncovered").Error("root is off")
	logger.Error("untargeted, root is off")

	snap := buf.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, "INFO covered at threshold", snap[0])
}

func TestApply_RootLevelAdmitsUntargeted(t *testing.T) {
	hook, buf := sink.NewCaptureHook(nil)
	cfg := &Config{
		Sinks:        []SinkSpec{{Name: "capture", Hook: hook}},
		TargetLevels: map[string]Severity{"chatty": Error},
		RootLevel:    Info,
	}

	logger := logrus.New()
	require.NoError(t, Apply(cfg, logger))

	logger.Info("kept by root")
	logger.WithField(sink.TargetField, "chatty").Info("filtered per target")
	logger.WithField(sink.TargetField, "chatty").Error("kept per target")

	snap := buf.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "INFO kept by root", snap[0])
	assert.Equal(t, "ERROR chatty kept per target", snap[1])
}

func TestApply_InvalidConfigLeavesLoggerUntouched(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.WarnLevel)

	err := Apply(&Config{
		Sinks: []SinkSpec{{Name: "dup", Hook: sink.NewConsoleHook(io.Discard, nil)},
			{Name: "dup", Hook: sink.NewConsoleHook(io.Discard, nil)}},
	}, logger)
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())
}

func TestValidate(t *testing.T) {
	hook := sink.NewConsoleHook(io.Discard, nil)

	cases := []struct {
		name string
		cfg  *Config
	}{
		{"nil config", nil},
		{"no sinks", &Config{}},
		{"unnamed sink", &Config{Sinks: []SinkSpec{{Hook: hook}}}},
		{"nil hook", &Config{Sinks: []SinkSpec{{Name: "s"}}}},
		{"bad target", &Config{
			Sinks:        []SinkSpec{{Name: "s", Hook: hook}},
			TargetLevels: map[string]Severity{"bad target": Info},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.cfg.Validate(), ErrInvalidConfig)
		})
	}
}

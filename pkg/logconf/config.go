package logconf

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/gleicon/logtest/pkg/sink"
)

// ErrInvalidConfig marks configuration parameters the logging facility
// cannot accept. It is surfaced synchronously to the caller attempting to
// build or apply the configuration.
var ErrInvalidConfig = errors.New("invalid logging config")

// consoleSinkName is the name given to the default console sink.
const consoleSinkName = "console"

// SinkSpec names a sink inside a Config.
type SinkSpec struct {
	Name string
	Hook logrus.Hook
}

// Config describes a complete logging setup: named sinks, a minimum
// severity per target, and a root severity for records outside the named
// targets. A Config is immutable once built; Apply installs it on a
// logger without modifying it, so one Config can be shared freely.
type Config struct {
	Sinks        []SinkSpec
	TargetLevels map[string]Severity
	RootLevel    Severity
}

// Build constructs a Config covering exactly the given targets at the
// given severity. The root level is Off, so records outside the named
// targets are dropped. A nil custom hook gets a stdout console sink.
// Build is deterministic: equal inputs yield structurally equal configs.
func Build(targets []string, level Severity, custom logrus.Hook) (*Config, error) {
	normalized, err := normalizeTargets(targets)
	if err != nil {
		return nil, err
	}

	spec := SinkSpec{Name: consoleSinkName, Hook: sink.NewConsoleHook(nil, nil)}
	if custom != nil {
		spec = SinkSpec{Name: "custom", Hook: custom}
	}

	levels := make(map[string]Severity, len(normalized))
	for _, t := range normalized {
		levels[t] = level
	}

	return &Config{
		Sinks:        []SinkSpec{spec},
		TargetLevels: levels,
		RootLevel:    Off,
	}, nil
}

// Validate checks a Config for structural problems before it is applied.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}
	if len(c.Sinks) == 0 {
		return fmt.Errorf("%w: no sinks", ErrInvalidConfig)
	}

	names := make(map[string]bool, len(c.Sinks))
	for _, s := range c.Sinks {
		if s.Name == "" {
			return fmt.Errorf("%w: unnamed sink", ErrInvalidConfig)
		}
		if s.Hook == nil {
			return fmt.Errorf("%w: sink %q has no hook", ErrInvalidConfig, s.Name)
		}
		if names[s.Name] {
			return fmt.Errorf("%w: duplicate sink name %q", ErrInvalidConfig, s.Name)
		}
		names[s.Name] = true
	}

	for t := range c.TargetLevels {
		if err := validateTarget(t); err != nil {
			return err
		}
	}
	return nil
}

// Apply validates the config and installs it on the given logger: the
// logger's direct output is silenced, its hooks are replaced by the
// config's sinks wrapped with per-target routing, and its level is set to
// the most verbose severity any rule accepts. On error the logger is left
// untouched.
func Apply(c *Config, logger *logrus.Logger) error {
	if err := c.Validate(); err != nil {
		return err
	}

	logger.SetOutput(io.Discard)
	logger.ReplaceHooks(make(logrus.LevelHooks))
	for _, s := range c.Sinks {
		logger.AddHook(&routedHook{spec: s, config: c})
	}
	logger.SetLevel(c.mostVerbose().logrusLevel())
	return nil
}

// threshold returns the minimum severity admitted for the given target.
func (c *Config) threshold(target string) Severity {
	if target != "" {
		if lvl, ok := c.TargetLevels[target]; ok {
			return lvl
		}
	}
	return c.RootLevel
}

// mostVerbose returns the lowest severity any target or the root accepts.
func (c *Config) mostVerbose() Severity {
	min := c.RootLevel
	for _, lvl := range c.TargetLevels {
		if lvl < min {
			min = lvl
		}
	}
	return min
}

// normalizeTargets validates, dedupes and sorts a target list so equal
// sets produce equal configs and cache keys.
func normalizeTargets(targets []string) ([]string, error) {
	seen := make(map[string]bool, len(targets))
	out := make([]string, 0, len(targets))
	for _, t := range targets {
		if err := validateTarget(t); err != nil {
			return nil, err
		}
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out, nil
}

func validateTarget(target string) error {
	if target == "" {
		return fmt.Errorf("%w: empty target name", ErrInvalidConfig)
	}
	if strings.ContainsAny(target, " \t\r\n") {
		return fmt.Errorf("%w: target %q contains whitespace", ErrInvalidConfig, target)
	}
	return nil
}

// routedHook applies per-target severity routing before a sink sees a
// record.
type routedHook struct {
	spec   SinkSpec
	config *Config
}

func (h *routedHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *routedHook) Fire(entry *logrus.Entry) error {
	if severityOf(entry.Level) < h.config.threshold(sink.TargetOf(entry)) {
		return nil
	}
	return h.spec.Hook.Fire(entry)
}

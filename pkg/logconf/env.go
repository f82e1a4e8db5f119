package logconf

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/gleicon/logtest/pkg/sink"
)

const envPrefix = "LOGTEST"

// FromEnv builds a Config from environment variables, for suites that
// want log verbosity controlled from the outside:
//
//	LOGTEST_LEVEL    minimum severity (default "info")
//	LOGTEST_TARGETS  comma-separated target names
//
// With targets set, the result is the cached config covering exactly
// those targets at the configured level. Without them, everything is
// routed to a console sink at that level.
func FromEnv() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetDefault("level", "info")
	v.SetDefault("targets", "")

	level, err := ParseSeverity(v.GetString("level"))
	if err != nil {
		return nil, err
	}

	var targets []string
	if raw := strings.TrimSpace(v.GetString("targets")); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			targets = append(targets, strings.TrimSpace(t))
		}
	}

	if len(targets) == 0 {
		return &Config{
			Sinks:        []SinkSpec{{Name: consoleSinkName, Hook: sink.NewConsoleHook(nil, nil)}},
			TargetLevels: make(map[string]Severity),
			RootLevel:    level,
		}, nil
	}
	return Get(targets, level, nil)
}

package logconf

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gleicon/logtest/pkg/sink"
)

// fileConfig mirrors the YAML layout of a logging config file:
//
//	root_level: debug
//	targets:
//	  storage: info
//	  api: warn
//	sinks:
//	  - name: stdout
//	    kind: console
type fileConfig struct {
	RootLevel Severity            `yaml:"root_level"`
	Targets   map[string]Severity `yaml:"targets"`
	Sinks     []fileSink          `yaml:"sinks"`
}

type fileSink struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`
}

// LoadFile reads a Config from a YAML file. An omitted root_level means
// Trace, an omitted sink list means a single stdout console sink.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := parseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

func parseYAML(data []byte) (*Config, error) {
	var raw fileConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	cfg := &Config{
		TargetLevels: raw.Targets,
		RootLevel:    raw.RootLevel,
	}
	if cfg.TargetLevels == nil {
		cfg.TargetLevels = make(map[string]Severity)
	}

	if len(raw.Sinks) == 0 {
		cfg.Sinks = []SinkSpec{{Name: consoleSinkName, Hook: sink.NewConsoleHook(nil, nil)}}
	}
	for _, s := range raw.Sinks {
		hook, err := buildFileSink(s)
		if err != nil {
			return nil, err
		}
		cfg.Sinks = append(cfg.Sinks, SinkSpec{Name: s.Name, Hook: hook})
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildFileSink(s fileSink) (*sink.ConsoleHook, error) {
	switch s.Kind {
	case "console", "":
		return sink.NewConsoleHook(nil, nil), nil
	case "discard":
		return sink.NewConsoleHook(io.Discard, nil), nil
	default:
		return nil, fmt.Errorf("%w: unknown sink kind %q", ErrInvalidConfig, s.Kind)
	}
}

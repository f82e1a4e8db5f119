package logconf

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Severity is an ordered log level. The zero value is Trace, the most
// verbose. Off sits above Error and disables everything it governs.
type Severity int

const (
	Trace Severity = iota
	Debug
	Info
	Warn
	Error
	Off
)

// String returns the lowercase name of the severity.
func (s Severity) String() string {
	switch s {
	case Trace:
		return "trace"
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Warn:
		return "warn"
	case Error:
		return "error"
	case Off:
		return "off"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// ParseSeverity parses a severity name, case-insensitively. "warning" is
// accepted as an alias for "warn".
func ParseSeverity(name string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return Trace, nil
	case "debug":
		return Debug, nil
	case "info":
		return Info, nil
	case "warn", "warning":
		return Warn, nil
	case "error":
		return Error, nil
	case "off":
		return Off, nil
	default:
		return Off, fmt.Errorf("%w: unknown severity %q", ErrInvalidConfig, name)
	}
}

// UnmarshalYAML decodes a severity from its name.
func (s *Severity) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseSeverity(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// MarshalYAML encodes a severity as its name.
func (s Severity) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// logrusLevel maps a severity to the logger-wide logrus level that admits
// it. Off maps to PanicLevel, the most restrictive logrus offers; records
// that slip past it are still dropped by per-target routing.
func (s Severity) logrusLevel() logrus.Level {
	switch s {
	case Trace:
		return logrus.TraceLevel
	case Debug:
		return logrus.DebugLevel
	case Info:
		return logrus.InfoLevel
	case Warn:
		return logrus.WarnLevel
	case Error:
		return logrus.ErrorLevel
	default:
		return logrus.PanicLevel
	}
}

// severityOf maps a logrus level back onto the severity scale. Fatal and
// panic records count as Error.
func severityOf(level logrus.Level) Severity {
	switch level {
	case logrus.TraceLevel:
		return Trace
	case logrus.DebugLevel:
		return Debug
	case logrus.InfoLevel:
		return Info
	case logrus.WarnLevel:
		return Warn
	default:
		return Error
	}
}

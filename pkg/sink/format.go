package sink

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// TargetField is the logrus field carrying the record's target, the named
// scope used for routing and level filtering.
const TargetField = "target"

// LineFormatter renders an entry as "LEVEL target message". The level is
// uppercased so assertions can match "INFO" or "ERROR" regardless of the
// backend's own casing. Untargeted records render as "LEVEL message".
type LineFormatter struct{}

// Format implements logrus.Formatter.
func (f *LineFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	parts := []string{strings.ToUpper(entry.Level.String())}
	if target := TargetOf(entry); target != "" {
		parts = append(parts, target)
	}
	parts = append(parts, entry.Message)
	return []byte(strings.Join(parts, " ") + "\n"), nil
}

// TargetOf extracts the target name from an entry, or "" when the entry
// carries no target field.
func TargetOf(entry *logrus.Entry) string {
	if v, ok := entry.Data[TargetField]; ok {
		return fmt.Sprintf("%v", v)
	}
	return ""
}

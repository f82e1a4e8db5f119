package sink

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// CaptureHook is a logrus hook that formats every entry and appends the
// resulting line to a shared Buffer for programmatic inspection.
type CaptureHook struct {
	formatter logrus.Formatter
	buf       *Buffer
}

// NewCaptureHook creates a capture hook, returning it along with the
// buffer it appends to. A nil formatter falls back to LineFormatter.
func NewCaptureHook(formatter logrus.Formatter) (*CaptureHook, *Buffer) {
	if formatter == nil {
		formatter = &LineFormatter{}
	}
	buf := NewBuffer()
	return &CaptureHook{formatter: formatter, buf: buf}, buf
}

// Levels returns all levels; severity filtering is the routing layer's job.
func (h *CaptureHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire formats the entry and appends the line to the buffer.
func (h *CaptureHook) Fire(entry *logrus.Entry) error {
	line, err := h.formatter.Format(entry)
	if err != nil {
		return fmt.Errorf("failed to format log entry: %w", err)
	}
	h.buf.Append(strings.TrimRight(string(line), "\n"))
	return nil
}

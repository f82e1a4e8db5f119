package sink

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// ConsoleHook is a logrus hook that writes formatted lines to a writer.
// Routing console output through a hook, instead of pointing the logger's
// own output at the writer, keeps it subject to the same per-target
// filtering as any other sink.
type ConsoleHook struct {
	formatter logrus.Formatter

	mu sync.Mutex
	w  io.Writer
}

// NewConsoleHook creates a console hook. A nil writer defaults to stdout,
// where the test harness captures it; a nil formatter to LineFormatter.
func NewConsoleHook(w io.Writer, formatter logrus.Formatter) *ConsoleHook {
	if w == nil {
		w = os.Stdout
	}
	if formatter == nil {
		formatter = &LineFormatter{}
	}
	return &ConsoleHook{formatter: formatter, w: w}
}

// Levels returns all levels; severity filtering is the routing layer's job.
func (h *ConsoleHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire formats the entry and writes the line.
func (h *ConsoleHook) Fire(entry *logrus.Entry) error {
	line, err := h.formatter.Format(entry)
	if err != nil {
		return fmt.Errorf("failed to format log entry: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err = h.w.Write(line)
	return err
}

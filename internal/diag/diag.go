// Package diag formats and emits the playback engine's diagnostic stream:
// human-readable position/line transitions and decode failures, always on
// stderr, never interleaved with the audio byte stream.
package diag

import (
	"os"

	"github.com/charmbracelet/log"
)

// Logger wraps a charmbracelet/log.Logger pinned to stderr.
type Logger struct {
	l *log.Logger
}

// New builds a Logger writing leveled, timestamped lines to stderr.
func New() *Logger {
	return &Logger{l: log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           log.InfoLevel,
	})}
}

// Position logs a transition to a new (position, line) pair.
func (lg *Logger) Position(position, line int) {
	lg.l.Info("position", "pos", position, "line", line)
}

// Failure logs a single diagnostic line naming the error that ended a run.
func (lg *Logger) Failure(err error) {
	lg.l.Error("playback failed", "err", err)
}

// Notef logs a free-form informational line, used for non-error status such
// as sink-mode selection or song metadata at startup.
func (lg *Logger) Notef(msg string, kv ...interface{}) {
	lg.l.Info(msg, kv...)
}

// Package activity keeps the process-lifetime operator event log: a bounded,
// newest-wins window of human-readable entries. Nothing here is persisted.
package activity

import (
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// maxEntries bounds the window; the oldest entries are dropped past this.
const maxEntries = 1000

// Log is safe for concurrent use. Handlers run on independent goroutines, so
// the window is mutex-guarded rather than relying on cooperative scheduling.
type Log struct {
	mu      sync.Mutex
	entries []string
	logger  zerolog.Logger
	now     func() time.Time
}

// New returns an empty log that mirrors every entry to the given logger.
func New(logger zerolog.Logger) *Log {
	return &Log{logger: logger, now: time.Now}
}

// Append records a message with a wall-clock timestamp prefix and trims the
// window to the most recent maxEntries.
func (l *Log) Append(message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.appendLocked(message)
}

func (l *Log) appendLocked(message string) {
	entry := l.now().Format("15:04:05") + " " + message
	l.entries = append(l.entries, entry)
	if len(l.entries) > maxEntries {
		l.entries = l.entries[len(l.entries)-maxEntries:]
	}
	l.logger.Info().Msg(message)
}

// List returns the entries oldest to newest.
func (l *Log) List() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

// Clear empties the window and immediately records the clear itself, so the
// very next read sees exactly one entry.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = l.entries[:0]
	l.appendLocked("Logs cleared by user")
}

// ExportText returns a newline-joined dump of the current entries.
func (l *Log) ExportText() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return strings.Join(l.entries, "\n")
}

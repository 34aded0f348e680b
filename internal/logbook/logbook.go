// internal/logbook/logbook.go
//
// The session journal. One line per event:
//
//	2026-10-15T08:00:00Z INFO  Resolved · dump · Action (1 this session)
//
// The journal describes what happened, never what the user wrote.

package logbook

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Level represents the severity of a journal entry.
type Level string

const (
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Entry is one parsed journal line.
type Entry struct {
	At      time.Time
	Level   Level
	Message string
}

// String renders the entry in the on-disk format, without the newline.
func (e Entry) String() string {
	return fmt.Sprintf("%s %-5s %s", e.At.UTC().Format(time.RFC3339), string(e.Level), e.Message)
}

// ParseEntry reads a line written by Append. Lines that do not start with a
// timestamp and level are returned whole as the message with ok false.
func ParseEntry(line string) (Entry, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return Entry{Message: strings.TrimSpace(line)}, false
	}
	at, err := time.Parse(time.RFC3339, fields[0])
	if err != nil {
		return Entry{Message: strings.TrimSpace(line)}, false
	}
	return Entry{
		At:      at,
		Level:   Level(fields[1]),
		Message: strings.Join(fields[2:], " "),
	}, true
}

// Logbook appends session events to a plain text journal. A nil *Logbook is
// a valid, silent journal.
type Logbook struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// New creates a logbook that writes to path, creating its directory.
func New(path string) (*Logbook, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("logbook: path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("logbook: ensure dir: %w", err)
	}
	return &Logbook{path: path, now: time.Now}, nil
}

// Path returns the file backing this logbook.
func (l *Logbook) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Append writes a single entry. Whitespace runs in message, newlines
// included, collapse to one space so every entry stays on one line.
func (l *Logbook) Append(level Level, message string) {
	if l == nil {
		return
	}
	entry := Entry{
		At:      l.now(),
		Level:   level,
		Message: strings.Join(strings.Fields(message), " "),
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = fmt.Fprintln(f, entry.String())
}

func (l *Logbook) Info(format string, args ...any) {
	l.Append(LevelInfo, fmt.Sprintf(format, args...))
}

func (l *Logbook) Warn(format string, args ...any) {
	l.Append(LevelWarn, fmt.Sprintf(format, args...))
}

func (l *Logbook) Error(format string, args ...any) {
	l.Append(LevelError, fmt.Sprintf(format, args...))
}

// Tail returns up to n of the most recent entries, oldest first, and the
// number of entries in the whole journal. A missing file is an empty journal.
func (l *Logbook) Tail(n int) ([]Entry, int) {
	if l == nil || n <= 0 {
		return nil, 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	f, err := os.Open(l.path)
	if err != nil {
		return nil, 0
	}
	defer f.Close()

	ring := make([]string, 0, n)
	total := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		total++
		if len(ring) == n {
			ring = append(ring[:0], ring[1:]...)
		}
		ring = append(ring, scanner.Text())
	}
	if len(ring) == 0 {
		return nil, total
	}
	entries := make([]Entry, len(ring))
	for i, line := range ring {
		entries[i], _ = ParseEntry(line)
	}
	return entries, total
}

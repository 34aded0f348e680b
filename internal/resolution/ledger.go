package resolution

import (
	"fmt"
	"strings"
	"sync"
)

// Ledger keeps every record resolved during the session, newest first.
// It only grows; nothing is ever written to disk.
type Ledger struct {
	mu      sync.RWMutex
	records []Record
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Append places rec at the front of the ledger.
func (l *Ledger) Append(rec Record) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, Record{})
	copy(l.records[1:], l.records)
	l.records[0] = rec
}

// Records returns a snapshot of the ledger, most recent first.
func (l *Ledger) Records() []Record {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// Len returns the number of resolved thoughts.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

// Counts groups the ledger by resolution kind.
func (l *Ledger) Counts() Summary {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var s Summary
	for _, rec := range l.records {
		switch rec.Kind {
		case KindDo:
			s.Do++
		case KindSchedule:
			s.Schedule++
		case KindIgnore:
			s.Ignore++
		}
	}
	return s
}

// Summary is the per-kind tally of a ledger.
type Summary struct {
	Do       int
	Schedule int
	Ignore   int
}

// Total returns the number of records counted.
func (s Summary) Total() int {
	return s.Do + s.Schedule + s.Ignore
}

// Count returns the tally for a single kind.
func (s Summary) Count(k Kind) int {
	switch k {
	case KindDo:
		return s.Do
	case KindSchedule:
		return s.Schedule
	case KindIgnore:
		return s.Ignore
	}
	return 0
}

// Recap renders a plain-text session recap suitable for pasting elsewhere.
func Recap(records []Record) string {
	var s Summary
	for _, rec := range records {
		switch rec.Kind {
		case KindDo:
			s.Do++
		case KindSchedule:
			s.Schedule++
		case KindIgnore:
			s.Ignore++
		}
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Resolved thoughts: %d (%d actions, %d scheduled, %d discarded)\n",
		s.Total(), s.Do, s.Schedule, s.Ignore)
	for _, rec := range records {
		fmt.Fprintf(&b, "- [%s] %s", rec.Kind.Label(), oneLine(rec.Thought))
		if rec.HasAction() && rec.Kind != KindIgnore {
			fmt.Fprintf(&b, " -> %s", oneLine(rec.Action))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func oneLine(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

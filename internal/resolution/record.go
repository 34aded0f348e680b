// internal/resolution/record.go
//
// Defines the record every workflow produces when a thought is resolved.
// Records are plain values: once minted nothing edits them.

package resolution

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind is the terminal classification of a thought.
type Kind string

const (
	KindDo       Kind = "do"
	KindSchedule Kind = "schedule"
	KindIgnore   Kind = "ignore"
)

// Kinds lists every resolution kind in display order.
var Kinds = []Kind{KindDo, KindSchedule, KindIgnore}

// ParseKind converts user or config input into a Kind.
func ParseKind(value string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(value))) {
	case KindDo:
		return KindDo, nil
	case KindSchedule:
		return KindSchedule, nil
	case KindIgnore:
		return KindIgnore, nil
	default:
		return "", fmt.Errorf("resolution: unknown kind %q", value)
	}
}

// Valid reports whether k is one of the three known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindDo, KindSchedule, KindIgnore:
		return true
	}
	return false
}

// Label returns the summary label shown next to a resolved thought.
func (k Kind) Label() string {
	switch k {
	case KindDo:
		return "Action"
	case KindSchedule:
		return "Scheduled"
	case KindIgnore:
		return "Discarded"
	default:
		return "Unknown"
	}
}

// Source names the workflow a record came from.
type Source string

const (
	SourceDump       Source = "dump"
	SourceDecision   Source = "decision"
	SourceTimer      Source = "timer"
	SourceImportance Source = "importance"
)

// Record is one resolved thought.
type Record struct {
	ID        string
	Thought   string
	Kind      Kind
	Action    string // empty when the resolution carries no action
	Source    Source
	CreatedAt time.Time
}

// HasAction reports whether the record carries an action text.
func (r Record) HasAction() bool {
	return strings.TrimSpace(r.Action) != ""
}

// Draft holds the fields a workflow supplies at its terminal step.
type Draft struct {
	Thought string
	Kind    Kind
	Action  string
	Source  Source
}

// Minter stamps drafts with an identifier and creation time.
type Minter struct {
	newID func() string
	now   func() time.Time
}

// MinterOption customizes a Minter for tests.
type MinterOption func(*Minter)

// WithClock overrides the time source.
func WithClock(now func() time.Time) MinterOption {
	return func(m *Minter) {
		if now != nil {
			m.now = now
		}
	}
}

// WithIDs overrides the identifier source.
func WithIDs(newID func() string) MinterOption {
	return func(m *Minter) {
		if newID != nil {
			m.newID = newID
		}
	}
}

// NewMinter returns a Minter that uses random UUIDs and the wall clock.
func NewMinter(opts ...MinterOption) *Minter {
	m := &Minter{
		newID: func() string { return uuid.NewString() },
		now:   time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// Mint turns a draft into an immutable record.
func (m *Minter) Mint(d Draft) (Record, error) {
	if !d.Kind.Valid() {
		return Record{}, fmt.Errorf("resolution: mint: unknown kind %q", d.Kind)
	}
	if m == nil {
		m = NewMinter()
	}
	return Record{
		ID:        m.newID(),
		Thought:   d.Thought,
		Kind:      d.Kind,
		Action:    strings.TrimSpace(d.Action),
		Source:    d.Source,
		CreatedAt: m.now(),
	}, nil
}

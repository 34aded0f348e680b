// internal/workflow/workflow.go
//
// Defines the guided modes and the pieces they share. Each mode is a small
// state machine that turns one raw thought into one resolution record.
// Forward transitions return false and change nothing when a required
// field is blank; they never return errors.

package workflow

import (
	"fmt"
	"strings"

	"github.com/kingrea/endthought/internal/resolution"
)

// Mode identifies one of the guided workflows.
type Mode int

const (
	ModeDump Mode = iota
	ModeDecision
	ModeTimer
	ModeImportance
)

// Modes lists the workflows in tab order.
var Modes = []Mode{ModeDump, ModeDecision, ModeTimer, ModeImportance}

// String returns the mode's config identifier.
func (m Mode) String() string {
	switch m {
	case ModeDump:
		return "dump"
	case ModeDecision:
		return "decision"
	case ModeTimer:
		return "timer"
	case ModeImportance:
		return "importance"
	default:
		return "unknown"
	}
}

// FriendlyName returns the tab label for the mode.
func (m Mode) FriendlyName() string {
	switch m {
	case ModeDump:
		return "Brain Dump"
	case ModeDecision:
		return "Decision Engine"
	case ModeTimer:
		return "5-Min Rule"
	case ModeImportance:
		return "Importance Filter"
	default:
		return m.String()
	}
}

// Source maps the mode onto the record source it produces.
func (m Mode) Source() resolution.Source {
	switch m {
	case ModeDecision:
		return resolution.SourceDecision
	case ModeTimer:
		return resolution.SourceTimer
	case ModeImportance:
		return resolution.SourceImportance
	default:
		return resolution.SourceDump
	}
}

// ParseMode converts a config or flag value into a Mode.
func ParseMode(value string) (Mode, error) {
	key := strings.ToLower(strings.TrimSpace(value))
	for _, m := range Modes {
		if key == m.String() {
			return m, nil
		}
	}
	return ModeDump, fmt.Errorf("workflow: unknown mode %q", value)
}

// ResolveFunc receives every record a workflow emits. It is called exactly
// once per completed workflow.
type ResolveFunc func(resolution.Record)

// emitter mints and hands off records for a single workflow.
type emitter struct {
	source    resolution.Source
	minter    *resolution.Minter
	onResolve ResolveFunc
}

func newEmitter(source resolution.Source, minter *resolution.Minter, onResolve ResolveFunc) emitter {
	if minter == nil {
		minter = resolution.NewMinter()
	}
	return emitter{source: source, minter: minter, onResolve: onResolve}
}

// emit builds the record and passes it on. Callers reset their fields right
// after a successful emit.
func (e emitter) emit(thought string, kind resolution.Kind, action string) (resolution.Record, bool) {
	rec, err := e.minter.Mint(resolution.Draft{
		Thought: thought,
		Kind:    kind,
		Action:  action,
		Source:  e.source,
	})
	if err != nil {
		return resolution.Record{}, false
	}
	if e.onResolve != nil {
		e.onResolve(rec)
	}
	return rec, true
}

func blank(value string) bool {
	return strings.TrimSpace(value) == ""
}

package workflow

import "github.com/kingrea/endthought/internal/resolution"

// DumpStep is a screen of the brain dump workflow.
type DumpStep int

const (
	StepDump DumpStep = iota
	StepBreakdown
	StepOptions
	StepResolve
)

// DumpSteps lists the brain dump steps in order.
var DumpSteps = []DumpStep{StepDump, StepBreakdown, StepOptions, StepResolve}

// String returns the step name.
func (s DumpStep) String() string {
	switch s {
	case StepDump:
		return "dump"
	case StepBreakdown:
		return "breakdown"
	case StepOptions:
		return "options"
	case StepResolve:
		return "resolve"
	default:
		return "unknown"
	}
}

// Label returns the progress-strip label for the step.
func (s DumpStep) Label() string {
	switch s {
	case StepDump:
		return "Dump"
	case StepBreakdown:
		return "Define"
	case StepOptions:
		return "Options"
	case StepResolve:
		return "Resolve"
	default:
		return "?"
	}
}

// BrainDump narrows a messy thought down to one decision with two options.
type BrainDump struct {
	emitter
	step     DumpStep
	thought  string
	decision string
	options  [2]string
	priority string
}

// NewBrainDump returns a brain dump at its first step.
func NewBrainDump(minter *resolution.Minter, onResolve ResolveFunc) *BrainDump {
	return &BrainDump{emitter: newEmitter(resolution.SourceDump, minter, onResolve)}
}

func (b *BrainDump) Step() DumpStep     { return b.step }
func (b *BrainDump) Thought() string    { return b.thought }
func (b *BrainDump) Decision() string   { return b.decision }
func (b *BrainDump) Options() [2]string { return b.options }
func (b *BrainDump) Priority() string   { return b.priority }

func (b *BrainDump) SetThought(v string)  { b.thought = v }
func (b *BrainDump) SetDecision(v string) { b.decision = v }
func (b *BrainDump) SetPriority(v string) { b.priority = v }

// SetOption stores the text of option i (0 or 1).
func (b *BrainDump) SetOption(i int, v string) {
	if i < 0 || i > 1 {
		return
	}
	b.options[i] = v
}

// CanAdvance reports whether the current step's required fields are filled.
func (b *BrainDump) CanAdvance() bool {
	switch b.step {
	case StepDump:
		return !blank(b.thought)
	case StepBreakdown:
		return !blank(b.decision)
	case StepOptions:
		return !blank(b.options[0]) && !blank(b.options[1]) && !blank(b.priority)
	default:
		return false
	}
}

// Advance moves to the next step when the current one is complete.
func (b *BrainDump) Advance() bool {
	switch b.step {
	case StepDump:
		return b.Breakdown()
	case StepBreakdown:
		return b.DefineOptions()
	case StepOptions:
		return b.Decide()
	default:
		return false
	}
}

// Breakdown moves from dump to breakdown.
func (b *BrainDump) Breakdown() bool {
	if b.step != StepDump || !b.CanAdvance() {
		return false
	}
	b.step = StepBreakdown
	return true
}

// DefineOptions moves from breakdown to options.
func (b *BrainDump) DefineOptions() bool {
	if b.step != StepBreakdown || !b.CanAdvance() {
		return false
	}
	b.step = StepOptions
	return true
}

// Decide moves from options to resolve.
func (b *BrainDump) Decide() bool {
	if b.step != StepOptions || !b.CanAdvance() {
		return false
	}
	b.step = StepResolve
	return true
}

// Back returns from options to breakdown, keeping every field.
func (b *BrainDump) Back() bool {
	if b.step != StepOptions {
		return false
	}
	b.step = StepBreakdown
	return true
}

// StartOver clears the workflow and returns to the dump step.
func (b *BrainDump) StartOver() {
	b.reset()
}

// Choose resolves the thought by acting on option i.
func (b *BrainDump) Choose(i int) (resolution.Record, bool) {
	if b.step != StepResolve || i < 0 || i > 1 {
		return resolution.Record{}, false
	}
	return b.finish(resolution.KindDo, b.options[i])
}

// Schedule defers the decision itself.
func (b *BrainDump) Schedule() (resolution.Record, bool) {
	if b.step != StepResolve {
		return resolution.Record{}, false
	}
	return b.finish(resolution.KindSchedule, b.decision)
}

// Discard lets the thought go without an action.
func (b *BrainDump) Discard() (resolution.Record, bool) {
	if b.step != StepResolve {
		return resolution.Record{}, false
	}
	return b.finish(resolution.KindIgnore, "")
}

// Resolve maps a kind onto the contextual action: do picks the first option.
func (b *BrainDump) Resolve(kind resolution.Kind) (resolution.Record, bool) {
	switch kind {
	case resolution.KindDo:
		return b.Choose(0)
	case resolution.KindSchedule:
		return b.Schedule()
	case resolution.KindIgnore:
		return b.Discard()
	}
	return resolution.Record{}, false
}

func (b *BrainDump) finish(kind resolution.Kind, action string) (resolution.Record, bool) {
	rec, ok := b.emit(b.thought, kind, action)
	if ok {
		b.reset()
	}
	return rec, ok
}

func (b *BrainDump) reset() {
	b.step = StepDump
	b.thought = ""
	b.decision = ""
	b.options = [2]string{}
	b.priority = ""
}

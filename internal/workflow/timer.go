package workflow

import (
	"github.com/kingrea/endthought/internal/countdown"
	"github.com/kingrea/endthought/internal/resolution"
)

// TimerStep is a phase of the five-minute rule.
type TimerStep int

const (
	StepSetup TimerStep = iota
	StepThinking
	StepDecide
)

// String returns the step name.
func (s TimerStep) String() string {
	switch s {
	case StepSetup:
		return "setup"
	case StepThinking:
		return "thinking"
	case StepDecide:
		return "decide"
	default:
		return "unknown"
	}
}

// TimerMode gives a thought a fixed amount of thinking time and then forces
// a decision.
type TimerMode struct {
	emitter
	step     TimerStep
	thought  string
	decision string
	duration int
	clock    *countdown.Clock
}

// NewTimerMode returns a timer workflow in setup. Non-positive durations use
// countdown.DefaultDuration.
func NewTimerMode(duration int, minter *resolution.Minter, onResolve ResolveFunc) *TimerMode {
	return &TimerMode{
		emitter:  newEmitter(resolution.SourceTimer, minter, onResolve),
		duration: duration,
		clock:    countdown.New(duration),
	}
}

func (t *TimerMode) Step() TimerStep         { return t.step }
func (t *TimerMode) Thought() string         { return t.thought }
func (t *TimerMode) Decision() string        { return t.decision }
func (t *TimerMode) Clock() *countdown.Clock { return t.clock }
func (t *TimerMode) Expired() bool           { return t.clock.Expired() }
func (t *TimerMode) SetThought(v string)     { t.thought = v }
func (t *TimerMode) SetDecision(v string)    { t.decision = v }
func (t *TimerMode) Running() bool           { return t.clock.Running() }
func (t *TimerMode) Remaining() int          { return t.clock.Remaining() }
func (t *TimerMode) Progress() float64       { return t.clock.Progress() }

// Start moves from setup to thinking and starts the countdown.
func (t *TimerMode) Start() bool {
	if t.step != StepSetup || blank(t.thought) {
		return false
	}
	t.step = StepThinking
	t.clock.Start()
	return true
}

// TogglePause pauses or resumes the countdown while thinking. It reports
// whether the clock is running afterwards.
func (t *TimerMode) TogglePause() bool {
	if t.step != StepThinking {
		return t.clock.Running()
	}
	return t.clock.Toggle()
}

// ReadyToDecide ends thinking early.
func (t *TimerMode) ReadyToDecide() bool {
	if t.step != StepThinking {
		return false
	}
	t.clock.Stop()
	t.step = StepDecide
	return true
}

// Tick feeds one tick to the countdown. On expiry the workflow is forced
// into the decide step and Tick returns true.
func (t *TimerMode) Tick(epoch uint64) bool {
	if !t.clock.Tick(epoch) {
		return false
	}
	t.step = StepDecide
	return true
}

// CanCommit reports whether do or schedule are available.
func (t *TimerMode) CanCommit() bool {
	return t.step == StepDecide && !blank(t.decision)
}

// Resolve records the outcome. Do and schedule need a decision; ignore does
// not.
func (t *TimerMode) Resolve(kind resolution.Kind) (resolution.Record, bool) {
	if t.step != StepDecide {
		return resolution.Record{}, false
	}
	var action string
	switch kind {
	case resolution.KindDo, resolution.KindSchedule:
		if !t.CanCommit() {
			return resolution.Record{}, false
		}
		action = t.decision
	case resolution.KindIgnore:
	default:
		return resolution.Record{}, false
	}
	rec, ok := t.emit(t.thought, kind, action)
	if ok {
		t.Reset()
	}
	return rec, ok
}

// Reset returns to setup with a fresh countdown.
func (t *TimerMode) Reset() {
	t.clock.Stop()
	t.step = StepSetup
	t.thought = ""
	t.decision = ""
	t.clock = countdown.New(t.duration)
}

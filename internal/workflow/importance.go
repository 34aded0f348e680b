package workflow

import (
	"github.com/kingrea/endthought/internal/resolution"
	"github.com/kingrea/endthought/internal/scoring"
)

// NoiseAction is the action text stored when a filtered thought is dropped.
const NoiseAction = "Marked as noise"

// ImportanceStep is a phase of the importance filter.
type ImportanceStep int

const (
	StepInput ImportanceStep = iota
	StepFilter
	StepResult
)

// String returns the step name.
func (s ImportanceStep) String() string {
	switch s {
	case StepInput:
		return "input"
	case StepFilter:
		return "filter"
	case StepResult:
		return "result"
	default:
		return "unknown"
	}
}

// ImportanceFilter asks whether a thought will matter in a week, a month and
// a year, then classifies it.
type ImportanceFilter struct {
	emitter
	step    ImportanceStep
	thought string
	answers scoring.Answers
}

// NewImportanceFilter returns a filter waiting for input.
func NewImportanceFilter(minter *resolution.Minter, onResolve ResolveFunc) *ImportanceFilter {
	return &ImportanceFilter{emitter: newEmitter(resolution.SourceImportance, minter, onResolve)}
}

func (f *ImportanceFilter) Step() ImportanceStep     { return f.step }
func (f *ImportanceFilter) Thought() string          { return f.thought }
func (f *ImportanceFilter) Answers() scoring.Answers { return f.answers }
func (f *ImportanceFilter) SetThought(v string)      { f.thought = v }

// Begin moves from input to the questions.
func (f *ImportanceFilter) Begin() bool {
	if f.step != StepInput || blank(f.thought) {
		return false
	}
	f.step = StepFilter
	return true
}

// Answer records one horizon. The filter jumps to the result as soon as all
// three horizons are answered, whatever the order.
func (f *ImportanceFilter) Answer(h scoring.Horizon, yes bool) bool {
	if f.step != StepFilter {
		return false
	}
	f.answers.Set(h, scoring.AnswerOf(yes))
	if f.answers.Complete() {
		f.step = StepResult
	}
	return true
}

// Verdict classifies the thought; ok is false until every horizon is
// answered.
func (f *ImportanceFilter) Verdict() (scoring.Verdict, bool) {
	return scoring.Tally(f.answers)
}

// Kinds lists the resolutions the result screen offers.
func (f *ImportanceFilter) Kinds() []resolution.Kind {
	v, ok := f.Verdict()
	if f.step != StepResult || !ok {
		return nil
	}
	return v.Kinds()
}

// Resolve records the outcome of the filter.
func (f *ImportanceFilter) Resolve(kind resolution.Kind) (resolution.Record, bool) {
	v, ok := f.Verdict()
	if f.step != StepResult || !ok || !v.Offers(kind) {
		return resolution.Record{}, false
	}
	action := f.thought
	if kind == resolution.KindIgnore {
		action = NoiseAction
	}
	rec, emitted := f.emit(f.thought, kind, action)
	if emitted {
		f.FilterAnother()
	}
	return rec, emitted
}

// FilterAnother clears the filter and returns to input.
func (f *ImportanceFilter) FilterAnother() {
	f.step = StepInput
	f.thought = ""
	f.answers = scoring.Answers{}
}

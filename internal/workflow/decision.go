package workflow

import (
	"github.com/kingrea/endthought/internal/resolution"
	"github.com/kingrea/endthought/internal/scoring"
)

// DecisionEngine is the single-screen forced comparison: one question, two
// options, two factors, one slider per factor.
type DecisionEngine struct {
	emitter
	question   string
	options    [2]string
	factors    [2]string
	scores     scoring.Matrix
	showResult bool
}

// NewDecisionEngine returns an empty engine with every slider centred.
func NewDecisionEngine(minter *resolution.Minter, onResolve ResolveFunc) *DecisionEngine {
	return &DecisionEngine{
		emitter: newEmitter(resolution.SourceDecision, minter, onResolve),
		scores:  scoring.NewMatrix(),
	}
}

func (d *DecisionEngine) Question() string       { return d.question }
func (d *DecisionEngine) Options() [2]string     { return d.options }
func (d *DecisionEngine) Factors() [2]string     { return d.factors }
func (d *DecisionEngine) Scores() scoring.Matrix { return d.scores }
func (d *DecisionEngine) ShowResult() bool       { return d.showResult }

func (d *DecisionEngine) SetQuestion(v string) { d.question = v }

// SetOption stores the text of option i.
func (d *DecisionEngine) SetOption(i int, v string) {
	if i < 0 || i > 1 {
		return
	}
	d.options[i] = v
}

// SetFactor stores the text of factor i.
func (d *DecisionEngine) SetFactor(i int, v string) {
	if i < 0 || i > 1 {
		return
	}
	d.factors[i] = v
}

// SetScore positions the slider of factor so the first option gets first.
func (d *DecisionEngine) SetScore(factor, first int) {
	d.scores.Set(factor, first)
}

// NudgeScore moves the slider of factor by delta toward the first option.
func (d *DecisionEngine) NudgeScore(factor, delta int) {
	d.scores.Nudge(factor, delta)
}

// Ready reports whether every text field is filled in.
func (d *DecisionEngine) Ready() bool {
	return !blank(d.question) &&
		!blank(d.options[0]) && !blank(d.options[1]) &&
		!blank(d.factors[0]) && !blank(d.factors[1])
}

// Analyze reveals the result once the engine is ready.
func (d *DecisionEngine) Analyze() bool {
	if !d.Ready() {
		return false
	}
	d.showResult = true
	return true
}

// Outcome scores the current sliders.
func (d *DecisionEngine) Outcome() scoring.Outcome {
	return scoring.Compare(d.scores)
}

// ResultVisible reports whether the result panel should be shown. Clearing a
// field after analysis hides it again.
func (d *DecisionEngine) ResultVisible() bool {
	return d.showResult && d.Ready()
}

// Resolve records the decision: do acts on the winning option, schedule
// defers the question, ignore drops it.
func (d *DecisionEngine) Resolve(kind resolution.Kind) (resolution.Record, bool) {
	if !d.ResultVisible() {
		return resolution.Record{}, false
	}
	var action string
	switch kind {
	case resolution.KindDo:
		action = d.options[d.Outcome().Winner]
	case resolution.KindSchedule:
		action = d.question
	case resolution.KindIgnore:
	default:
		return resolution.Record{}, false
	}
	rec, ok := d.emit(d.question, kind, action)
	if ok {
		d.Reset()
	}
	return rec, ok
}

// Reset clears every field and hides the result.
func (d *DecisionEngine) Reset() {
	d.question = ""
	d.options = [2]string{}
	d.factors = [2]string{}
	d.scores = scoring.NewMatrix()
	d.showResult = false
}

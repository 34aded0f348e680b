package scoring

import "github.com/kingrea/endthought/internal/resolution"

// Answer is a tri-state response to one importance question. The zero value
// is Unanswered, which is distinct from No.
type Answer int

const (
	Unanswered Answer = iota
	Yes
	No
)

// AnswerOf converts a button press into an Answer.
func AnswerOf(yes bool) Answer {
	if yes {
		return Yes
	}
	return No
}

// String returns a short label for the answer.
func (a Answer) String() string {
	switch a {
	case Yes:
		return "yes"
	case No:
		return "no"
	default:
		return "unanswered"
	}
}

// Horizon is one of the three "will this matter in..." questions.
type Horizon int

const (
	Week Horizon = iota
	Month
	Year
)

// Horizons lists the questions in the order they are asked.
var Horizons = []Horizon{Week, Month, Year}

// Label returns the horizon as it appears in the question.
func (h Horizon) Label() string {
	switch h {
	case Week:
		return "1 week"
	case Month:
		return "1 month"
	case Year:
		return "1 year"
	default:
		return "?"
	}
}

// Answers holds one answer per horizon.
type Answers [3]Answer

// Set records an answer for h.
func (a *Answers) Set(h Horizon, ans Answer) {
	if h < Week || h > Year {
		return
	}
	a[h] = ans
}

// Get returns the answer recorded for h.
func (a Answers) Get(h Horizon) Answer {
	if h < Week || h > Year {
		return Unanswered
	}
	return a[h]
}

// Complete reports whether every horizon has been answered.
func (a Answers) Complete() bool {
	for _, ans := range a {
		if ans == Unanswered {
			return false
		}
	}
	return true
}

// YesCount counts the horizons answered Yes.
func (a Answers) YesCount() int {
	n := 0
	for _, ans := range a {
		if ans == Yes {
			n++
		}
	}
	return n
}

// Verdict is the importance classification of a thought.
type Verdict int

const (
	Noise Verdict = iota
	Minor
	Moderate
	Important
)

// Verdicts lists the classifications from least to most important.
var Verdicts = []Verdict{Noise, Minor, Moderate, Important}

// VerdictFor maps a yes count onto a verdict.
func VerdictFor(yes int) Verdict {
	switch {
	case yes <= 0:
		return Noise
	case yes == 1:
		return Minor
	case yes == 2:
		return Moderate
	default:
		return Important
	}
}

// Tally classifies a complete set of answers. ok is false until all three
// horizons are answered.
func Tally(a Answers) (v Verdict, ok bool) {
	if !a.Complete() {
		return Noise, false
	}
	return VerdictFor(a.YesCount()), true
}

// String returns the verdict name.
func (v Verdict) String() string {
	switch v {
	case Noise:
		return "noise"
	case Minor:
		return "minor"
	case Moderate:
		return "moderate"
	case Important:
		return "important"
	default:
		return "unknown"
	}
}

// Level is the verdict's position on the four-segment meter.
func (v Verdict) Level() int {
	return int(v)
}

// Headline is the title of the result screen.
func (v Verdict) Headline() string {
	switch v {
	case Noise:
		return "This is noise."
	case Minor:
		return "Low priority."
	case Moderate:
		return "Worth considering."
	default:
		return "This actually matters."
	}
}

// Advice is the line under the headline.
func (v Verdict) Advice() string {
	switch v {
	case Noise:
		return "Won't matter in a week, month, or year. Let it go."
	case Minor:
		return "Only matters short-term. Handle it quickly or let it fade."
	case Moderate:
		return "Has some staying power. Might be worth addressing."
	default:
		return "This will matter over time. Give it proper attention."
	}
}

// Kinds lists the resolutions offered for the verdict. Noise can only be
// discarded.
func (v Verdict) Kinds() []resolution.Kind {
	if v == Noise {
		return []resolution.Kind{resolution.KindIgnore}
	}
	return []resolution.Kind{resolution.KindDo, resolution.KindSchedule, resolution.KindIgnore}
}

// Offers reports whether k is one of the verdict's resolutions.
func (v Verdict) Offers(k resolution.Kind) bool {
	for _, candidate := range v.Kinds() {
		if candidate == k {
			return true
		}
	}
	return false
}

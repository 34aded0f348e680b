// internal/scoring/decision.go
//
// Two options, two factors. Each factor is a slider split between the two
// options, so the halves of a factor always add up to MaxScore.

package scoring

// MaxScore is the full width of one factor slider.
const MaxScore = 100

// Confidence band thresholds. Confidence strictly above StrongAbove is a
// strong signal; strictly above SlightAbove is a slight preference.
const (
	StrongAbove = 30
	SlightAbove = 10
)

// Matrix holds slider positions indexed [factor][option].
type Matrix [2][2]int

// NewMatrix returns every factor split evenly.
func NewMatrix() Matrix {
	return Matrix{
		{MaxScore / 2, MaxScore / 2},
		{MaxScore / 2, MaxScore / 2},
	}
}

// Set places the slider for factor so that the first option receives first
// and the second option receives the complement.
func (m *Matrix) Set(factor, first int) {
	if factor < 0 || factor > 1 {
		return
	}
	first = clamp(first)
	m[factor][0] = first
	m[factor][1] = MaxScore - first
}

// Nudge moves a factor slider toward the first option by delta (negative
// values favour the second option).
func (m *Matrix) Nudge(factor, delta int) {
	if factor < 0 || factor > 1 {
		return
	}
	m.Set(factor, m[factor][0]+delta)
}

// Totals sums each option across both factors.
func (m Matrix) Totals() [2]int {
	var totals [2]int
	for _, factor := range m {
		totals[0] += factor[0]
		totals[1] += factor[1]
	}
	return totals
}

// Outcome is the result of comparing the two options.
type Outcome struct {
	Totals     [2]int
	Winner     int
	Confidence int
	Band       Band
}

// Compare scores both options. Ties go to the first option.
func Compare(m Matrix) Outcome {
	totals := m.Totals()
	winner := 0
	if totals[1] > totals[0] {
		winner = 1
	}
	confidence := totals[0] - totals[1]
	if confidence < 0 {
		confidence = -confidence
	}
	return Outcome{
		Totals:     totals,
		Winner:     winner,
		Confidence: confidence,
		Band:       BandFor(confidence),
	}
}

// Band classifies how decisive a comparison was.
type Band int

const (
	BandTooClose Band = iota
	BandSlight
	BandStrong
)

// BandFor maps a confidence value onto a band.
func BandFor(confidence int) Band {
	switch {
	case confidence > StrongAbove:
		return BandStrong
	case confidence > SlightAbove:
		return BandSlight
	default:
		return BandTooClose
	}
}

// String returns the band's short name.
func (b Band) String() string {
	switch b {
	case BandStrong:
		return "strong signal"
	case BandSlight:
		return "slight preference"
	case BandTooClose:
		return "too close to call"
	default:
		return "unknown"
	}
}

// Headline returns the sentence shown under the recommendation.
func (b Band) Headline() string {
	switch b {
	case BandStrong:
		return "Strong signal"
	case BandSlight:
		return "Slight preference"
	default:
		return "Too close to call - pick either one"
	}
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > MaxScore {
		return MaxScore
	}
	return v
}

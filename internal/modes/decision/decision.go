// internal/modes/decision/decision.go
//
// Decision engine screen: one question, two options, two factors. Each
// factor gets a slider that is pushed toward whichever option serves it
// better; the recommendation follows the slider totals.

package decision

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kingrea/endthought/internal/modes"
	"github.com/kingrea/endthought/internal/resolution"
	"github.com/kingrea/endthought/internal/scoring"
	"github.com/kingrea/endthought/internal/workflow"
)

const (
	fieldQuestion = iota
	fieldOptionA
	fieldOptionB
	fieldFactor1
	fieldFactor2
	fieldSlider1
	fieldSlider2
	fieldCount

	inputCount = fieldSlider1
	sliderCell = 30
)

// Mode drives a workflow.DecisionEngine.
type Mode struct {
	modes.BaseMode
	wf     *workflow.DecisionEngine
	inputs [inputCount]textinput.Model
	focus  int
	step   int
}

// New creates a new decision engine mode
func New() *Mode {
	m := &Mode{
		BaseMode: modes.NewBaseMode("Decision Engine", modes.ScreenDecision),
		step:     5,
	}
	m.inputs[fieldQuestion] = modes.NewInput("e.g., Should I take the new job offer or stay?", 60)
	m.inputs[fieldOptionA] = modes.NewInput("e.g., Take the new job", 30)
	m.inputs[fieldOptionB] = modes.NewInput("e.g., Stay at current job", 30)
	m.inputs[fieldFactor1] = modes.NewInput("e.g., Salary & growth", 30)
	m.inputs[fieldFactor2] = modes.NewInput("e.g., Work-life balance", 30)
	return m
}

// Init wires the engine to the shared ledger and reads the slider step.
func (m *Mode) Init(ctx *modes.ModeContext) tea.Cmd {
	m.SetContext(ctx)
	if ctx != nil && ctx.Config != nil {
		m.step = ctx.Config.SliderStep()
	}
	m.wf = workflow.NewDecisionEngine(m.Minter(), m.Resolver())
	m.focus = fieldQuestion
	return tea.Batch(m.inputs[fieldQuestion].Focus(), textinput.Blink)
}

// Workflow exposes the underlying engine.
func (m *Mode) Workflow() *workflow.DecisionEngine {
	return m.wf
}

// Capturing reports whether a text field has focus.
func (m *Mode) Capturing() bool {
	return m.focus < inputCount
}

// Update handles messages for the decision engine
func (m *Mode) Update(msg tea.Msg) (modes.Mode, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		half := max(10, (msg.Width-14)/2)
		m.inputs[fieldQuestion].Width = max(10, msg.Width-12)
		for i := fieldOptionA; i < inputCount; i++ {
			m.inputs[i].Width = half
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, modes.Keys.Reset):
			m.wf.Reset()
			for i := range m.inputs {
				m.inputs[i].Reset()
			}
			m.SetStatusMsg("Reset")
			return m, m.setFocus(fieldQuestion)
		case key.Matches(msg, modes.Keys.NextField):
			return m, m.setFocus(m.nextFocus(1))
		case key.Matches(msg, modes.Keys.PrevField):
			return m, m.setFocus(m.nextFocus(-1))
		case key.Matches(msg, modes.Keys.Submit):
			if m.wf.Analyze() {
				m.SetStatusMsg("")
				if m.focus < inputCount {
					return m, m.setFocus(fieldSlider1)
				}
			}
			return m, nil
		case key.Matches(msg, modes.Keys.Back):
			if m.focus >= inputCount {
				return m, m.setFocus(fieldQuestion)
			}
			return m, nil
		}
		if m.focus >= inputCount {
			return m.updateSliders(msg)
		}
	}

	if m.focus < inputCount {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		m.store(m.focus)
		return m, cmd
	}
	return m, nil
}

func (m *Mode) updateSliders(msg tea.KeyMsg) (modes.Mode, tea.Cmd) {
	factor := m.focus - fieldSlider1
	switch {
	case key.Matches(msg, modes.Keys.Left):
		m.wf.NudgeScore(factor, m.step)
		return m, nil
	case key.Matches(msg, modes.Keys.Right):
		m.wf.NudgeScore(factor, -m.step)
		return m, nil
	case key.Matches(msg, modes.Keys.Up):
		return m, m.setFocus(fieldSlider1)
	case key.Matches(msg, modes.Keys.Down):
		return m, m.setFocus(fieldSlider2)
	}

	var kind resolution.Kind
	switch {
	case key.Matches(msg, modes.Keys.Do):
		kind = resolution.KindDo
	case key.Matches(msg, modes.Keys.Schedule):
		kind = resolution.KindSchedule
	case key.Matches(msg, modes.Keys.Discard):
		kind = resolution.KindIgnore
	default:
		return m, nil
	}
	rec, ok := m.wf.Resolve(kind)
	if !ok {
		return m, nil
	}
	for i := range m.inputs {
		m.inputs[i].Reset()
	}
	m.SetStatusMsg(fmt.Sprintf("Resolved: %s", rec.Kind.Label()))
	return m, tea.Batch(m.setFocus(fieldQuestion), modes.Resolved(rec))
}

func (m *Mode) store(field int) {
	value := m.inputs[field].Value()
	switch field {
	case fieldQuestion:
		m.wf.SetQuestion(value)
	case fieldOptionA, fieldOptionB:
		m.wf.SetOption(field-fieldOptionA, value)
	case fieldFactor1, fieldFactor2:
		m.wf.SetFactor(field-fieldFactor1, value)
	}
}

// nextFocus cycles through the fields; sliders only join the cycle once
// every text field is filled in.
func (m *Mode) nextFocus(delta int) int {
	limit := inputCount
	if m.wf.Ready() {
		limit = fieldCount
	}
	return ((m.focus+delta)%limit + limit) % limit
}

func (m *Mode) setFocus(field int) tea.Cmd {
	if field >= inputCount && !m.wf.Ready() {
		field = fieldQuestion
	}
	m.focus = field
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	if field < inputCount {
		return m.inputs[field].Focus()
	}
	return nil
}

// Bindings lists the keys for the focused control.
func (m *Mode) Bindings() []key.Binding {
	if m.focus < inputCount {
		return []key.Binding{
			modes.Keys.NextField,
			modes.WithHelp(modes.Keys.Submit, "calculate"),
			modes.WithHelp(modes.Keys.Reset, "reset"),
		}
	}
	bindings := []key.Binding{modes.Keys.Left, modes.Keys.Right, modes.Keys.NextField}
	if m.wf.ResultVisible() {
		bindings = append(bindings,
			modes.WithHelp(modes.Keys.Do, "do winner"),
			modes.Keys.Schedule,
			modes.Keys.Discard,
		)
	} else {
		bindings = append(bindings, modes.WithHelp(modes.Keys.Submit, "calculate"))
	}
	return bindings
}

// View renders the decision engine
func (m *Mode) View() string {
	if m.wf == nil {
		return ""
	}
	width := m.Width()
	opts := m.wf.Options()
	factors := m.wf.Factors()

	var body strings.Builder
	body.WriteString(m.label(fieldQuestion, "What are you deciding?") + "\n")
	body.WriteString(m.inputs[fieldQuestion].View() + "\n\n")
	body.WriteString(m.pair(
		m.label(fieldOptionA, "Option A")+"\n"+m.inputs[fieldOptionA].View(),
		m.label(fieldOptionB, "Option B")+"\n"+m.inputs[fieldOptionB].View(),
	) + "\n\n")
	body.WriteString(m.pair(
		m.label(fieldFactor1, "Factor 1 (what matters)")+"\n"+m.inputs[fieldFactor1].View(),
		m.label(fieldFactor2, "Factor 2 (what matters)")+"\n"+m.inputs[fieldFactor2].View(),
	))

	if m.wf.Ready() {
		body.WriteString("\n\n")
		body.WriteString(modes.SubtleStyle.Render("Rate each option on each factor (slide toward the better option):"))
		scores := m.wf.Scores()
		for f := 0; f < 2; f++ {
			body.WriteString("\n\n")
			body.WriteString(m.label(fieldSlider1+f, factors[f]) + "\n")
			body.WriteString(renderSlider(opts, scores[f], m.focus == fieldSlider1+f))
		}
	}

	out := modes.Card(width, "Forced Decision Engine",
		"Limited analysis. 2 options. 2 factors. No spirals.", body.String(), nil)

	if m.wf.ResultVisible() {
		out += "\n" + m.renderResult(width)
	}
	if status := m.StatusMsg(); status != "" {
		out += "\n" + modes.StatusStyle.Render(status)
	}
	return out
}

func (m *Mode) label(field int, text string) string {
	if m.focus == field {
		return lipgloss.NewStyle().Bold(true).Foreground(modes.ColorInfo).Render("▸ " + text)
	}
	return modes.LabelStyle.Render("  " + text)
}

func (m *Mode) pair(left, right string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, lipgloss.NewStyle().MarginRight(4).Render(left), right)
}

func (m *Mode) renderResult(width int) string {
	opts := m.wf.Options()
	outcome := m.wf.Outcome()
	winner := lipgloss.NewStyle().Bold(true).Render(opts[outcome.Winner])

	score := func(i int) string {
		style := modes.SubtleStyle
		if i == outcome.Winner {
			style = lipgloss.NewStyle().Foreground(modes.ColorAccent)
		}
		return style.Render(fmt.Sprintf("%s: %d", opts[i], outcome.Totals[i]))
	}

	body := strings.Join([]string{
		winner,
		modes.SubtleStyle.Render(outcome.Band.Headline()),
		"",
		score(0) + "    " + score(1),
		"",
		modes.Choice("d", "Do it: "+opts[outcome.Winner], true) + "    " +
			modes.Choice("s", "Schedule", true) + "    " +
			modes.Choice("x", "Discard", true),
	}, "\n")
	return modes.Card(width, "Recommendation", "", body, modes.ColorAccent)
}

// renderSlider draws one factor. The thumb sits closer to the option that
// holds more of the factor.
func renderSlider(opts [2]string, split [2]int, focused bool) string {
	pos := split[1] * sliderCell / scoring.MaxScore
	if pos >= sliderCell {
		pos = sliderCell - 1
	}
	track := []rune(strings.Repeat("─", sliderCell))
	track[pos] = '●'

	trackStyle := modes.SubtleStyle
	if focused {
		trackStyle = lipgloss.NewStyle().Foreground(modes.ColorInfo)
	}
	name := lipgloss.NewStyle().Width(16).MaxWidth(16)
	return fmt.Sprintf("%s %s %s  %s",
		name.Render(opts[0]),
		trackStyle.Render(string(track)),
		name.Align(lipgloss.Right).Render(opts[1]),
		modes.SubtleStyle.Render(fmt.Sprintf("%d/%d", split[0], split[1])),
	)
}

package modes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

// Palette shared by every screen.
var (
	ColorAccent   = lipgloss.Color("#6BCB77")
	ColorWarn     = lipgloss.Color("#FFD93D")
	ColorDanger   = lipgloss.Color("#FF6B6B")
	ColorInfo     = lipgloss.Color("#5B8DEF")
	ColorMuted    = lipgloss.Color("#888888")
	ColorBorder   = lipgloss.Color("#444444")
	ColorInactive = lipgloss.Color("#333333")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	SubtleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	LabelStyle = lipgloss.NewStyle().
			Bold(true)

	StatusStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginTop(1)

	QuoteStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(ColorBorder).
			PaddingLeft(1).
			Italic(true)
)

// Card frames a screen's content with a title and a one-line description.
func Card(width int, title, desc, body string, border lipgloss.TerminalColor) string {
	if border == nil {
		border = ColorBorder
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
	if width > 4 {
		style = style.Width(width - 2)
	}
	parts := []string{TitleStyle.Render(title)}
	if strings.TrimSpace(desc) != "" {
		parts = append(parts, SubtleStyle.Render(desc))
	}
	parts = append(parts, "", body)
	return style.Render(strings.Join(parts, "\n"))
}

// Quote renders the user's own thought back to them.
func Quote(width int, text string) string {
	style := QuoteStyle
	if width > 6 {
		style = style.Width(width - 6)
	}
	return style.Render(text)
}

// Choice renders a resolution button with its key.
func Choice(keyLabel, label string, enabled bool) string {
	keyStyle := lipgloss.NewStyle().Bold(true).Foreground(ColorInfo)
	textStyle := lipgloss.NewStyle()
	if !enabled {
		keyStyle = keyStyle.Foreground(ColorInactive)
		textStyle = textStyle.Foreground(ColorInactive)
	}
	return fmt.Sprintf("%s %s", keyStyle.Render("["+keyLabel+"]"), textStyle.Render(label))
}

// NewInput returns a single-line text field.
func NewInput(placeholder string, width int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 500
	ti.Width = max(10, width)
	ti.Prompt = "› "
	return ti
}

// NewArea returns a multi-line text field where enter submits and
// alt+enter inserts a newline.
func NewArea(placeholder string, width int) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 4000
	ta.SetWidth(max(20, width))
	ta.SetHeight(4)
	ta.KeyMap.InsertNewline.SetKeys("alt+enter")
	return ta
}

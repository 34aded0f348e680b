// internal/clipboard/clipboard.go
//
// Copies text to the system clipboard, falling back to an OSC52 escape
// sequence written to the controlling terminal (works over SSH and in tmux).

package clipboard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

// DisableOSC52Env turns the terminal fallback off when set to a truthy value.
const DisableOSC52Env = "ENDTHOUGHT_DISABLE_OSC52"

// Method reports which channel delivered the text.
type Method uint8

const (
	MethodSystem Method = iota
	MethodOSC52
)

// String returns the method name.
func (m Method) String() string {
	if m == MethodOSC52 {
		return "terminal (OSC52)"
	}
	return "system clipboard"
}

var (
	writeSystem = clipboard.WriteAll
	writeOSC52  = writeTerminal
	getenv      = os.Getenv
)

// Copy writes text to the clipboard and reports how it got there.
func Copy(text string) (Method, error) {
	sysErr := writeSystem(text)
	if sysErr == nil {
		return MethodSystem, nil
	}
	oscErr := writeOSC52(text)
	if oscErr == nil {
		return MethodOSC52, nil
	}
	return MethodSystem, combineErrors(sysErr, oscErr)
}

// WriteAll is Copy without the method, matching the shape the screens use.
func WriteAll(text string) error {
	_, err := Copy(text)
	return err
}

func writeTerminal(text string) error {
	if !osc52Enabled() {
		return errors.New("OSC52 unavailable for this terminal")
	}
	tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("open /dev/tty: %w", err)
	}
	defer tty.Close()
	return writeSequence(tty, text)
}

func writeSequence(w io.Writer, text string) error {
	seq := osc52.New(text)
	termName := strings.ToLower(strings.TrimSpace(getenv("TERM")))
	switch {
	case getenv("TMUX") != "":
		// tmux may or may not pass the plain sequence through
		if _, err := seq.WriteTo(w); err != nil {
			return err
		}
		_, err := seq.Tmux().WriteTo(w)
		return err
	case strings.HasPrefix(termName, "screen"):
		_, err := seq.Screen().WriteTo(w)
		return err
	default:
		_, err := seq.WriteTo(w)
		return err
	}
}

func osc52Enabled() bool {
	switch strings.ToLower(strings.TrimSpace(getenv(DisableOSC52Env))) {
	case "1", "true", "yes", "on":
		return false
	}
	termName := strings.TrimSpace(getenv("TERM"))
	return termName != "" && !strings.EqualFold(termName, "dumb")
}

func combineErrors(sysErr, oscErr error) error {
	if missingDisplay() {
		return fmt.Errorf("clipboard: no GUI clipboard available (DISPLAY/WAYLAND_DISPLAY unset); OSC52 fallback failed: %v", oscErr)
	}
	return fmt.Errorf("clipboard: system clipboard failed: %v; OSC52 fallback failed: %v", sysErr, oscErr)
}

func missingDisplay() bool {
	return strings.TrimSpace(getenv("DISPLAY")) == "" && strings.TrimSpace(getenv("WAYLAND_DISPLAY")) == ""
}

package clipboard

import (
	"bytes"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func stub(t *testing.T, system, terminal func(string) error, env map[string]string) {
	t.Helper()
	origSystem, origTerminal, origEnv := writeSystem, writeOSC52, getenv
	t.Cleanup(func() {
		writeSystem, writeOSC52, getenv = origSystem, origTerminal, origEnv
	})
	if system != nil {
		writeSystem = system
	}
	if terminal != nil {
		writeOSC52 = terminal
	}
	getenv = func(k string) string { return env[k] }
}

func TestCopyPrefersSystemClipboard(t *testing.T) {
	fallback := false
	stub(t,
		func(string) error { return nil },
		func(string) error {
			fallback = true
			return nil
		},
		nil,
	)
	method, err := Copy("hello")
	if err != nil {
		t.Fatalf("copy: %v", err)
	}
	if method != MethodSystem || fallback {
		t.Fatalf("method = %v fallback = %v", method, fallback)
	}
}

func TestCopyFallsBackToOSC52(t *testing.T) {
	stub(t,
		func(string) error { return errors.New("exit status 1") },
		func(string) error { return nil },
		nil,
	)
	method, err := Copy("hello")
	if err != nil {
		t.Fatalf("copy: %v", err)
	}
	if method != MethodOSC52 {
		t.Fatalf("method = %v, want OSC52", method)
	}
}

func TestCopyExplainsMissingDisplay(t *testing.T) {
	stub(t,
		func(string) error { return errors.New("exit status 1") },
		func(string) error { return errors.New("no tty") },
		map[string]string{"TERM": "xterm-256color"},
	)
	err := WriteAll("hello")
	if err == nil || !strings.Contains(err.Error(), "no GUI clipboard available") {
		t.Fatalf("err = %v", err)
	}
}

func TestWriteSequenceEncodesText(t *testing.T) {
	stub(t, nil, nil, map[string]string{"TERM": "xterm-256color"})
	var buf bytes.Buffer
	if err := writeSequence(&buf, "recap"); err != nil {
		t.Fatalf("write: %v", err)
	}
	encoded := base64.StdEncoding.EncodeToString([]byte("recap"))
	if !strings.Contains(buf.String(), encoded) {
		t.Fatalf("sequence %q missing payload", buf.String())
	}
	if strings.Contains(buf.String(), "tmux") {
		t.Fatalf("plain terminal got a tmux wrapper")
	}
}

func TestWriteSequenceWrapsForTmux(t *testing.T) {
	stub(t, nil, nil, map[string]string{"TERM": "screen-256color", "TMUX": "/tmp/tmux-1/default"})
	var buf bytes.Buffer
	if err := writeSequence(&buf, "recap"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.Contains(buf.String(), "tmux;") {
		t.Fatalf("sequence %q missing tmux passthrough", buf.String())
	}
}

func TestOSC52DisabledByEnvOrDumbTerminal(t *testing.T) {
	stub(t, nil, nil, map[string]string{"TERM": "xterm", DisableOSC52Env: "true"})
	if osc52Enabled() {
		t.Fatalf("env override ignored")
	}
	stub(t, nil, nil, map[string]string{"TERM": "dumb"})
	if osc52Enabled() {
		t.Fatalf("dumb terminal should not get OSC52")
	}
	stub(t, nil, nil, map[string]string{"TERM": "xterm"})
	if !osc52Enabled() {
		t.Fatalf("xterm should get OSC52")
	}
}

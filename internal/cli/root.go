// Package cli defines Cobra command definitions for the endthought CLI.
// This file contains the root command, which launches the TUI.
package cli

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kingrea/endthought/internal/config"
	"github.com/kingrea/endthought/internal/tui"
	"github.com/kingrea/endthought/internal/workflow"
)

var version = "dev" // set via ldflags at build time

// rootFlags holds the values shared by every command.
type rootFlags struct {
	home        string
	mode        string
	timer       int
	noAltScreen bool
}

// Runner starts the TUI program for a model. Tests replace it.
type Runner func(m tea.Model, opts ...tea.ProgramOption) error

// isTerminal reports whether stdout is attached to a terminal.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func runProgram(m tea.Model, opts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}

// NewRootCmd builds the command tree. run may be nil to use bubbletea.
func NewRootCmd(run Runner) *cobra.Command {
	if run == nil {
		run = runProgram
	}
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "endthought",
		Short: "End thoughts. Don't store them.",
		Long: `endthought is a terminal tool for forcing decisions on the thoughts
that keep looping. Dump a messy thought, compare two options, give it five
minutes, or ask whether it will matter in a year. Every thought ends as an
action, a scheduled item, or a discard, and nothing outlives the session.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags, true)
			if err != nil {
				return err
			}
			// Without a terminal there is nothing to draw on
			if !isTerminal() {
				return cmd.Help()
			}
			app, err := tui.NewApp(cfg)
			if err != nil {
				return err
			}
			var opts []tea.ProgramOption
			if cfg.AltScreen() {
				opts = append(opts, tea.WithAltScreen())
			}
			if err := run(app, opts...); err != nil {
				return fmt.Errorf("running TUI: %w", err)
			}
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.home, "home", "", "Home directory for config and journal (default $ENDTHOUGHT_HOME or ~/.endthought)")
	pf.StringVar(&flags.mode, "mode", "", "Screen to open: dump, decision, timer or importance")
	pf.IntVar(&flags.timer, "timer", 0, "Thinking time in seconds for the 5-min rule")
	pf.BoolVar(&flags.noAltScreen, "no-alt-screen", false, "Draw inline instead of using the alternate screen")

	cmd.AddCommand(newInitCmd(flags))
	cmd.AddCommand(newConfigCmd(flags))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := NewRootCmd(nil).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves the home directory, optionally creates it, loads the
// configuration and applies command-line overrides.
func loadConfig(flags *rootFlags, create bool) (*config.Config, error) {
	home, err := config.ResolveHomeDir(flags.home)
	if err != nil {
		return nil, err
	}
	if create {
		if err := config.InitHomeDir(home); err != nil {
			return nil, err
		}
	}
	cfg, err := config.Load(home)
	if err != nil {
		return nil, err
	}
	if flags.mode != "" {
		mode, err := workflow.ParseMode(flags.mode)
		if err != nil {
			return nil, fmt.Errorf("--mode: %w", err)
		}
		cfg.SetStartMode(mode)
	}
	if flags.timer != 0 {
		if err := cfg.SetTimerSeconds(flags.timer); err != nil {
			return nil, fmt.Errorf("--timer: %w", err)
		}
	}
	if flags.noAltScreen {
		cfg.SetAltScreen(false)
	}
	return cfg, nil
}

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}

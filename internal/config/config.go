// internal/config/config.go
//
// This package handles configuration and the ~/.endthought home directory.
// The home directory holds config.yaml, an optional .env, and the journal.
// Resolved thoughts are never stored here.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/kingrea/endthought/internal/workflow"
)

const (
	// HomeDirName is the directory created under the user's home.
	HomeDirName = ".endthought"

	// HomeEnv overrides the home directory location.
	HomeEnv = "ENDTHOUGHT_HOME"

	configFileName = "config.yaml"
	envFileName    = ".env"

	defaultTimerSeconds = 300
	defaultSliderStep   = 5
	defaultJournalFile  = "journey.log"
	maxTimerSeconds     = 60 * 60
	maxSliderStep       = 50
)

// Environment overrides applied after config.yaml is read.
const (
	EnvStartMode    = "ENDTHOUGHT_START_MODE"
	EnvTimerSeconds = "ENDTHOUGHT_TIMER_SECONDS"
	EnvSliderStep   = "ENDTHOUGHT_SLIDER_STEP"
	EnvJournal      = "ENDTHOUGHT_JOURNAL"
)

const defaultConfigYAML = `# endthought configuration
version: 1

ui:
  # Screen shown on launch: dump, decision, timer or importance.
  start_mode: dump
  alt_screen: true

timer:
  # Thinking time for the 5-minute rule, in seconds.
  duration_seconds: 300

decision:
  # How far one left/right press moves a factor slider.
  slider_step: 5

journal:
  # The journal records what happened (mode, resolution kind), never what you wrote.
  enabled: true
  file: journey.log
`

// UIConfig holds shell preferences.
type UIConfig struct {
	StartMode string `yaml:"start_mode"`
	AltScreen *bool  `yaml:"alt_screen,omitempty"`
}

// TimerConfig holds countdown preferences.
type TimerConfig struct {
	DurationSeconds int `yaml:"duration_seconds"`
}

// DecisionConfig holds decision engine preferences.
type DecisionConfig struct {
	SliderStep int `yaml:"slider_step"`
}

// JournalConfig controls the session journal.
type JournalConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty"`
	File    string `yaml:"file,omitempty"`
}

// FileConfig models config.yaml.
type FileConfig struct {
	Version  int            `yaml:"version"`
	UI       UIConfig       `yaml:"ui"`
	Timer    TimerConfig    `yaml:"timer"`
	Decision DecisionConfig `yaml:"decision"`
	Journal  JournalConfig  `yaml:"journal"`
}

// Config holds the runtime configuration.
type Config struct {
	// HomeDir is where config.yaml and logs/ live.
	HomeDir string

	File FileConfig
}

// ResolveHomeDir picks the home directory: explicit flag value, then
// $ENDTHOUGHT_HOME, then ~/.endthought.
func ResolveHomeDir(flagValue string) (string, error) {
	if dir := strings.TrimSpace(flagValue); dir != "" {
		return filepath.Abs(dir)
	}
	if dir := strings.TrimSpace(os.Getenv(HomeEnv)); dir != "" {
		return filepath.Abs(dir)
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: locate user home: %w", err)
	}
	return filepath.Join(userHome, HomeDirName), nil
}

// InitHomeDir creates the home directory layout and a default config.yaml
// when none exists.
//
// Structure created:
// ~/.endthought/
// ├── config.yaml
// └── logs/        <- session journal
func InitHomeDir(homeDir string) error {
	if err := os.MkdirAll(filepath.Join(homeDir, "logs"), 0o755); err != nil {
		return fmt.Errorf("config: ensure home dir: %w", err)
	}
	return ensureConfigFile(filepath.Join(homeDir, configFileName))
}

// Load reads config.yaml (defaults when missing), applies .env and process
// environment overrides, and validates the result.
func Load(homeDir string) (*Config, error) {
	cfg := &Config{HomeDir: homeDir, File: defaultFileConfig()}
	if err := cfg.loadFile(); err != nil {
		return nil, err
	}
	// .env values never override variables already set in the environment.
	if err := godotenv.Load(cfg.EnvPath()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read %s: %w", cfg.EnvPath(), err)
	}
	if err := cfg.File.applyEnv(os.Getenv); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.File.applyDefaults()
	if err := cfg.File.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Default returns a configuration that uses built-in defaults only.
func Default(homeDir string) *Config {
	return &Config{HomeDir: homeDir, File: defaultFileConfig()}
}

// ConfigPath returns the path to config.yaml.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.HomeDir, configFileName)
}

// EnvPath returns the path to the optional .env file.
func (c *Config) EnvPath() string {
	return filepath.Join(c.HomeDir, envFileName)
}

// LogsDir returns the journal directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.HomeDir, "logs")
}

// JournalPath returns the journal file, or "" when the journal is disabled.
func (c *Config) JournalPath() string {
	if !c.JournalEnabled() {
		return ""
	}
	return filepath.Join(c.LogsDir(), c.File.Journal.File)
}

// JournalEnabled reports whether the session journal should be written.
func (c *Config) JournalEnabled() bool {
	return c.File.Journal.Enabled == nil || *c.File.Journal.Enabled
}

// AltScreen reports whether the TUI should use the alternate screen.
func (c *Config) AltScreen() bool {
	return c.File.UI.AltScreen == nil || *c.File.UI.AltScreen
}

// StartMode returns the screen shown on launch.
func (c *Config) StartMode() workflow.Mode {
	mode, err := workflow.ParseMode(c.File.UI.StartMode)
	if err != nil {
		return workflow.ModeDump
	}
	return mode
}

// TimerSeconds returns the thinking time for the timer workflow.
func (c *Config) TimerSeconds() int {
	if c.File.Timer.DurationSeconds <= 0 {
		return defaultTimerSeconds
	}
	return c.File.Timer.DurationSeconds
}

// SliderStep returns how far one keypress moves a decision slider.
func (c *Config) SliderStep() int {
	if c.File.Decision.SliderStep <= 0 {
		return defaultSliderStep
	}
	return c.File.Decision.SliderStep
}

// SetStartMode overrides the launch screen (used by the --mode flag).
func (c *Config) SetStartMode(mode workflow.Mode) {
	c.File.UI.StartMode = mode.String()
}

// SetTimerSeconds overrides the countdown length (used by the --timer flag).
func (c *Config) SetTimerSeconds(seconds int) error {
	if seconds < 1 || seconds > maxTimerSeconds {
		return fmt.Errorf("config: timer must be between 1 and %d seconds", maxTimerSeconds)
	}
	c.File.Timer.DurationSeconds = seconds
	return nil
}

// SetAltScreen overrides the alternate screen preference.
func (c *Config) SetAltScreen(enabled bool) {
	c.File.UI.AltScreen = &enabled
}

// YAML renders the effective configuration.
func (c *Config) YAML() ([]byte, error) {
	out := c.File
	altScreen := c.AltScreen()
	journal := c.JournalEnabled()
	out.UI.AltScreen = &altScreen
	out.Journal.Enabled = &journal
	data, err := yaml.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("config: encode config: %w", err)
	}
	return data, nil
}

func defaultFileConfig() FileConfig {
	return FileConfig{
		Version:  1,
		UI:       UIConfig{StartMode: workflow.ModeDump.String()},
		Timer:    TimerConfig{DurationSeconds: defaultTimerSeconds},
		Decision: DecisionConfig{SliderStep: defaultSliderStep},
		Journal:  JournalConfig{File: defaultJournalFile},
	}
}

func (c *Config) loadFile() error {
	data, err := os.ReadFile(c.ConfigPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read config: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	file := defaultFileConfig()
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("config: parse %s: %w", c.ConfigPath(), err)
	}
	file.applyDefaults()
	if err := file.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	c.File = file
	return nil
}

func (fc *FileConfig) applyDefaults() {
	if fc.Version == 0 {
		fc.Version = 1
	}
	fc.UI.StartMode = strings.ToLower(strings.TrimSpace(fc.UI.StartMode))
	if fc.UI.StartMode == "" {
		fc.UI.StartMode = workflow.ModeDump.String()
	}
	if fc.Timer.DurationSeconds == 0 {
		fc.Timer.DurationSeconds = defaultTimerSeconds
	}
	if fc.Decision.SliderStep == 0 {
		fc.Decision.SliderStep = defaultSliderStep
	}
	fc.Journal.File = strings.TrimSpace(fc.Journal.File)
	if fc.Journal.File == "" {
		fc.Journal.File = defaultJournalFile
	}
}

func (fc *FileConfig) applyEnv(getenv func(string) string) error {
	if v := strings.TrimSpace(getenv(EnvStartMode)); v != "" {
		fc.UI.StartMode = v
	}
	if v := strings.TrimSpace(getenv(EnvTimerSeconds)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimerSeconds, err)
		}
		fc.Timer.DurationSeconds = n
	}
	if v := strings.TrimSpace(getenv(EnvSliderStep)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSliderStep, err)
		}
		fc.Decision.SliderStep = n
	}
	if v := strings.TrimSpace(getenv(EnvJournal)); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvJournal, err)
		}
		fc.Journal.Enabled = &enabled
	}
	return nil
}

func (fc *FileConfig) validate() error {
	if fc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if _, err := workflow.ParseMode(fc.UI.StartMode); err != nil {
		return fmt.Errorf("ui.start_mode: %w", err)
	}
	if fc.Timer.DurationSeconds < 1 || fc.Timer.DurationSeconds > maxTimerSeconds {
		return fmt.Errorf("timer.duration_seconds must be between 1 and %d", maxTimerSeconds)
	}
	if fc.Decision.SliderStep < 1 || fc.Decision.SliderStep > maxSliderStep {
		return fmt.Errorf("decision.slider_step must be between 1 and %d", maxSliderStep)
	}
	if strings.ContainsAny(fc.Journal.File, `/\`) {
		return fmt.Errorf("journal.file must be a file name, not a path")
	}
	return nil
}

func ensureConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

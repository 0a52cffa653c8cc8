package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"math"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"

	"sreader/internal/action"
)

// Config represents the application configuration
type Config struct {
	Corpus      string            `toml:"corpus"`
	Rate        Duration          `toml:"rate"`       // delay between automatic advances
	TickRate    float64           `toml:"tick_rate"`  // Tick actions per second
	FrameRate   float64           `toml:"frame_rate"` // Render actions per second
	LogFile     string            `toml:"log_file"`
	LogLevel    string            `toml:"log_level"`
	Watch       bool              `toml:"watch"`
	Keybindings map[string]string `toml:"keybindings"` // key -> serialized action
}

// Duration is a time.Duration written as a Go duration string ("250ms").
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

type configService struct {
	fs       afero.Fs
	filePath string
}

// NewConfigService creates a config service for path on fsys. An empty path
// selects DefaultPath; a nil fsys selects the OS filesystem.
func NewConfigService(fsys afero.Fs, path string) ConfigService {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	if path == "" {
		path = DefaultPath()
	}
	return &configService{fs: fsys, filePath: path}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "sreader", "config.toml")
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration file, returning defaults when it does not exist
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path. Keys missing from
// the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := afero.ReadFile(cs.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s: %w", path, fs.ErrNotExist)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	defaults := cfg.Keybindings
	cfg.Keybindings = nil
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	// A [keybindings] table adds to and overrides the defaults.
	merged := maps.Clone(defaults)
	maps.Copy(merged, cfg.Keybindings)
	cfg.Keybindings = merged

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	// Ensure config directory exists
	dir := filepath.Dir(path)
	if err := cs.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := afero.WriteFile(cs.fs, path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Rate:        Duration(250 * time.Millisecond),
		TickRate:    4,
		FrameRate:   30,
		LogFile:     "sreader.log",
		LogLevel:    "info",
		Keybindings: DefaultKeybindings(),
	}
}

// DefaultKeybindings returns the normal-mode key map.
func DefaultKeybindings() map[string]string {
	return map[string]string{
		"?":      "ToggleShowHelp",
		"H":      "Help",
		"L":      "ShowLog",
		"l":      "LoadText",
		"space":  "TogglePlayback",
		"j":      "ScheduleAdvance(Forward, 1)",
		"k":      "ScheduleAdvance(Backward, 1)",
		"/":      "EnterInsert",
		"q":      "Quit",
		"ctrl+c": "Quit",
		"ctrl+z": "Suspend",
	}
}

// Validate checks value ranges, the log level and every key binding.
func (c *Config) Validate() error {
	var errs []error
	if c.Rate <= 0 {
		errs = append(errs, fmt.Errorf("rate must be positive, got %s", time.Duration(c.Rate)))
	}
	if err := checkHz("tick_rate", c.TickRate); err != nil {
		errs = append(errs, err)
	}
	if err := checkHz("frame_rate", c.FrameRate); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Bindings(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// MaxHz bounds tick_rate and frame_rate.
const MaxHz = 1000

// checkHz accepts 0 (disabled) up to MaxHz.
func checkHz(name string, hz float64) error {
	if math.IsNaN(hz) || hz < 0 || hz > MaxHz {
		return fmt.Errorf("%s must be between 0 and %d, got %g", name, MaxHz, hz)
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

// Bindings decodes the key map. Every failing entry is reported.
func (c *Config) Bindings() (map[string]action.Action, error) {
	bindings := make(map[string]action.Action, len(c.Keybindings))
	var errs []error
	for _, key := range slices.Sorted(maps.Keys(c.Keybindings)) {
		a, err := action.Parse(c.Keybindings[key])
		if err != nil {
			errs = append(errs, fmt.Errorf("keybinding %q: %w", key, err))
			continue
		}
		bindings[key] = a
	}
	return bindings, errors.Join(errs...)
}

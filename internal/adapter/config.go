package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Store    StoreConfig    `mapstructure:"store"`
	Playback PlaybackConfig `mapstructure:"playback"`
	Player   PlayerConfig   `mapstructure:"player"`
	UI       UIConfig       `mapstructure:"ui"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// CatalogConfig points at the clip list. Empty uses the built-in demo feed.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// StoreConfig holds persistence configuration
type StoreConfig struct {
	Dir string `mapstructure:"dir"` // empty keeps state in memory only
}

// PlaybackConfig holds in-feed playback timing
type PlaybackConfig struct {
	ControlsHide     time.Duration `mapstructure:"controls_hide"`     // controls auto-hide delay
	StartTimeout     time.Duration `mapstructure:"start_timeout"`     // begin-playback deadline
	ProgressInterval time.Duration `mapstructure:"progress_interval"` // progress sampling period
	StartDelay       time.Duration `mapstructure:"start_delay"`       // simulated buffering before play
	DefaultDuration  time.Duration `mapstructure:"default_duration"`  // for clips without a duration
}

// PlayerConfig holds external media player configuration
type PlayerConfig struct {
	Command   string   `mapstructure:"command"`
	Args      []string `mapstructure:"args"`
	StartFlag string   `mapstructure:"start_flag"` // e.g., "--start=" or "--start-time="
}

// UIConfig holds UI configuration
type UIConfig struct {
	TieBreak        string `mapstructure:"tie_break"` // "nearest" or "last"
	ScrollStep      int    `mapstructure:"scroll_step"`
	AnimationFrames int    `mapstructure:"animation_frames"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Dir: defaultDataPath(),
		},
		Playback: PlaybackConfig{
			ControlsHide:     1200 * time.Millisecond,
			StartTimeout:     5 * time.Second,
			ProgressInterval: 250 * time.Millisecond,
			StartDelay:       150 * time.Millisecond,
			DefaultDuration:  30 * time.Second,
		},
		Player: PlayerConfig{
			Args: []string{},
		},
		UI: UIConfig{
			TieBreak:        "nearest",
			ScrollStep:      3,
			AnimationFrames: 6,
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "reel.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "reel")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "reel")
	}
}

// defaultConfigPath returns the default config file path for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "reel")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "reel")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	// Environment variable overrides
	viper.SetEnvPrefix("REEL")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects settings the feed cannot run with
func (c *Config) Validate() error {
	switch c.UI.TieBreak {
	case "", "nearest", "last":
	default:
		return fmt.Errorf("invalid ui.tie_break %q: want nearest or last", c.UI.TieBreak)
	}
	if c.Playback.ControlsHide <= 0 {
		return fmt.Errorf("playback.controls_hide must be positive, got %v", c.Playback.ControlsHide)
	}
	if c.Playback.ProgressInterval <= 0 {
		return fmt.Errorf("playback.progress_interval must be positive, got %v", c.Playback.ProgressInterval)
	}
	if c.UI.ScrollStep < 1 {
		c.UI.ScrollStep = 1
	}
	if c.UI.AnimationFrames < 1 {
		c.UI.AnimationFrames = 1
	}
	return nil
}

// SaveConfig saves the current configuration to file
func SaveConfig(cfg *Config) error {
	configPath := defaultConfigPath()

	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.Set("catalog.path", cfg.Catalog.Path)
	viper.Set("store.dir", cfg.Store.Dir)

	viper.Set("playback.controls_hide", cfg.Playback.ControlsHide.String())
	viper.Set("playback.start_timeout", cfg.Playback.StartTimeout.String())
	viper.Set("playback.progress_interval", cfg.Playback.ProgressInterval.String())
	viper.Set("playback.start_delay", cfg.Playback.StartDelay.String())
	viper.Set("playback.default_duration", cfg.Playback.DefaultDuration.String())

	viper.Set("player.command", cfg.Player.Command)
	viper.Set("player.args", cfg.Player.Args)
	viper.Set("player.start_flag", cfg.Player.StartFlag)

	viper.Set("ui.tie_break", cfg.UI.TieBreak)
	viper.Set("ui.scroll_step", cfg.UI.ScrollStep)
	viper.Set("ui.animation_frames", cfg.UI.AnimationFrames)

	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ConfigPath returns the config file location SaveConfig writes to
func ConfigPath() string {
	return filepath.Join(defaultConfigPath(), "config.yaml")
}

// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/tidemark/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger logger.Config `toml:"logger"`
	Editor EditorConfig  `toml:"editor"`
	Keys   KeysConfig    `toml:"keys"`
}

// EditorConfig holds editor-specific settings.
type EditorConfig struct {
	TabWidth        int    `toml:"tab_width"`
	SystemClipboard bool   `toml:"system_clipboard"`
	Theme           string `toml:"theme"`
	ThemesDir       string `toml:"themes_dir"`
	// DebugInvariants re-checks every run sequence after each edit and panics
	// on a broken one.
	DebugInvariants bool `toml:"debug_invariants"`
	StatusBarHeight int  `toml:"status_bar_height"`
}

// KeysConfig binds Ctrl+letter keys to style tags, e.g. toggle = { b = "bold" }.
type KeysConfig struct {
	Toggle map[string]string `toml:"toggle"`
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Editor: EditorConfig{
			TabWidth:        DefaultTabWidth,
			SystemClipboard: SystemClipboard,
			Theme:           DefaultTheme,
			StatusBarHeight: StatusBarHeight,
		},
	}
}

// DefaultPath is the config file used when none is given.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, AppName, DefaultConfigFileName)
}

// loadFromFile decodes a TOML file over cfg. A missing file is not an error.
// It returns the keys the file set so unset ones keep their defaults.
func loadFromFile(filePath string, cfg *Config, verbose bool) (toml.MetaData, error) {
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		if verbose {
			logger.Debugf("Config file not found: %s", filePath)
		}
		return toml.MetaData{}, nil
	}
	if err != nil {
		return toml.MetaData{}, fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return metadata, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if len(metadata.Undecoded()) > 0 && verbose {
		logger.Warnf("Config file '%s': Unrecognized keys: %v", filePath, metadata.Undecoded())
	}
	if verbose {
		logger.Infof("Successfully loaded configuration from: %s", filePath)
	}
	return metadata, nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Editor.TabWidth <= 0 {
		c.Editor.TabWidth = defaults.Editor.TabWidth
	}
	if c.Editor.Theme == "" {
		c.Editor.Theme = defaults.Editor.Theme
	}
	if c.Editor.StatusBarHeight <= 0 {
		c.Editor.StatusBarHeight = defaults.Editor.StatusBarHeight
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
}

// Load builds a configuration from defaults, the TOML file at path (or the
// default location when path is empty) and flag overrides. Keys the file
// leaves unset keep their defaults. A parse error still returns a usable
// default configuration alongside the error.
func Load(path string, flags *Flags) (*Config, error) {
	cfg := NewDefaultConfig()
	if path == "" && flags != nil && flags.ConfigFilePath != nil {
		path = *flags.ConfigFilePath
	}
	if path == "" {
		path = DefaultPath()
	}

	var err error
	if path != "" {
		// Decoding into the defaults overwrites only the keys present in the file.
		if _, err = loadFromFile(path, cfg, false); err != nil {
			cfg = NewDefaultConfig()
		}
	}

	if flags != nil {
		flags.ApplyOverrides(cfg, false)
	}
	cfg.validate()
	return cfg, err
}

// LoadConfig loads the configuration once for the process, typically from main.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		loadedConfig, loadErr = Load(configFilePath, flags)
	})
	return loadedConfig, loadErr
}

// Get returns the loaded application configuration. Panics if LoadConfig wasn't called.
func Get() *Config {
	if loadedConfig == nil {
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}

package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

var (
	cfgFile = "gomoku-local/config.json"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type ConfigColors struct {
	BoardColor        int `json:"board"`
	BoardColorAlt     int `json:"board_alt"`
	BlackColor        int `json:"black"`
	BlackColorAlt     int `json:"black_alt"`
	WhiteColor        int `json:"white"`
	WhiteColorAlt     int `json:"white_alt"`
	LineColor         int `json:"line"`
	CursorColorFG     int `json:"cursor_fg"`
	CursorColorBG     int `json:"cursor_bg"`
	LastPlayedColorBG int `json:"last_played_bg"`
}

type ConfigSymbols struct {
	BlackStone  rune `json:"black"`
	WhiteStone  rune `json:"white"`
	BoardSquare rune `json:"board"`
	Cursor      rune `json:"cursor"`
	LastPlayed  rune `json:"last_played"`
}

type Theme struct {
	DrawStoneBackground      bool          `json:"draw_stone_bg"`
	DrawCursorBackground     bool          `json:"draw_cursor_bg"`
	DrawLastPlayedBackground bool          `json:"draw_last_played_bg"`
	FullWidthLetters         bool          `json:"fullwidth_letters"`
	UseGridLines             bool          `json:"use_grid_lines"`
	Colors                   ConfigColors  `json:"colors"`
	Symbols                  ConfigSymbols `json:"symbols"`
}

// EngineConfig holds search settings.
type EngineConfig struct {
	SearchDepth  int `json:"search_depth"`
	Radius       int `json:"radius"`
	Workers      int `json:"workers"`
	PlayerColor  int `json:"player_color"`
	CacheStripes int `json:"cache_stripes"`
}

// LogConfig selects the log level and, for the terminal UI, the log file.
type LogConfig struct {
	Level string `json:"level"`
	Path  string `json:"path"`
}

type Config struct {
	Theme  Theme        `json:"theme"`
	Engine EngineConfig `json:"engine"`
	Log    LogConfig    `json:"log"`
}

// InitConfig loads the user's config file, if any, over the defaults.
func InitConfig() (*Config, error) {
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err != nil {
		config := DefaultConfig
		return &config, config.Validate()
	}
	return LoadFile(absPath)
}

// LoadFile reads the config at filePath over the defaults and validates it.
func LoadFile(filePath string) (*Config, error) {
	config := DefaultConfig
	if err := readCfgFile(filePath, &config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	for _, r := range []rune{c.Theme.Symbols.BlackStone, c.Theme.Symbols.WhiteStone, c.Theme.Symbols.BoardSquare} {
		if r < 32 || (r >= 127 && r <= 159) {
			return &InvalidConfig{"Unicode characters 1-31 and 127-159 are not allowed"}
		}
	}
	e := c.Engine
	if e.SearchDepth < 2 || e.SearchDepth%2 != 0 {
		return &InvalidConfig{fmt.Sprintf("search_depth must be an even number of at least 2, got %d", e.SearchDepth)}
	}
	if e.Radius < 1 {
		return &InvalidConfig{fmt.Sprintf("radius must be at least 1, got %d", e.Radius)}
	}
	if e.Workers < 0 {
		return &InvalidConfig{fmt.Sprintf("workers must not be negative, got %d", e.Workers)}
	}
	if e.PlayerColor != 1 && e.PlayerColor != 2 {
		return &InvalidConfig{fmt.Sprintf("player_color must be 1 (black) or 2 (white), got %d", e.PlayerColor)}
	}
	if e.CacheStripes < 0 || e.CacheStripes&(e.CacheStripes-1) != 0 {
		return &InvalidConfig{fmt.Sprintf("cache_stripes must be a power of two, got %d", e.CacheStripes)}
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return &InvalidConfig{fmt.Sprintf("unknown log level %q", c.Log.Level)}
	}
	return nil
}

// LogLevel returns the configured level. Validate has checked it parses.
func (c *Config) LogLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// LogPath returns the debug log file used while the terminal UI owns the screen.
func (c *Config) LogPath() string {
	if c.Log.Path != "" {
		return c.Log.Path
	}
	return filepath.Join(os.TempDir(), "gomoku-local-debug.log")
}

// Save writes the config to the user's config directory.
func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return errors.Wrap(err, "locate config file")
	}
	return saveCfgFile(absPath, c, 0664)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode config")
	}
	return errors.Wrapf(os.WriteFile(filePath, jsonData, perm), "write %s", filePath)
}

func readCfgFile(filePath string, a interface{}) error {
	configReader, err := os.ReadFile(filePath)
	if err != nil {
		return errors.Wrapf(err, "read %s", filePath)
	}
	return errors.Wrapf(json.Unmarshal(configReader, a), "parse %s", filePath)
}

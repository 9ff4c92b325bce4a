package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestDefaultConfigValid(t *testing.T) {
	c := DefaultConfig
	if err := c.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if c.LogLevel() != zerolog.InfoLevel {
		t.Fatalf("LogLevel = %v", c.LogLevel())
	}
	if filepath.Base(c.LogPath()) != "gomoku-local-debug.log" {
		t.Fatalf("LogPath = %q", c.LogPath())
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeTempConfig(t, `{"engine":{"search_depth":6,"radius":2,"player_color":2},"log":{"level":"debug","path":"/var/tmp/g.log"}}`)
	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if c.Engine.SearchDepth != 6 || c.Engine.Radius != 2 || c.Engine.PlayerColor != 2 {
		t.Fatalf("engine = %+v", c.Engine)
	}
	if c.Engine.CacheStripes != DefaultConfig.Engine.CacheStripes {
		t.Fatalf("cache_stripes lost its default: %d", c.Engine.CacheStripes)
	}
	if c.Theme.Symbols.BlackStone != DefaultTheme.Symbols.BlackStone {
		t.Fatal("theme lost its default")
	}
	if c.LogLevel() != zerolog.DebugLevel || c.LogPath() != "/var/tmp/g.log" {
		t.Fatalf("log = %+v", c.Log)
	}
}

func TestLoadFileRejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"odd depth", `{"engine":{"search_depth":3}}`},
		{"zero depth", `{"engine":{"search_depth":0}}`},
		{"radius", `{"engine":{"radius":0}}`},
		{"workers", `{"engine":{"workers":-1}}`},
		{"color", `{"engine":{"player_color":3}}`},
		{"stripes", `{"engine":{"cache_stripes":48}}`},
		{"level", `{"log":{"level":"loud"}}`},
		{"symbol", `{"theme":{"symbols":{"black":7}}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeTempConfig(t, tt.content))
			var invalid *InvalidConfig
			if !errors.As(err, &invalid) {
				t.Fatalf("err = %v, want InvalidConfig", err)
			}
		})
	}
}

func TestLoadFileMalformed(t *testing.T) {
	if _, err := LoadFile(writeTempConfig(t, `{"engine":`)); err == nil {
		t.Fatal("malformed json accepted")
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("missing file accepted")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	c := DefaultConfig
	c.Engine.SearchDepth = 8
	if err := saveCfgFile(path, &c, 0644); err != nil {
		t.Fatal(err)
	}
	got, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Engine.SearchDepth != 8 {
		t.Fatalf("SearchDepth = %d", got.Engine.SearchDepth)
	}
}

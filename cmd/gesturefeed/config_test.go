package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/gesture"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gesturefeed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8787", cfg.Server.Listen)
	assert.Equal(t, "/ws", cfg.Server.Path)
	require.Len(t, cfg.Zones, 1)
	assert.Equal(t, "surface", cfg.Zones[0].ID)
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfig(t, `
server:
  listen: 0.0.0.0:9000
  path: /gestures
logging:
  level: debug
  format: json
presets:
  carousel:
    swipe_threshold: 80
    enabled_directions: [left, right]
zones:
  - id: gallery
    preset: carousel
  - id: card
    target: card-1
    disabled: true
    config:
      long_press_time: 700ms
`)
	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Listen)
	assert.Equal(t, "json", cfg.Logging.Format)
	require.Len(t, cfg.Zones, 2)

	e := gesture.New(gesture.Options{})
	cfg.register(e, nil)
	assert.Equal(t, []string{"gallery", "card"}, e.ZoneIDs())

	gallery, ok := e.Zone("gallery")
	require.True(t, ok)
	assert.Equal(t, "gallery", gallery.Target)
	assert.Equal(t, 80.0, gallery.Config.SwipeThreshold)
	assert.Equal(t, gesture.SwipeHorizontal, gallery.Config.EnabledDirections)

	card, ok := e.Zone("card")
	require.True(t, ok)
	assert.Equal(t, "card-1", card.Target)
	assert.False(t, card.Enabled)
	assert.Equal(t, 700*time.Millisecond, card.Config.LongPressTime)
	assert.Equal(t, 50.0, card.Config.SwipeThreshold)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown key", "server:\n  port: 80\n", "port"},
		{"bad path", "server:\n  path: ws\n", "must start with /"},
		{"bad level", "logging:\n  level: loud\n", "invalid log level"},
		{"duplicate zone", "zones:\n  - id: a\n  - id: a\n", "duplicate id"},
		{"unknown preset", "zones:\n  - id: a\n    preset: nope\n", "unknown preset"},
		{"missing id", "zones:\n  - target: x\n", "id is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(LoggingConfig{Level: "warn", Format: "json"}, &buf)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "zone", "card")
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.True(t, strings.HasPrefix(out, "{"), "json output expected, got %q", out)
	assert.Contains(t, out, `"zone":"card"`)

	_, err = newLogger(LoggingConfig{Format: "xml"}, &buf)
	assert.Error(t, err)
}

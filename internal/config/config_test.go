package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugaemi/divecatch-server/internal/game"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "LOG_LEVEL", "LOG_FORMAT", "DATABASE_URL", "TUNABLES_FILE",
		"TICK_RATE", "SCREEN_WIDTH", "SCREEN_HEIGHT", "SESSION_DURATION"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, game.TickRate, cfg.TickRate)
	assert.Equal(t, game.ScreenWidth, cfg.ScreenWidth)
	assert.Equal(t, time.Duration(0), cfg.SessionDuration)
	assert.Equal(t, game.TickInterval, cfg.TickInterval())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("TICK_RATE", "30")
	t.Setenv("SCREEN_WIDTH", "12.5")
	t.Setenv("SESSION_DURATION", "90s")

	cfg := Load()

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, 30, cfg.TickRate)
	assert.Equal(t, 12.5, cfg.ScreenWidth)
	assert.Equal(t, 90*time.Second, cfg.SessionDuration)
	assert.Equal(t, time.Second/30, cfg.TickInterval())
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	t.Setenv("SCREEN_HEIGHT", "tall")
	t.Setenv("SESSION_DURATION", "forever")

	cfg := Load()

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, game.ScreenHeight, cfg.ScreenHeight)
	assert.Equal(t, time.Duration(0), cfg.SessionDuration)
}

func TestConfig_Screen(t *testing.T) {
	cfg := &Config{ScreenWidth: 20, ScreenHeight: 12}

	s := cfg.Screen()
	assert.Equal(t, 10.0, s.Max.X)
	assert.Equal(t, -6.0, s.Min.Y)
}

func TestLoadTunables_EmptyPath(t *testing.T) {
	tu, err := LoadTunables("")
	require.NoError(t, err)
	assert.Equal(t, game.DefaultTunables(), tu)
}

func TestLoadTunables_OverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tunables.yaml")
	content := `
pursuer:
  dive_distance: 4.5
  initial_direction: {x: 0, y: 1}
evader:
  scared_distance: 2
  facing_offset: 0
catch_radius: 0.75
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	tu, err := LoadTunables(path)
	require.NoError(t, err)

	def := game.DefaultTunables()
	assert.Equal(t, 4.5, tu.Pursuer.DiveDistance)
	assert.Equal(t, 1.0, tu.Pursuer.InitialDirection.Y)
	assert.Equal(t, 2.0, tu.Evader.ScaredDistance)
	assert.Equal(t, 0.0, tu.Evader.FacingOffset)
	assert.Equal(t, 0.75, tu.CatchRadius)
	assert.Equal(t, def.Pursuer.DiveTime, tu.Pursuer.DiveTime, "unset keys keep defaults")
	assert.Equal(t, def.Evader.MaxMoveAttempts, tu.Evader.MaxMoveAttempts)
}

func TestLoadTunables_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadTunables(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("pursuer: [not, a, map]"), 0o644))
	_, err = LoadTunables(bad)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("pursuer:\n  dive_time: 0\n"), 0o644))
	_, err = LoadTunables(invalid)
	assert.Error(t, err)
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ugaemi/divecatch-server/internal/game"
)

type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	DatabaseURL string

	// TunablesFile is an optional YAML file overriding game.DefaultTunables.
	TunablesFile string

	TickRate        int
	ScreenWidth     float64
	ScreenHeight    float64
	SessionDuration time.Duration // zero means no time limit
}

func Load() *Config {
	return &Config{
		Port:            getEnvInt("PORT", 8080),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		TunablesFile:    getEnv("TUNABLES_FILE", ""),
		TickRate:        getEnvInt("TICK_RATE", game.TickRate),
		ScreenWidth:     getEnvFloat("SCREEN_WIDTH", game.ScreenWidth),
		ScreenHeight:    getEnvFloat("SCREEN_HEIGHT", game.ScreenHeight),
		SessionDuration: getEnvDuration("SESSION_DURATION", 0),
	}
}

// TickInterval is the wall-clock length of one simulation tick.
func (c *Config) TickInterval() time.Duration {
	if c.TickRate <= 0 {
		return game.TickInterval
	}
	return time.Second / time.Duration(c.TickRate)
}

// Screen returns the world rectangle sessions simulate in.
func (c *Config) Screen() game.Screen {
	return game.NewScreen(c.ScreenWidth, c.ScreenHeight)
}

// LoadTunables returns the default tunables overlaid with the YAML file at
// path. Keys missing from the file keep their defaults. An empty path
// returns the defaults.
func LoadTunables(path string) (game.Tunables, error) {
	t := game.DefaultTunables()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("read tunables: %w", err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("parse tunables %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("invalid tunables %s: %w", path, err)
	}
	return t, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

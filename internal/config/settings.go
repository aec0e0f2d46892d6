package config

import (
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Settings are the runtime defaults for projection runs. CLI flags override
// them.
type Settings struct {
	Trials              int
	SwingTrials         int
	Workers             int
	Seed                int64
	Ranking             string
	ClampNegativeScores bool
	LogLevel            string
	LogFormat           string
}

// LoadSettings reads a .env file from the working directory when present,
// then the environment.
func LoadSettings() *Settings {
	_ = godotenv.Load()

	return &Settings{
		Trials:      envInt("PROJECTOR_TRIALS", 1000),
		SwingTrials: envInt("PROJECTOR_SWING_TRIALS", 200),
		Workers:     envInt("PROJECTOR_WORKERS", runtime.NumCPU()),
		Seed:        int64(envInt("PROJECTOR_SEED", 0)),
		Ranking:     envStr("PROJECTOR_RANKING", "simple"),

		ClampNegativeScores: envBool("PROJECTOR_CLAMP_NEGATIVE", false),

		LogLevel:  envStr("LOG_LEVEL", "info"),
		LogFormat: envStr("LOG_FORMAT", "text"),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}
	return fallback
}

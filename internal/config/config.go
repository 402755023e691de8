// internal/config/config.go
//
// Environment-driven configuration. main loads `.env` with godotenv first, so
// every value here can come from the process environment or that file.

package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds every setting the binaries read.
type Config struct {
	Port         string        // PORT
	LogLevel     string        // LOG_LEVEL
	LogFile      string        // LOG_FILE (terminal surface only)
	ClientOrigin string        // CLIENT_ORIGIN, for CORS
	JWTSecret    string        // JWT_SECRET, signs session tokens and seeds sessions
	CookieName   string        // COOKIE_NAME
	Production   bool          // NODE_ENV=production
	SessionTTL   time.Duration // SESSION_TTL
	SweepEvery   time.Duration // SWEEP_INTERVAL
	DatabasePath string        // DATABASE_PATH; empty disables the outcome journal
	PuzzleFile   string        // PUZZLE_FILE; empty uses the embedded puzzle
	AdminUser    string        // ADMIN_USER
	AdminHash    string        // ADMIN_PASSWORD_HASH (bcrypt)
	Sound        bool          // SOUND (terminal surface only)
}

// Load reads the environment, applying defaults for anything unset or malformed.
func Load() Config {
	return Config{
		Port:         getEnv("PORT", "5175"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFile:      os.Getenv("LOG_FILE"),
		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		JWTSecret:    getEnv("JWT_SECRET", "dev_secret_change_me"),
		CookieName:   getEnv("COOKIE_NAME", "valentine_session"),
		Production:   os.Getenv("NODE_ENV") == "production",
		SessionTTL:   envDuration("SESSION_TTL", 2*time.Hour),
		SweepEvery:   envDuration("SWEEP_INTERVAL", time.Minute),
		DatabasePath: os.Getenv("DATABASE_PATH"),
		PuzzleFile:   os.Getenv("PUZZLE_FILE"),
		AdminUser:    os.Getenv("ADMIN_USER"),
		AdminHash:    os.Getenv("ADMIN_PASSWORD_HASH"),
		Sound:        envBool("SOUND", true),
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envDuration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}

func envBool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

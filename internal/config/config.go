package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the process needs at startup. It is built once in
// main and passed down; no package keeps its own copy of the environment.
type Config struct {
	// HTTP server
	Port       string
	CORSOrigin string

	// Database
	DatabaseURL string

	// Auth
	JWTSecret []byte
	TokenTTL  time.Duration

	// CSV uploads
	UploadDir string

	// Rate limiting for the auth endpoints
	AuthRateMax    int
	AuthRateWindow time.Duration
}

// Load reads a .env file if present, then the environment, applying defaults.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:       getEnv("PORT", "5000"),
		CORSOrigin: getEnv("CORS_ORIGIN", "*"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		JWTSecret: []byte(strings.TrimSpace(os.Getenv("JWT_SECRET"))),
		TokenTTL:  getEnvDuration("TOKEN_TTL", 30*24*time.Hour),

		UploadDir: getEnv("UPLOAD_DIR", os.TempDir()),

		AuthRateMax:    getEnvInt("AUTH_RATE_MAX", 30),
		AuthRateWindow: getEnvDuration("AUTH_RATE_WINDOW", time.Minute),
	}
}

// Validate reports the settings that have no usable default.
func (c *Config) Validate() error {
	var missing []string

	if c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if len(c.JWTSecret) == 0 {
		missing = append(missing, "JWT_SECRET")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}

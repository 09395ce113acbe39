// Package config reads runtime settings from the environment and an optional .env file
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends
const (
	StorageTypeFile   = "file"
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// Config holds every setting shared by the server and the CLI
type Config struct {
	Port   int
	Season int

	RosterDir string

	StorageType  string
	EncryptedDir string
	LogFile      string
	RedisURL     string

	DraftReadURL  string
	DraftWriteURL string

	CORSOrigins []string
}

// Load applies .env files (default ".env", missing files ignored) and then reads the environment.
// Values already in the environment win over .env entries.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file: %w", err)
		}
		slog.Debug(".env file not found, using environment variables or defaults")
	}

	port, err := getEnvInt("PORT", 3000)
	if err != nil {
		return nil, err
	}
	season, err := getEnvInt("CURRENT_YEAR", time.Now().Year())
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:          port,
		Season:        season,
		RosterDir:     getEnv("ROSTER_DIR", "."),
		StorageType:   strings.ToLower(getEnv("STORAGE_TYPE", StorageTypeFile)),
		EncryptedDir:  getEnv("ENCRYPTED_DIR", "./data/encrypted"),
		LogFile:       getEnv("LOG_FILE", "./data/keepers.log"),
		RedisURL:      getEnv("REDIS_URL", ""),
		DraftReadURL:  getEnv("DRAFT_API_READ_URL", "http://localhost:8176/api/v1"),
		DraftWriteURL: getEnv("DRAFT_API_WRITE_URL", "http://localhost:8175/api/v1"),
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "*")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that cannot be defaulted
func (c *Config) Validate() error {
	switch c.StorageType {
	case StorageTypeFile, StorageTypeMemory:
	case StorageTypeRedis:
		if c.RedisURL == "" {
			return errors.New("REDIS_URL required when STORAGE_TYPE=redis")
		}
	default:
		return fmt.Errorf("invalid STORAGE_TYPE %q: must be file, memory or redis", c.StorageType)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got %q", key, v)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

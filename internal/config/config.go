// Package config handles application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Storage backend selectors.
const (
	BackendSQLite = "sqlite"
	BackendJSON   = "json"
)

// Config holds the application configuration.
type Config struct {
	TelegramAPIKey string
	StorageBackend string
	DatabasePath   string
	ChatsFile      string
	LogLevel       string
	PollInterval   time.Duration
}

// Load reads configuration from environment variables. A missing Telegram
// API key is the only fatal condition; everything else has a default.
func Load() (*Config, error) {
	token := os.Getenv("TELEGRAM_API_KEY")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_API_KEY is required")
	}

	backend := os.Getenv("STORAGE_BACKEND")
	if backend == "" {
		backend = BackendSQLite
	}
	if backend != BackendSQLite && backend != BackendJSON {
		return nil, fmt.Errorf("invalid STORAGE_BACKEND %q, use %q or %q", backend, BackendSQLite, BackendJSON)
	}

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "./data/bot.db"
	}

	chatsFile := os.Getenv("CHATS_FILE")
	if chatsFile == "" {
		chatsFile = "./data/chats.json"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	interval := 30 * time.Second
	if raw := os.Getenv("POLL_INTERVAL_SECONDS"); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil || secs < 1 {
			return nil, fmt.Errorf("invalid POLL_INTERVAL_SECONDS %q", raw)
		}
		interval = time.Duration(secs) * time.Second
	}

	return &Config{
		TelegramAPIKey: token,
		StorageBackend: backend,
		DatabasePath:   dbPath,
		ChatsFile:      chatsFile,
		LogLevel:       logLevel,
		PollInterval:   interval,
	}, nil
}

package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		want    *Config
		wantErr bool
	}{
		{
			name:    "missing token",
			env:     map[string]string{},
			wantErr: true,
		},
		{
			name: "token only, defaults applied",
			env:  map[string]string{"TELEGRAM_API_KEY": "test-token"},
			want: &Config{
				TelegramAPIKey: "test-token",
				StorageBackend: BackendSQLite,
				DatabasePath:   "./data/bot.db",
				ChatsFile:      "./data/chats.json",
				LogLevel:       "info",
				PollInterval:   30 * time.Second,
			},
		},
		{
			name: "all values set",
			env: map[string]string{
				"TELEGRAM_API_KEY":      "tok",
				"STORAGE_BACKEND":       "json",
				"DATABASE_PATH":         "/tmp/bot.db",
				"CHATS_FILE":            "/tmp/chats.json",
				"LOG_LEVEL":             "debug",
				"POLL_INTERVAL_SECONDS": "60",
			},
			want: &Config{
				TelegramAPIKey: "tok",
				StorageBackend: BackendJSON,
				DatabasePath:   "/tmp/bot.db",
				ChatsFile:      "/tmp/chats.json",
				LogLevel:       "debug",
				PollInterval:   60 * time.Second,
			},
		},
		{
			name: "invalid backend",
			env: map[string]string{
				"TELEGRAM_API_KEY": "tok",
				"STORAGE_BACKEND":  "postgres",
			},
			wantErr: true,
		},
		{
			name: "invalid poll interval",
			env: map[string]string{
				"TELEGRAM_API_KEY":      "tok",
				"POLL_INTERVAL_SECONDS": "abc",
			},
			wantErr: true,
		},
		{
			name: "zero poll interval",
			env: map[string]string{
				"TELEGRAM_API_KEY":      "tok",
				"POLL_INTERVAL_SECONDS": "0",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clear relevant env vars
			for _, key := range []string{"TELEGRAM_API_KEY", "STORAGE_BACKEND", "DATABASE_PATH", "CHATS_FILE", "LOG_LEVEL", "POLL_INTERVAL_SECONDS"} {
				t.Setenv(key, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			got, err := Load()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Load() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

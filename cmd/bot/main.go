package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"burgerbot/internal/bot"
	"burgerbot/internal/catalog"
	"burgerbot/internal/checker"
	"burgerbot/internal/config"
	"burgerbot/internal/dedup"
	"burgerbot/internal/scheduler"
	"burgerbot/internal/storage"
	"burgerbot/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	log := newLogger(cfg.LogLevel)

	snapshot, err := openSnapshotter(cfg, log)
	if err != nil {
		log.Error("open storage", "backend", cfg.StorageBackend, "error", err)
		os.Exit(1)
	}
	defer func() { _ = snapshot.Close() }()

	cat := catalog.New()
	st := store.New(cat, snapshot, log)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := st.Load(ctx); err != nil {
		log.Error("load subscribers", "error", err)
		os.Exit(1)
	}

	b, err := bot.New(cfg.TelegramAPIKey, st, cat, log)
	if err != nil {
		log.Error("create bot", "error", err)
		os.Exit(1)
	}

	// The tracked service set is the union of all subscriptions at startup;
	// services added later are picked up on restart.
	chk := checker.New(st.TrackedServices())
	dispatcher := scheduler.NewDispatcher(st, dedup.New(), cat, b, log)
	sched := scheduler.New(chk, dispatcher, log)
	sched.SetTickInterval(cfg.PollInterval)

	log.Info("starting bot", "backend", cfg.StorageBackend, "poll_interval", cfg.PollInterval)

	go sched.Run(ctx)

	b.Run(ctx)

	log.Info("bot stopped")
}

func openSnapshotter(cfg *config.Config, log *slog.Logger) (storage.Snapshotter, error) {
	switch cfg.StorageBackend {
	case config.BackendJSON:
		if err := ensureDir(cfg.ChatsFile); err != nil {
			return nil, err
		}
		return storage.NewJSONFile(cfg.ChatsFile), nil
	default:
		if err := ensureDir(cfg.DatabasePath); err != nil {
			return nil, err
		}
		return storage.NewSQLite(cfg.DatabasePath)
	}
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o750)
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	_ "modernc.org/sqlite" // SQLite driver registration.

	"burgerbot/internal/model"
	"burgerbot/migrations"
)

// SQLite implements Snapshotter backed by a SQLite database.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at dsn and runs pending migrations.
func NewSQLite(dsn string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Load reads the full subscriber collection.
func (s *SQLite) Load(ctx context.Context) ([]model.Subscriber, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT chat_id FROM subscribers ORDER BY chat_id`)
	if err != nil {
		return nil, fmt.Errorf("query subscribers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var subs []model.Subscriber
	for rows.Next() {
		var chatID int64
		if err := rows.Scan(&chatID); err != nil {
			return nil, fmt.Errorf("scan subscriber: %w", err)
		}
		subs = append(subs, model.Subscriber{ChatID: chatID})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subscribers: %w", err)
	}

	for i := range subs {
		services, err := s.loadServices(ctx, subs[i].ChatID)
		if err != nil {
			return nil, err
		}
		subs[i].Services = services
	}
	return subs, nil
}

func (s *SQLite) loadServices(ctx context.Context, chatID int64) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT service_id FROM subscriptions WHERE chat_id = ? ORDER BY service_id`, chatID)
	if err != nil {
		return nil, fmt.Errorf("query subscriptions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var services []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		services = append(services, id)
	}
	return services, rows.Err()
}

// Save rewrites the full collection in one transaction.
func (s *SQLite) Save(ctx context.Context, subscribers []model.Subscriber) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM subscriptions`); err != nil {
		return fmt.Errorf("clear subscriptions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM subscribers`); err != nil {
		return fmt.Errorf("clear subscribers: %w", err)
	}

	for _, sub := range subscribers {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO subscribers (chat_id) VALUES (?)`, sub.ChatID); err != nil {
			return fmt.Errorf("insert subscriber %d: %w", sub.ChatID, err)
		}
		services := append([]int64(nil), sub.Services...)
		sort.Slice(services, func(i, j int) bool { return services[i] < services[j] })
		for _, serviceID := range services {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO subscriptions (chat_id, service_id) VALUES (?, ?)`,
				sub.ChatID, serviceID); err != nil {
				return fmt.Errorf("insert subscription %d/%d: %w", sub.ChatID, serviceID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

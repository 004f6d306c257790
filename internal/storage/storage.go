// Package storage defines the snapshot persistence interface and its
// implementations.
package storage

import (
	"context"

	"burgerbot/internal/model"
)

// Snapshotter persists full snapshots of the subscriber collection. Save
// always rewrites the entire collection; there is no incremental update.
type Snapshotter interface {
	Load(ctx context.Context) ([]model.Subscriber, error)
	Save(ctx context.Context, subscribers []model.Subscriber) error
	Close() error
}

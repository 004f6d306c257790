package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"burgerbot/internal/model"
)

type chatRecord struct {
	ChatID   int64   `json:"chat_id"`
	Services []int64 `json:"services"`
}

// JSONFile implements Snapshotter as a single JSON file holding the full
// subscriber collection, rewritten in place on every Save.
type JSONFile struct {
	path string
}

// NewJSONFile creates a file-backed Snapshotter at the given path.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

// Load reads the subscriber collection. A missing file is an empty
// collection, not an error.
func (f *JSONFile) Load(_ context.Context) ([]model.Subscriber, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}

	var records []chatRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.path, err)
	}

	subs := make([]model.Subscriber, 0, len(records))
	for _, r := range records {
		subs = append(subs, model.Subscriber{ChatID: r.ChatID, Services: r.Services})
	}
	return subs, nil
}

// Save truncate-writes the full collection to the file.
func (f *JSONFile) Save(_ context.Context, subscribers []model.Subscriber) error {
	records := make([]chatRecord, 0, len(subscribers))
	for _, sub := range subscribers {
		services := sub.Services
		if services == nil {
			services = []int64{}
		}
		records = append(records, chatRecord{ChatID: sub.ChatID, Services: services})
	}

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode subscribers: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	return nil
}

// Close is a no-op for the file backend.
func (f *JSONFile) Close() error { return nil }

// Package store owns the in-memory subscriber collection. Every operation
// takes one mutex across read, mutate, and persist, so the poll activity and
// the command activity never observe a partially applied mutation.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"burgerbot/internal/catalog"
	"burgerbot/internal/model"
	"burgerbot/internal/storage"
)

// Validation errors surfaced to the command caller.
var (
	ErrUnknownService    = errors.New("unknown service")
	ErrUnknownSubscriber = errors.New("unknown subscriber")
	ErrNotSubscribed     = errors.New("not subscribed to this service")
)

// SubscriberStore holds the authoritative subscriber collection and mirrors
// it to a snapshot backend. Persistence failures are logged, never returned:
// the in-memory state stands until the next successful write.
type SubscriberStore struct {
	mu       sync.Mutex
	subs     map[int64]map[int64]struct{}
	catalog  *catalog.Catalog
	snapshot storage.Snapshotter
	log      *slog.Logger
}

// New creates an empty store over the given catalog and snapshot backend.
func New(cat *catalog.Catalog, snapshot storage.Snapshotter, log *slog.Logger) *SubscriberStore {
	return &SubscriberStore{
		subs:     make(map[int64]map[int64]struct{}),
		catalog:  cat,
		snapshot: snapshot,
		log:      log,
	}
}

// Load restores the collection from the snapshot backend. Service ids that
// are no longer in the catalog are dropped. Called once at startup.
func (s *SubscriberStore) Load(ctx context.Context) error {
	subs, err := s.snapshot.Load(ctx)
	if err != nil {
		return fmt.Errorf("load subscribers: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.subs = make(map[int64]map[int64]struct{}, len(subs))
	for _, sub := range subs {
		services := make(map[int64]struct{}, len(sub.Services))
		for _, id := range sub.Services {
			if s.catalog.Contains(id) {
				services[id] = struct{}{}
			}
		}
		s.subs[sub.ChatID] = services
	}
	return nil
}

// List returns a point-in-time deep copy of all subscribers, sorted by chat
// id with sorted service lists.
func (s *SubscriberStore) List() []model.Subscriber {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listLocked()
}

// Services returns a sorted copy of one subscriber's service set. The second
// return value is false when the chat is not a subscriber.
func (s *SubscriberStore) Services(chatID int64) ([]int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	services, ok := s.subs[chatID]
	if !ok {
		return nil, false
	}
	return sortedIDs(services), true
}

// TrackedServices returns the sorted union of every subscriber's service set.
func (s *SubscriberStore) TrackedServices() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	union := make(map[int64]struct{})
	for _, services := range s.subs {
		for id := range services {
			union[id] = struct{}{}
		}
	}
	return sortedIDs(union)
}

// AddSubscriber inserts a subscriber with a fresh empty service set. Adding
// an existing subscriber is a no-op.
func (s *SubscriberStore) AddSubscriber(ctx context.Context, chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subs[chatID]; ok {
		return
	}
	s.subs[chatID] = make(map[int64]struct{})
	s.persistLocked(ctx)
}

// RemoveSubscriber deletes a subscriber. Removing an absent subscriber is a
// no-op.
func (s *SubscriberStore) RemoveSubscriber(ctx context.Context, chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subs[chatID]; !ok {
		return
	}
	delete(s.subs, chatID)
	s.persistLocked(ctx)
}

// AddService adds a catalog service to a subscriber's set. Adding a service
// already in the set has no additional effect.
func (s *SubscriberStore) AddService(ctx context.Context, chatID, serviceID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.catalog.Contains(serviceID) {
		return fmt.Errorf("service %d: %w", serviceID, ErrUnknownService)
	}
	services, ok := s.subs[chatID]
	if !ok {
		return fmt.Errorf("chat %d: %w", chatID, ErrUnknownSubscriber)
	}
	if _, ok := services[serviceID]; ok {
		return nil
	}
	services[serviceID] = struct{}{}
	s.persistLocked(ctx)
	return nil
}

// RemoveService removes a service from a subscriber's set.
func (s *SubscriberStore) RemoveService(ctx context.Context, chatID, serviceID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	services, ok := s.subs[chatID]
	if !ok {
		return fmt.Errorf("service %d: %w", serviceID, ErrNotSubscribed)
	}
	if _, ok := services[serviceID]; !ok {
		return fmt.Errorf("service %d: %w", serviceID, ErrNotSubscribed)
	}
	delete(services, serviceID)
	s.persistLocked(ctx)
	return nil
}

func (s *SubscriberStore) persistLocked(ctx context.Context) {
	if err := s.snapshot.Save(ctx, s.listLocked()); err != nil {
		s.log.Error("persist subscribers", "error", err)
	}
}

func (s *SubscriberStore) listLocked() []model.Subscriber {
	out := make([]model.Subscriber, 0, len(s.subs))
	for chatID, services := range s.subs {
		out = append(out, model.Subscriber{
			ChatID:   chatID,
			Services: sortedIDs(services),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ChatID < out[j].ChatID })
	return out
}

func sortedIDs(set map[int64]struct{}) []int64 {
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

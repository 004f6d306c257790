// Package scheduler drives the periodic poll/dispatch loop.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"burgerbot/internal/model"
)

// Checker is the interface for the slot discovery collaborator.
type Checker interface {
	CheckSlots(ctx context.Context) ([]model.Slot, error)
}

// Scheduler runs the discovery collaborator on a fixed interval and hands
// every discovered slot to the Dispatcher. A failed cycle is logged and the
// loop carries on to the next tick; nothing here terminates the process.
type Scheduler struct {
	checker    Checker
	dispatcher *Dispatcher
	log        *slog.Logger
	tick       time.Duration
}

// New creates a Scheduler with the default 30-second poll interval.
func New(checker Checker, dispatcher *Dispatcher, log *slog.Logger) *Scheduler {
	return &Scheduler{
		checker:    checker,
		dispatcher: dispatcher,
		log:        log,
		tick:       30 * time.Second,
	}
}

// SetTickInterval overrides the default poll interval.
func (s *Scheduler) SetTickInterval(d time.Duration) {
	s.tick = d
}

// Run starts the poll loop, blocking until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	s.checkOnce(ctx)

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.checkOnce(ctx)
		}
	}
}

func (s *Scheduler) checkOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	s.log.Debug("starting poll cycle")

	slots, err := s.checker.CheckSlots(ctx)
	if err != nil {
		s.log.Error("check slots", "error", err)
		return
	}

	for _, slot := range slots {
		if ctx.Err() != nil {
			return
		}
		s.dispatcher.Dispatch(ctx, slot)
	}
}

package scheduler

import (
	"context"
	"log/slog"
	"strings"

	"burgerbot/internal/bot"
	"burgerbot/internal/catalog"
	"burgerbot/internal/dedup"
	"burgerbot/internal/model"
	"burgerbot/internal/store"
)

// Sender is the interface for delivering a notification to a chat.
type Sender interface {
	Send(chatID int64, text string) error
}

// Dispatcher turns discovered slots into notifications: it deduplicates,
// resolves interested subscribers, delivers, and classifies delivery
// failures.
type Dispatcher struct {
	store   *store.SubscriberStore
	cache   *dedup.Cache
	catalog *catalog.Catalog
	sender  Sender
	log     *slog.Logger
}

// NewDispatcher wires a Dispatcher.
func NewDispatcher(st *store.SubscriberStore, cache *dedup.Cache, cat *catalog.Catalog, sender Sender, log *slog.Logger) *Dispatcher {
	return &Dispatcher{
		store:   st,
		cache:   cache,
		catalog: cat,
		sender:  sender,
		log:     log,
	}
}

// Dispatch announces one slot to every subscriber of its service, at most
// once per dedup window. The slot is marked seen before the first delivery
// attempt so a crash mid-delivery cannot repeat the announcement within the
// window after restart.
func (d *Dispatcher) Dispatch(ctx context.Context, slot model.Slot) {
	if d.cache.Seen(slot.URL) {
		d.log.Debug("slot already announced", "url", slot.URL)
		return
	}
	d.cache.MarkSeen(slot.URL)
	defer d.cache.EvictExpired()

	service, ok := d.catalog.Lookup(slot.ServiceID)
	if !ok {
		d.log.Warn("slot for unknown service", "service_id", slot.ServiceID, "url", slot.URL)
		return
	}

	text := bot.FormatNotification(service, slot.Date)

	for _, sub := range d.store.List() {
		if !subscribed(sub, slot.ServiceID) {
			continue
		}
		d.log.Debug("sending notification", "chat_id", sub.ChatID, "service_id", slot.ServiceID)

		err := d.sender.Send(sub.ChatID, text)
		switch {
		case err == nil:
		case isPermanentDelivery(err):
			d.log.Info("removing unreachable subscriber", "chat_id", sub.ChatID, "error", err)
			d.store.RemoveSubscriber(ctx, sub.ChatID)
		default:
			d.log.Warn("send notification", "chat_id", sub.ChatID, "error", err)
		}
	}
}

func subscribed(sub model.Subscriber, serviceID int64) bool {
	for _, id := range sub.Services {
		if id == serviceID {
			return true
		}
	}
	return false
}

// isPermanentDelivery reports whether the delivery channel is durably
// unreachable, per the Telegram API error texts.
func isPermanentDelivery(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "bot was blocked by the user") ||
		strings.Contains(msg, "user is deactivated")
}

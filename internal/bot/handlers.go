package bot

import (
	"context"
	"errors"
	"fmt"

	"burgerbot/internal/store"
)

func (b *Bot) handleStart(ctx context.Context, chatID int64) {
	b.store.AddSubscriber(ctx, chatID)
	b.log.Info("new subscriber", "chat_id", chatID)
	b.reply(chatID, `Welcome to BurgerBot!

Pick services with /add_service and you will be notified as soon as an appointment slot opens up.

Use /services for the catalog, /help for usage, /stop to leave.`)
}

func (b *Bot) handleStop(ctx context.Context, chatID int64) {
	b.store.RemoveSubscriber(ctx, chatID)
	b.log.Info("subscriber left", "chat_id", chatID)
	b.reply(chatID, "Thanks for using me! Bye!")
}

func (b *Bot) handleAddService(ctx context.Context, chatID int64, args string) {
	serviceID, err := ParseServiceID(args)
	if err != nil {
		b.reply(chatID, "Usage: /add_service <service_id>")
		return
	}

	err = b.store.AddService(ctx, chatID, serviceID)
	switch {
	case errors.Is(err, store.ErrUnknownService):
		b.reply(chatID, fmt.Sprintf("Unknown service id %d. Use /services for the list of available services.", serviceID))
	case errors.Is(err, store.ErrUnknownSubscriber):
		b.reply(chatID, "You are not subscribed yet. Type /start first.")
	case err != nil:
		b.reply(chatID, fmt.Sprintf("Failed to add service: %v", err))
	default:
		service, _ := b.catalog.Lookup(serviceID)
		b.reply(chatID, fmt.Sprintf("Service added: %s", service.Name))
	}
}

func (b *Bot) handleRemoveService(ctx context.Context, chatID int64, args string) {
	serviceID, err := ParseServiceID(args)
	if err != nil {
		b.reply(chatID, "Usage: /remove_service <service_id>")
		return
	}

	err = b.store.RemoveService(ctx, chatID, serviceID)
	switch {
	case errors.Is(err, store.ErrNotSubscribed):
		b.reply(chatID, fmt.Sprintf("Service %d is not on your list. Use /my_services to see your list.", serviceID))
	case err != nil:
		b.reply(chatID, fmt.Sprintf("Failed to remove service: %v", err))
	default:
		b.reply(chatID, "Service removed")
	}
}

func (b *Bot) handleMyServices(chatID int64) {
	services, ok := b.store.Services(chatID)
	if !ok {
		b.reply(chatID, "You are not subscribed yet. Type /start first.")
		return
	}
	b.reply(chatID, FormatMyServices(b.catalog, services))
}

func (b *Bot) handleServices(chatID int64) {
	b.reply(chatID, FormatCatalog(b.catalog))
}

func (b *Bot) handleHelp(chatID int64) {
	b.reply(chatID, `/start - start the bot
/stop - stop the bot
/add_service <service_id> - add service to your list
/remove_service <service_id> - remove service from your list
/my_services - view services on your list
/services - list of available services`)
}

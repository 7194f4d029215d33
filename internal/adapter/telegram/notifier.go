package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/YelzhanWeb/pancakes/internal/interfaces"
)

// Sender is the part of *tgbotapi.BotAPI the notifier uses.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier posts order events to the kitchen chat.
type Notifier struct {
	bot    Sender
	chatID int64
}

func New(token string, chatID int64) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return NewWithSender(bot, chatID), nil
}

func NewWithSender(bot Sender, chatID int64) *Notifier {
	return &Notifier{bot: bot, chatID: chatID}
}

func (n *Notifier) Notify(ctx context.Context, msg interfaces.OrderEventMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	out := tgbotapi.NewMessage(n.chatID, FormatEvent(msg))
	out.DisableWebPagePreview = true
	if _, err := n.bot.Send(out); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}

// FormatEvent renders an order event as a one-line chat message.
func FormatEvent(msg interfaces.OrderEventMessage) string {
	name := msg.Name
	if name == "" {
		name = "Guest"
	}

	switch msg.Kind {
	case interfaces.EventOrderCreated:
		return fmt.Sprintf("New order for %s: %s", name, strings.Join(msg.Options, ", "))
	case interfaces.EventStatusChanged:
		text := fmt.Sprintf("Order for %s: %s -> %s", name, msg.OldStatus, msg.NewStatus)
		if msg.ChangedBy != "" {
			text += " (by " + msg.ChangedBy + ")"
		}
		return text
	default:
		return fmt.Sprintf("Order %s updated", msg.OrderID)
	}
}

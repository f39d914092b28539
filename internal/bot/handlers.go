package bot

import (
	"errors"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/padyakph/hatidbot/internal/conversation"
	"github.com/padyakph/hatidbot/internal/telegram/keyboard"
	"github.com/padyakph/hatidbot/internal/telegram/middleware"
	"github.com/padyakph/hatidbot/internal/telegram/sender"
)

const unknownActionReply = "🤖 Unknown action."

// Inline keyboard callback keys mirroring the /book and /mybookings commands.
const (
	callbackBook       = "book"
	callbackMyBookings = "mybookings"
)

func (b *Bot) onMessage(c tele.Context) error {
	ctx := middleware.ContextFrom(c)
	reply := b.machine.HandleMessage(ctx, c.Chat().ID, c.Text())
	return b.deliver(c, reply)
}

func (b *Bot) onCallback(c tele.Context) error {
	cb := c.Callback()
	if cb == nil {
		return nil
	}
	_ = c.Respond()

	var text string
	switch callbackKey(cb) {
	case callbackBook:
		text = conversation.CmdBook
	case callbackMyBookings:
		text = conversation.CmdMyBookings
	default:
		return b.deliver(c, conversation.Reply{Text: unknownActionReply})
	}

	ctx := middleware.ContextFrom(c)
	reply := b.machine.HandleMessage(ctx, c.Chat().ID, text)
	return b.deliver(c, reply)
}

// deliver hands the reply to the async dispatcher, falling back to a
// synchronous send when the queue is unavailable.
func (b *Bot) deliver(c tele.Context, reply conversation.Reply) error {
	if reply.Text == "" {
		return nil
	}

	run := func() error {
		if reply.ShowMenu {
			return c.Send(reply.Text, &tele.SendOptions{ReplyMarkup: menuKeyboard()})
		}
		return c.Send(reply.Text)
	}

	ctx := middleware.ContextFrom(c)
	if err := b.dispatcher.Enqueue(ctx, "send.text", run); err != nil {
		if errors.Is(err, sender.ErrQueueFull) || errors.Is(err, sender.ErrQueueClosed) {
			return run()
		}
		return err
	}
	return nil
}

func menuKeyboard() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "📦 Book Delivery", Unique: callbackBook},
		{Text: "📑 My Bookings", Unique: callbackMyBookings},
	})
}

// callbackKey extracts the registered key from a callback, accepting both the
// parsed Unique field and raw "\f<key>|<payload>" data.
func callbackKey(cb *tele.Callback) string {
	if cb.Unique != "" {
		return cb.Unique
	}
	raw := strings.TrimPrefix(cb.Data, "\f")
	key, _, _ := strings.Cut(raw, "|")
	return strings.TrimSpace(key)
}

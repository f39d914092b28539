package middleware

import (
	"context"
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/padyakph/hatidbot/internal/logger"
)

const contextKey = "req_ctx"

// ContextFrom returns the request context stored by Receipt, building a new
// one when the middleware did not run.
func ContextFrom(c tele.Context) context.Context {
	if v := c.Get(contextKey); v != nil {
		if ctx, ok := v.(context.Context); ok {
			return ctx
		}
	}
	return buildContext(c)
}

// Receipt logs one line per inbound update and stores a correlation context
// for downstream handlers.
func Receipt(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		ctx := buildContext(c)
		c.Set(contextKey, ctx)

		attrs := []slog.Attr{
			slog.String("status", "ok"),
			slog.Int("update_id", logger.UpdateIDFrom(ctx)),
			slog.Int64("chat_id", logger.ChatIDFrom(ctx)),
			slog.Int64("user_id", logger.UserIDFrom(ctx)),
		}
		switch {
		case c.Callback() != nil:
			attrs = append(attrs, slog.String("payload", logger.SanitizeLimit(c.Callback().Data, 256)))
		case c.Text() != "":
			attrs = append(attrs, slog.String("payload", logger.SanitizeLimit(c.Text(), 256)))
		}
		logger.Debug(ctx, "tg", "update.received", attrs...)

		return next(c)
	}
}

func buildContext(c tele.Context) context.Context {
	var chatID, userID int64
	if chat := c.Chat(); chat != nil {
		chatID = chat.ID
	}
	if user := c.Sender(); user != nil {
		userID = user.ID
	}
	upd := c.Update()

	ctx := logger.WithRID(context.Background(), logger.BuildRID(upd.ID, chatID, userID))
	return logger.WithUpdateMeta(ctx, upd.ID, userID, chatID)
}

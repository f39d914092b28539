// Package bot wires the conversation machine to the Telegram transport.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/padyakph/hatidbot/internal/config"
	"github.com/padyakph/hatidbot/internal/conversation"
	"github.com/padyakph/hatidbot/internal/logger"
	"github.com/padyakph/hatidbot/internal/telegram"
	"github.com/padyakph/hatidbot/internal/telegram/middleware"
	"github.com/padyakph/hatidbot/internal/telegram/sender"
)

// Bot owns the telebot instance, the outbound dispatcher, and the
// conversation machine behind it.
type Bot struct {
	tb         *tele.Bot
	machine    *conversation.Machine
	dispatcher *sender.Dispatcher
	log        *slog.Logger
}

// New builds the bot from configuration and an assembled machine.
func New(cfg *config.Config, machine *conversation.Machine) (*Bot, error) {
	poller := telegram.BuildPoller(telegram.PollerOptions{
		RunMode:                cfg.Telegram.RunMode,
		LongPollTimeoutSeconds: cfg.Telegram.LongPollTimeoutSeconds,
		WebhookURL:             cfg.Webhook.URL,
		WebhookListen:          cfg.Webhook.Listen,
		WebhookPort:            cfg.Webhook.Port,
	})

	tb, err := tele.NewBot(tele.Settings{
		Token:  cfg.Telegram.Token,
		Poller: poller,
		Client: telegram.BuildHTTPClient(),
	})
	if err != nil {
		return nil, fmt.Errorf("bot initialization failed: %w", err)
	}

	b := &Bot{
		tb:         tb,
		machine:    machine,
		dispatcher: sender.NewDispatcher(sender.Options{}),
		log:        logger.Component("tg"),
	}
	b.wire(cfg)

	b.log.Info("bot ready",
		slog.String("event", "mode"),
		slog.String("mode", cfg.Telegram.RunMode),
	)
	return b, nil
}

func (b *Bot) wire(cfg *config.Config) {
	b.tb.Use(middleware.Recover, middleware.Receipt)
	if cfg.RateLimit.IntervalMS > 0 {
		exclude := make(map[string]struct{}, len(cfg.RateLimit.ExcludeUpdates))
		for _, kind := range cfg.RateLimit.ExcludeUpdates {
			exclude[kind] = struct{}{}
		}
		b.tb.Use(middleware.RateLimit(middleware.RateLimitOptions{
			Interval: time.Duration(cfg.RateLimit.IntervalMS) * time.Millisecond,
			Exclude:  exclude,
		}))
	}

	// Commands route through the machine like any other text so that the
	// transition table stays the single source of truth.
	b.tb.Handle(conversation.CmdStart, b.onMessage)
	b.tb.Handle(conversation.CmdBook, b.onMessage)
	b.tb.Handle(conversation.CmdMyBookings, b.onMessage)
	b.tb.Handle(tele.OnText, b.onMessage)
	b.tb.Handle(tele.OnCallback, b.onCallback)

	if err := b.tb.SetCommands([]tele.Command{
		{Text: "start", Description: "Show the welcome menu"},
		{Text: "book", Description: "Book a delivery"},
		{Text: "mybookings", Description: "Show your recent bookings"},
	}); err != nil {
		b.log.Warn("set commands failed",
			slog.String("event", "tg.wire"),
			slog.String("err", err.Error()),
		)
	}
}

// Run starts update processing until the context is done.
func (b *Bot) Run(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		b.tb.Start()
		close(done)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		b.tb.Stop()
		<-done
		runErr = ctx.Err()
	case <-done:
	}

	b.dispatcher.Close()

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	return nil
}

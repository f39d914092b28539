// Package app composes the bot from configuration: logger, database,
// migrations, distance resolution, and the conversation machine.
package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/padyakph/hatidbot/internal/booking"
	"github.com/padyakph/hatidbot/internal/bot"
	"github.com/padyakph/hatidbot/internal/config"
	"github.com/padyakph/hatidbot/internal/conversation"
	"github.com/padyakph/hatidbot/internal/database"
	"github.com/padyakph/hatidbot/internal/geo"
	"github.com/padyakph/hatidbot/internal/logger"
)

// App holds the composed application.
type App struct {
	Config *config.Config
	DB     *sqlx.DB
	Bot    *bot.Bot
}

// Bootstrap loads configuration, initializes infrastructure, and builds the bot.
func Bootstrap(cfgPath string) (*App, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: config load failed: %w", err)
	}

	logger.Init(cfg.Logging)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: database initialization failed: %w", err)
	}
	if err := database.RunMigrations(cfg.Database); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap: migrations failed: %w", err)
	}

	resolver := geo.NewResolver(
		geo.NewGeocoder(cfg.Routing.APIKey, cfg.Routing.BaseURL, nil),
		geo.NewDirections(cfg.Routing.APIKey, cfg.Routing.BaseURL, nil),
	)
	machine := conversation.NewMachine(
		conversation.NewStore(),
		resolver,
		booking.NewRepository(db),
	)

	b, err := bot.New(cfg, machine)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	return &App{Config: cfg, DB: db, Bot: b}, nil
}

// Close releases infrastructure owned by the app.
func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

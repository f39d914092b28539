package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/padyakph/hatidbot/internal/app"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	log.Printf("loading config: %s", cfgPath)
	application, err := app.Bootstrap(cfgPath)
	if err != nil {
		log.Fatalf("bootstrap failed: %v", err)
	}
	defer func() {
		if err := application.Close(); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := application.Bot.Run(ctx); err != nil {
		log.Fatalf("bot stopped: %v", err)
	}
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"derrclan.com/ayah-printer/internal/app"
	"derrclan.com/ayah-printer/internal/config"
	"derrclan.com/ayah-printer/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	l, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer l.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := app.Serve(ctx, cfg, l); err != nil {
		l.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}

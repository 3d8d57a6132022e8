// Package app wires configuration into the printer and the long-running
// surfaces.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"derrclan.com/ayah-printer/internal/ayah"
	"derrclan.com/ayah-printer/internal/config"
	"derrclan.com/ayah-printer/internal/delivery/telegram"
	"derrclan.com/ayah-printer/internal/email"
	"derrclan.com/ayah-printer/internal/expunger"
	"derrclan.com/ayah-printer/internal/infra/sqlite"
	"derrclan.com/ayah-printer/internal/infra/sqlite/repository"
	"derrclan.com/ayah-printer/internal/quran"
	"derrclan.com/ayah-printer/internal/server"
)

const shutdownTimeout = 10 * time.Second

// NewPrinter builds a printer reading from the configured quran.com API.
func NewPrinter(cfg *config.Config, logger *zap.Logger, opts ...ayah.Option) *ayah.Printer {
	client := quran.NewClient(quran.Options{
		BaseURL:       cfg.Quran.BaseURL,
		TranslationID: cfg.Quran.TranslationID,
		Timeout:       cfg.Quran.Timeout,
		Logger:        logger,
	})
	logger.Debug("quran client configured", zap.Int("translation_id", client.TranslationID()))

	opts = append([]ayah.Option{ayah.WithAttribution(cfg.Quran.Attribution)}, opts...)
	return ayah.NewPrinter(client, logger, opts...)
}

// Serve runs the web server, the history expunger and, when a token is
// configured, the Telegram bot until ctx is cancelled.
func Serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	db, err := sqlite.Open(cfg.DatabasePath, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	history := repository.NewHistoryRepository(db)
	journal := repository.NewJournalRepository(db)

	expunged := expunger.Start(ctx, db, expunger.Policy{
		MaxAge:     cfg.History.MaxAge,
		MaxEntries: cfg.History.MaxEntries,
		Every:      cfg.History.ExpungeEvery,
	}, logger)

	printer := NewPrinter(cfg, logger, ayah.WithHistory(history))

	var mailer server.Mailer
	if sender, err := email.NewSender(cfg.Mailgun, logger); err == nil {
		mailer = sender
	} else {
		logger.Info("e-mail sharing disabled", zap.Error(err))
	}

	srv, err := server.New(printer, history, journal, mailer, logger)
	if err != nil {
		return err
	}

	botDone := make(chan struct{})
	if cfg.TelegramAPIToken != "" {
		bot, err := startBot(ctx, cfg.TelegramAPIToken, printer, logger, botDone)
		if err != nil {
			return err
		}
		defer bot.StopReceivingUpdates()
	} else {
		logger.Info("telegram bot disabled")
		close(botDone)
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Muxer(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err = <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server died", zap.Error(err))
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if shutdownErr := httpServer.Shutdown(shutdownCtx); shutdownErr != nil {
		logger.Error("error shutting down http server", zap.Error(shutdownErr))
	}

	cancel()
	<-expunged
	<-botDone

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func startBot(ctx context.Context, token string, printer telegram.Printer, logger *zap.Logger, done chan<- struct{}) (*tgbotapi.BotAPI, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		close(done)
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	if _, err := bot.Request(tgbotapi.NewSetMyCommands(telegram.Commands...)); err != nil {
		logger.Warn("failed to set bot commands", zap.Error(err))
	}
	logger.Info("authorized on telegram", zap.String("account", bot.Self.UserName))

	handler := telegram.NewHandler(bot, logger, printer)
	go func() {
		defer close(done)
		if err := handler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("telegram handler stopped", zap.Error(err))
		}
	}()

	return bot, nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dohun0310/Discord-Music-Bot/internal/config"
	"github.com/dohun0310/Discord-Music-Bot/internal/discord"
	"github.com/dohun0310/Discord-Music-Bot/internal/logging"
	"github.com/dohun0310/Discord-Music-Bot/internal/music/ytclient"
	"github.com/dohun0310/Discord-Music-Bot/internal/storage"
	v "github.com/dohun0310/Discord-Music-Bot/internal/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFile)
	logger.Info().Str("version", v.AppVersion).Msgf("starting %s", v.AppName)

	if cfg.YTProxy != "" {
		if err := ytclient.Configure(cfg.YTProxy); err != nil {
			return fmt.Errorf("proxy error: %w", err)
		}
		logger.Info().Str("proxy", cfg.YTProxy).Msg("routing YouTube traffic through proxy")
	}

	store, err := storage.New(cfg.StoragePath)
	if err != nil {
		return fmt.Errorf("storage error: %w", err)
	}
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- discord.StartBot(ctx, cfg, store, logger)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		logger.Info().Str("signal", s.String()).Msg("shutting down")
		cancel()
		<-errCh
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("discord bot error: %w", err)
		}
	}

	logger.Info().Msg("bot exited cleanly")
	return nil
}

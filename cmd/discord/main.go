// cmd/discord/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "guild-warden/internal/command/core"
	_ "guild-warden/internal/command/mod"

	"guild-warden/internal/config"
	"guild-warden/internal/discord"
	"guild-warden/internal/logging"
	"guild-warden/internal/storage"
	v "guild-warden/internal/version"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logging.New(cfg.LogLevel, cfg.LogPath)
	log.Info().Str("version", v.Version).Msgf("Starting %s", v.AppName)

	store, err := storage.New(cfg.StoragePath, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open storage")
	}
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- discord.StartBot(ctx, cfg, store, log)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Info().Str("signal", s.String()).Msg("Shutting down")
		cancel()
		<-errCh
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("Discord bot error")
		}
		cancel()
	}

	log.Info().Msg("Discord bot exited cleanly")
}

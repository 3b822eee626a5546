package discord

import (
	"context"
	"fmt"
	"sync"

	"guild-warden/internal/command"
	"guild-warden/internal/config"
	"guild-warden/internal/mute"
	"guild-warden/internal/storage"
	"guild-warden/pkg/jobmgr"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// Bot is the Discord shell: session, slash command sync, interaction dispatch,
// and the background jobs that keep persisted mutes honest.
type Bot struct {
	dg        *discordgo.Session
	cfg       *config.Config
	store     *storage.Storage
	mutes     *mute.Service
	jobs      *jobmgr.Manager
	cooldowns *command.CooldownTracker
	log       zerolog.Logger

	mu     sync.Mutex
	synced map[string]string // guildID -> hash of registered definitions
}

// StartBot runs the bot until ctx is cancelled.
func StartBot(ctx context.Context, cfg *config.Config, store *storage.Storage, log zerolog.Logger) error {
	b := &Bot{
		cfg:       cfg,
		store:     store,
		jobs:      jobmgr.New(log),
		cooldowns: command.NewCooldownTracker(),
		log:       log.With().Str("component", "discord").Logger(),
		synced:    make(map[string]string),
	}
	if err := b.run(ctx); err != nil {
		return fmt.Errorf("bot run error: %w", err)
	}
	return nil
}

func (b *Bot) run(ctx context.Context) error {
	dg, err := discordgo.New("Bot " + b.cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	b.dg = dg

	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers
	b.mutes = mute.NewService(b.store, newSessionGateway(dg), b.log)

	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onGuildCreate)
	dg.AddHandler(b.onInteractionCreate)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer dg.Close()

	sweeper := mute.NewSweeper(b.mutes, b.cfg.SweepInterval, b.log)
	if err := b.jobs.Start(ctx, "mute-sweeper", sweeper.Run); err != nil {
		return err
	}
	go command.RunCooldownCleaner(ctx, b.cooldowns, b.log)

	<-ctx.Done()
	b.log.Info().Msg("Shutdown signal received, stopping background jobs")
	b.jobs.StopAll()
	return nil
}

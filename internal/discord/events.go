package discord

import (
	"github.com/bwmarrin/discordgo"
)

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.log.Info().Str("user", r.User.Username).Int("guilds", len(r.Guilds)).Msg("Connected to Discord")

	if err := s.UpdateGameStatus(0, "/help"); err != nil {
		b.log.Warn().Err(err).Msg("Failed to set status")
	}
}

func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	go b.registerCommands(g.ID)
}

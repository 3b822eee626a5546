package discord

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"

	"guild-warden/internal/command"
	"guild-warden/internal/lang"

	"github.com/bwmarrin/discordgo"
)

// registerCommands syncs slash commands for a guild. Definitions are hashed
// so repeated guild-create events skip the bulk overwrite when nothing
// changed.
func (b *Bot) registerCommands(guildID string) {
	defs := buildCommandDefinitions()
	hash := hashDefinitions(defs)

	b.mu.Lock()
	unchanged := b.synced[guildID] == hash
	b.mu.Unlock()
	if unchanged {
		return
	}

	appID := b.dg.State.User.ID
	if _, err := b.dg.ApplicationCommandBulkOverwrite(appID, guildID, defs); err != nil {
		b.log.Error().Err(err).Str("guild_id", guildID).Msg("Failed to register slash commands")
		return
	}

	b.mu.Lock()
	b.synced[guildID] = hash
	b.mu.Unlock()
	b.log.Info().Str("guild_id", guildID).Int("commands", len(defs)).Msg("Slash commands registered")
}

// buildCommandDefinitions turns the registry into ApplicationCommand
// definitions, attaching localized descriptions where a catalog entry exists.
func buildCommandDefinitions() []*discordgo.ApplicationCommand {
	var defs []*discordgo.ApplicationCommand
	for _, c := range command.All() {
		def := &discordgo.ApplicationCommand{
			Name:        c.Name,
			Description: c.Description,
			Options:     c.SlashOptions,
		}

		key := c.Name + ".description"
		if tr := lang.T(key, "tr", nil); tr != key {
			def.DescriptionLocalizations = &map[discordgo.Locale]string{
				discordgo.Turkish: tr,
			}
		}

		if c.RequirePermission != 0 {
			perms := c.RequirePermission
			def.DefaultMemberPermissions = &perms
		}

		defs = append(defs, def)
	}
	return defs
}

func hashDefinitions(defs []*discordgo.ApplicationCommand) string {
	data, _ := json.Marshal(defs)
	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:])
}

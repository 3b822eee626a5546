package discord

import (
	"strconv"
	"strings"
	"time"

	"guild-warden/internal/command"
	"guild-warden/internal/lang"

	"github.com/bwmarrin/discordgo"
)

// onInteractionCreate routes slash invocations through the command gates
// (guild-only, permission, cooldown) and into the registered handler.
func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name
	cmd, ok := command.Get(name)
	if !ok {
		return
	}

	ctx := &command.SlashContext{
		Session: s,
		Event:   i,
		Mutes:   b.mutes,
		Log:     b.log.With().Str("command", name).Logger(),
		Locale:  resolveLocale(i, b.cfg.DefaultLocale),
	}

	if cmd.GuildOnly && i.GuildID == "" {
		_ = ctx.ReplyEphemeral(ctx.T("common.guild_only", nil))
		return
	}

	if cmd.RequirePermission != 0 {
		if i.Member == nil || i.Member.Permissions&cmd.RequirePermission == 0 {
			_ = ctx.ReplyEphemeral(ctx.T("common.no_permission", nil))
			return
		}
	}

	if cmd.Cooldown > 0 {
		if remaining, ok := b.cooldowns.Check(invokerID(i), name, cmd.Cooldown, time.Now()); !ok {
			seconds := int(remaining.Seconds()) + 1
			_ = ctx.ReplyEphemeral(ctx.T("common.cooldown", map[string]string{
				"seconds": strconv.Itoa(seconds),
			}))
			return
		}
	}

	b.log.Info().Str("command", name).Str("guild_id", i.GuildID).
		Str("user_id", invokerID(i)).Msg("Command invoked")
	cmd.SlashHandler(ctx)
}

func invokerID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

// resolveLocale maps the interaction locale ("tr", "en-US", ...) onto a
// loaded catalog. Unrecognized locales fall back to the configured default,
// then to English.
func resolveLocale(i *discordgo.InteractionCreate, fallback string) string {
	locale := string(i.Locale)
	if idx := strings.Index(locale, "-"); idx > 0 {
		locale = locale[:idx]
	}
	if lang.Supported(locale) {
		return locale
	}
	if lang.Supported(fallback) {
		return fallback
	}
	return lang.DefaultLocale
}

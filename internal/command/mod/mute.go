// /internal/command/mod/mute.go
package mod

import (
	"errors"
	"fmt"
	"time"

	"guild-warden/internal/command"
	"guild-warden/internal/duration"
	"guild-warden/internal/mute"

	"github.com/bwmarrin/discordgo"
)

const (
	muteEmbedColor   = 0xFF0000
	unmuteEmbedColor = 0x00FF00
)

func init() {
	command.Register(&command.Command{
		Sort:              100,
		Name:              "mute",
		Description:       "Mute a member, optionally for a limited time",
		Category:          "Moderation",
		GuildOnly:         true,
		Cooldown:          command.DefaultCooldown,
		RequirePermission: discordgo.PermissionModerateMembers,
		SlashOptions: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "The user to mute",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "duration",
				Description: "Duration of the mute (e.g. 1h, 30m, 1d)",
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "reason",
				Description: "Reason for the mute",
			},
		},
		SlashHandler: muteSlashHandler,
	})
}

func muteSlashHandler(ctx *command.SlashContext) {
	target := ctx.UserOption("user")
	if target == nil || ctx.MemberOption("user") == nil {
		_ = ctx.ReplyEphemeral(ctx.T("userinfo.user_not_found", nil))
		return
	}

	reason := ctx.StringOption("reason")
	if reason == "" {
		reason = ctx.T("mute.no_reason", nil)
	}

	rec, err := ctx.Mutes.CreateMute(mute.CreateRequest{
		GuildID:      ctx.Event.GuildID,
		ModeratorID:  ctx.Event.Member.User.ID,
		Target:       target,
		DurationText: ctx.StringOption("duration"),
		Reason:       reason,
	})
	if err != nil {
		_ = ctx.ReplyEphemeral(muteRejectionText(ctx, err))
		return
	}

	embed := &discordgo.MessageEmbed{
		Color:     muteEmbedColor,
		Title:     ctx.T("mute.notification_title", nil),
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: target.AvatarURL("")},
		Fields: []*discordgo.MessageEmbedField{
			{Name: ctx.T("mute.muted_by", nil), Value: fmt.Sprintf("<@%s>", rec.ModeratorID), Inline: true},
			{Name: ctx.T("mute.muted_user", nil), Value: fmt.Sprintf("<@%s>", rec.UserID), Inline: true},
			{Name: ctx.T("mute.reason", nil), Value: rec.Reason},
		},
		Footer:    &discordgo.MessageEmbedFooter{Text: ctx.T("mute.footer", map[string]string{"userId": rec.UserID})},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if rec.Duration > 0 {
		embed.Fields = append(embed.Fields,
			&discordgo.MessageEmbedField{
				Name:   ctx.T("mute.duration", nil),
				Value:  duration.Format(rec.Duration, ctx.Locale),
				Inline: true,
			},
			&discordgo.MessageEmbedField{
				Name:   ctx.T("mute.expires", nil),
				Value:  fmt.Sprintf("<t:%d:R>", rec.ExpiresAt.Unix()),
				Inline: true,
			},
		)
	} else {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   ctx.T("mute.duration", nil),
			Value:  ctx.T("mute.permanent", nil),
			Inline: true,
		})
	}

	if err := ctx.ReplyEmbed(embed); err != nil {
		ctx.Log.Error().Err(err).Msg("Failed to send mute response")
	}
}

func muteRejectionText(ctx *command.SlashContext, err error) string {
	switch {
	case errors.Is(err, mute.ErrSelfMute):
		return ctx.T("mute.cannot_mute_self", nil)
	case errors.Is(err, mute.ErrBotTarget):
		return ctx.T("mute.cannot_mute_bot", nil)
	case errors.Is(err, mute.ErrAdminTarget):
		return ctx.T("mute.cannot_mute_admin", nil)
	case errors.Is(err, mute.ErrAlreadyMuted):
		return ctx.T("mute.already_muted", nil)
	case errors.Is(err, mute.ErrInvalidDuration):
		return ctx.T("mute.duration_invalid", nil)
	default:
		ctx.Log.Error().Err(err).Str("guild_id", ctx.Event.GuildID).Msg("Mute command failed")
		return ctx.T("mute.error", nil)
	}
}

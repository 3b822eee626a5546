// /internal/command/mod/unmute.go
package mod

import (
	"errors"
	"fmt"
	"time"

	"guild-warden/internal/command"
	"guild-warden/internal/mute"

	"github.com/bwmarrin/discordgo"
)

func init() {
	command.Register(&command.Command{
		Sort:              110,
		Name:              "unmute",
		Description:       "Lift an active mute from a member",
		Category:          "Moderation",
		GuildOnly:         true,
		Cooldown:          command.DefaultCooldown,
		RequirePermission: discordgo.PermissionModerateMembers,
		SlashOptions: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "The user to unmute",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "reason",
				Description: "Reason for the unmute",
			},
		},
		SlashHandler: unmuteSlashHandler,
	})
}

func unmuteSlashHandler(ctx *command.SlashContext) {
	target := ctx.UserOption("user")
	if target == nil || ctx.MemberOption("user") == nil {
		_ = ctx.ReplyEphemeral(ctx.T("userinfo.user_not_found", nil))
		return
	}

	reason := ctx.StringOption("reason")
	if reason == "" {
		reason = ctx.T("unmute.no_reason", nil)
	}

	rec, err := ctx.Mutes.ClearMute(ctx.Event.GuildID, ctx.Event.Member.User.ID, target.ID, reason)
	if err != nil {
		switch {
		case errors.Is(err, mute.ErrNotMuted):
			_ = ctx.ReplyEphemeral(ctx.T("unmute.not_muted", nil))
		default:
			ctx.Log.Error().Err(err).Str("guild_id", ctx.Event.GuildID).Msg("Unmute command failed")
			_ = ctx.ReplyEphemeral(ctx.T("unmute.error", nil))
		}
		return
	}

	embed := &discordgo.MessageEmbed{
		Color:     unmuteEmbedColor,
		Title:     ctx.T("unmute.notification_title", nil),
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: target.AvatarURL("")},
		Fields: []*discordgo.MessageEmbedField{
			{Name: ctx.T("unmute.unmuted_by", nil), Value: fmt.Sprintf("<@%s>", ctx.Event.Member.User.ID), Inline: true},
			{Name: ctx.T("unmute.unmuted_user", nil), Value: fmt.Sprintf("<@%s>", rec.UserID), Inline: true},
			{Name: ctx.T("unmute.reason", nil), Value: reason},
		},
		Footer:    &discordgo.MessageEmbedFooter{Text: ctx.T("unmute.footer", map[string]string{"userId": rec.UserID})},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if err := ctx.ReplyEmbed(embed); err != nil {
		ctx.Log.Error().Err(err).Msg("Failed to send unmute response")
	}
}

// /internal/command/core/userinfo.go
package core

import (
	"fmt"
	"strings"
	"time"

	"guild-warden/internal/command"

	"github.com/bwmarrin/discordgo"
)

const embedColor = 0x5865F2

func init() {
	command.Register(&command.Command{
		Sort:        200,
		Name:        "userinfo",
		Description: "Show information about a member",
		Category:    "Info",
		GuildOnly:   true,
		Cooldown:    command.DefaultCooldown,
		SlashOptions: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "The user to inspect (defaults to you)",
			},
		},
		SlashHandler: userinfoSlashHandler,
	})
}

func userinfoSlashHandler(ctx *command.SlashContext) {
	target := ctx.UserOption("user")
	if target == nil {
		target = ctx.Event.Member.User
	}

	member, err := ctx.Session.GuildMember(ctx.Event.GuildID, target.ID)
	if err != nil {
		_ = ctx.ReplyEphemeral(ctx.T("userinfo.user_not_found", nil))
		return
	}

	created, _ := discordgo.SnowflakeTimestamp(target.ID)

	roles := ctx.T("userinfo.none", nil)
	if len(member.Roles) > 0 {
		mentions := make([]string, 0, len(member.Roles))
		for _, roleID := range member.Roles {
			mentions = append(mentions, fmt.Sprintf("<@&%s>", roleID))
		}
		roles = strings.Join(mentions, " ")
	}

	embed := &discordgo.MessageEmbed{
		Color:     embedColor,
		Title:     ctx.T("userinfo.title", nil),
		Author:    &discordgo.MessageEmbedAuthor{Name: target.Username, IconURL: target.AvatarURL("")},
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: target.AvatarURL("256")},
		Fields: []*discordgo.MessageEmbedField{
			{Name: ctx.T("userinfo.id", nil), Value: target.ID, Inline: true},
			{Name: ctx.T("userinfo.created", nil), Value: fmt.Sprintf("<t:%d:F>", created.Unix()), Inline: true},
			{Name: ctx.T("userinfo.joined", nil), Value: fmt.Sprintf("<t:%d:F>", member.JoinedAt.Unix()), Inline: true},
			{Name: ctx.T("userinfo.roles", nil), Value: roles},
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if err := ctx.ReplyEmbed(embed); err != nil {
		ctx.Log.Error().Err(err).Msg("Failed to send userinfo response")
	}
}

// /internal/command/core/info.go
package core

import (
	"fmt"
	"runtime"
	"time"

	"guild-warden/internal/command"
	v "guild-warden/internal/version"

	"github.com/bwmarrin/discordgo"
)

var startedAt = time.Now()

func init() {
	command.Register(&command.Command{
		Sort:         210,
		Name:         "info",
		Description:  "Show information about the bot",
		Category:     "Info",
		Cooldown:     command.DefaultCooldown,
		SlashHandler: infoSlashHandler,
	})
}

func infoSlashHandler(ctx *command.SlashContext) {
	uptime := time.Since(startedAt).Round(time.Second)

	embed := &discordgo.MessageEmbed{
		Color: embedColor,
		Title: ctx.T("info.title", nil),
		Author: &discordgo.MessageEmbedAuthor{
			Name:    v.AppName,
			IconURL: ctx.Session.State.User.AvatarURL(""),
		},
		Fields: []*discordgo.MessageEmbedField{
			{Name: ctx.T("info.version", nil), Value: v.Version, Inline: true},
			{Name: ctx.T("info.servers", nil), Value: fmt.Sprintf("%d", len(ctx.Session.State.Guilds)), Inline: true},
			{Name: ctx.T("info.uptime", nil), Value: uptime.String(), Inline: true},
			{Name: ctx.T("info.go_version", nil), Value: runtime.Version(), Inline: true},
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if err := ctx.ReplyEmbed(embed); err != nil {
		ctx.Log.Error().Err(err).Msg("Failed to send info response")
	}
}

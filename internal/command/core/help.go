// /internal/command/core/help.go
package core

import (
	"fmt"
	"strings"

	"guild-warden/internal/command"

	"github.com/bwmarrin/discordgo"
)

func init() {
	command.Register(&command.Command{
		Sort:         220,
		Name:         "help",
		Description:  "List available commands",
		Category:     "Info",
		Cooldown:     command.DefaultCooldown,
		SlashHandler: helpSlashHandler,
	})
}

func helpSlashHandler(ctx *command.SlashContext) {
	var b strings.Builder
	category := ""
	for _, cmd := range command.All() {
		if cmd.Category != category {
			category = cmd.Category
			fmt.Fprintf(&b, "\n**%s**\n", category)
		}
		desc := ctx.T(cmd.Name+".description", nil)
		if desc == cmd.Name+".description" {
			desc = cmd.Description
		}
		fmt.Fprintf(&b, "`/%s` - %s\n", cmd.Name, desc)
	}

	embed := &discordgo.MessageEmbed{
		Color:       embedColor,
		Title:       ctx.T("help.title", nil),
		Description: b.String(),
	}

	if err := ctx.ReplyEmbedEphemeral(embed); err != nil {
		ctx.Log.Error().Err(err).Msg("Failed to send help response")
	}
}

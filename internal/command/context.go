package command

import (
	"guild-warden/internal/lang"
	"guild-warden/internal/mute"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// SlashContext is handed to slash handlers: the interaction, the resolved
// locale, and the services a moderation command can touch.
type SlashContext struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
	Mutes   *mute.Service
	Log     zerolog.Logger
	Locale  string
}

// T resolves a translation key in the invoker's locale.
func (c *SlashContext) T(key string, vars map[string]string) string {
	return lang.T(key, c.Locale, vars)
}

// Option returns the named top-level option, or nil.
func (c *SlashContext) Option(name string) *discordgo.ApplicationCommandInteractionDataOption {
	for _, opt := range c.Event.ApplicationCommandData().Options {
		if opt.Name == name {
			return opt
		}
	}
	return nil
}

// StringOption returns the named string option, or "".
func (c *SlashContext) StringOption(name string) string {
	if opt := c.Option(name); opt != nil && opt.Type == discordgo.ApplicationCommandOptionString {
		return opt.StringValue()
	}
	return ""
}

// UserOption returns the named user option resolved to a User, or nil.
func (c *SlashContext) UserOption(name string) *discordgo.User {
	if opt := c.Option(name); opt != nil && opt.Type == discordgo.ApplicationCommandOptionUser {
		return opt.UserValue(c.Session)
	}
	return nil
}

// MemberOption returns the guild member resolved for the named user option.
// Discord only populates resolved members for users that belong to the guild,
// so a nil result means the targeted user is not a member.
func (c *SlashContext) MemberOption(name string) *discordgo.Member {
	opt := c.Option(name)
	if opt == nil || opt.Type != discordgo.ApplicationCommandOptionUser {
		return nil
	}
	id, ok := opt.Value.(string)
	if !ok {
		return nil
	}
	resolved := c.Event.ApplicationCommandData().Resolved
	if resolved == nil {
		return nil
	}
	return resolved.Members[id]
}

// Reply sends a public message response.
func (c *SlashContext) Reply(content string) error {
	return c.Session.InteractionRespond(c.Event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	})
}

// ReplyEphemeral sends a message only the invoker can see.
func (c *SlashContext) ReplyEphemeral(content string) error {
	return c.Session.InteractionRespond(c.Event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// ReplyEmbed sends a public embed response.
func (c *SlashContext) ReplyEmbed(embed *discordgo.MessageEmbed) error {
	return c.Session.InteractionRespond(c.Event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{embed}},
	})
}

// ReplyEmbedEphemeral sends an embed only the invoker can see.
func (c *SlashContext) ReplyEmbedEphemeral(embed *discordgo.MessageEmbed) error {
	return c.Session.InteractionRespond(c.Event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags:  discordgo.MessageFlagsEphemeral,
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}

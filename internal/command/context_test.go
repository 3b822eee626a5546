package command

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slashContext(data discordgo.ApplicationCommandInteractionData) *SlashContext {
	return &SlashContext{
		Event: &discordgo.InteractionCreate{
			Interaction: &discordgo.Interaction{
				Type: discordgo.InteractionApplicationCommand,
				Data: data,
			},
		},
	}
}

func userOption(name, id string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionUser,
		Value: id,
	}
}

func TestMemberOption(t *testing.T) {
	ctx := slashContext(discordgo.ApplicationCommandInteractionData{
		Name:    "mute",
		Options: []*discordgo.ApplicationCommandInteractionDataOption{userOption("user", "u1")},
		Resolved: &discordgo.ApplicationCommandInteractionDataResolved{
			Users:   map[string]*discordgo.User{"u1": {ID: "u1"}},
			Members: map[string]*discordgo.Member{"u1": {Nick: "someone"}},
		},
	})

	member := ctx.MemberOption("user")
	require.NotNil(t, member)
	assert.Equal(t, "someone", member.Nick)
}

func TestMemberOptionNotInGuild(t *testing.T) {
	// Discord resolves the user but omits the member entry when the target
	// does not belong to the guild.
	ctx := slashContext(discordgo.ApplicationCommandInteractionData{
		Name:    "mute",
		Options: []*discordgo.ApplicationCommandInteractionDataOption{userOption("user", "u1")},
		Resolved: &discordgo.ApplicationCommandInteractionDataResolved{
			Users: map[string]*discordgo.User{"u1": {ID: "u1"}},
		},
	})

	assert.Nil(t, ctx.MemberOption("user"))
}

func TestMemberOptionNoResolvedData(t *testing.T) {
	ctx := slashContext(discordgo.ApplicationCommandInteractionData{
		Name:    "mute",
		Options: []*discordgo.ApplicationCommandInteractionDataOption{userOption("user", "u1")},
	})

	assert.Nil(t, ctx.MemberOption("user"))
	assert.Nil(t, ctx.MemberOption("missing"))
}

func TestStringOption(t *testing.T) {
	ctx := slashContext(discordgo.ApplicationCommandInteractionData{
		Name: "mute",
		Options: []*discordgo.ApplicationCommandInteractionDataOption{
			{Name: "duration", Type: discordgo.ApplicationCommandOptionString, Value: "10m"},
		},
	})

	assert.Equal(t, "10m", ctx.StringOption("duration"))
	assert.Empty(t, ctx.StringOption("reason"))
}

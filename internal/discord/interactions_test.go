package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func TestResolveLocale(t *testing.T) {
	cases := []struct {
		name     string
		locale   discordgo.Locale
		fallback string
		want     string
	}{
		{"direct match", discordgo.Turkish, "en", "tr"},
		{"region stripped", discordgo.EnglishUS, "tr", "en"},
		{"unsupported uses configured fallback", discordgo.German, "tr", "tr"},
		{"unsupported fallback lands on english", discordgo.German, "xx", "en"},
		{"empty locale uses configured fallback", discordgo.Locale(""), "tr", "tr"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			i := &discordgo.InteractionCreate{
				Interaction: &discordgo.Interaction{Locale: tc.locale},
			}
			assert.Equal(t, tc.want, resolveLocale(i, tc.fallback))
		})
	}
}

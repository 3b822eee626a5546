package discord

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
)

// sessionGateway adapts the Discord session to the mute.Gateway contract.
// Lookups prefer the gateway state cache and fall back to REST.
type sessionGateway struct {
	dg  *discordgo.Session
	lim *adaptiveLimiter
}

func newSessionGateway(dg *discordgo.Session) *sessionGateway {
	return &sessionGateway{dg: dg, lim: newAdaptiveLimiter(5, 1, 20)}
}

func (g *sessionGateway) Guild(guildID string) (*discordgo.Guild, error) {
	if guild, err := g.dg.State.Guild(guildID); err == nil {
		return guild, nil
	}
	return g.dg.Guild(guildID)
}

func (g *sessionGateway) Member(guildID, userID string) (*discordgo.Member, error) {
	if member, err := g.dg.State.Member(guildID, userID); err == nil {
		return member, nil
	}
	return g.dg.GuildMember(guildID, userID)
}

// Timeout sets or clears (nil until) the member's timeout, retrying through
// the limiter. Callers treat failures as best-effort.
func (g *sessionGateway) Timeout(guildID, userID string, until *time.Time, reason string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return withRetry(ctx, g.lim, func() error {
		return g.dg.GuildMemberTimeout(guildID, userID, until, discordgo.WithAuditLogReason(reason))
	})
}

// HasPermission folds the member's role permissions at guild level. The guild
// owner and administrators implicitly hold every permission.
func (g *sessionGateway) HasPermission(guildID, userID string, permission int64) (bool, error) {
	guild, err := g.Guild(guildID)
	if err != nil {
		return false, err
	}
	if guild.OwnerID == userID {
		return true, nil
	}

	member, err := g.Member(guildID, userID)
	if err != nil {
		return false, err
	}

	rolePerms := make(map[string]int64, len(guild.Roles))
	for _, role := range guild.Roles {
		rolePerms[role.ID] = role.Permissions
	}

	perms := rolePerms[guildID] // @everyone role shares the guild's ID
	for _, roleID := range member.Roles {
		perms |= rolePerms[roleID]
	}

	if perms&discordgo.PermissionAdministrator != 0 {
		return true, nil
	}
	return perms&permission == permission, nil
}

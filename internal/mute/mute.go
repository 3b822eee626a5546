// Package mute holds the mute lifecycle: creating and clearing mutes against
// the record store, and sweeping expired ones back in line with the live
// guild's timeout state. The persisted record is the source of truth; timeout
// calls against Discord are best-effort and never abort a transition.
package mute

import (
	"errors"
	"time"

	"guild-warden/internal/duration"
	"guild-warden/internal/storage"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// MaxTimeout is Discord's hard ceiling on member timeouts. Mutes longer than
// this are enforced by the expiry sweep alone.
const MaxTimeout = 28 * 24 * time.Hour

// DefaultReason is the stored sentinel when no reason is given. Command
// handlers pass a localized reason instead.
const DefaultReason = "No reason provided"

// expiredReason goes into the guild audit log when the sweep lifts a timeout.
const expiredReason = "Mute duration expired"

// Validation rejections. Surfaced to the caller, never logged as errors.
var (
	ErrSelfMute        = errors.New("cannot mute yourself")
	ErrBotTarget       = errors.New("cannot mute a bot")
	ErrAdminTarget     = errors.New("cannot mute an administrator")
	ErrAlreadyMuted    = errors.New("user is already muted")
	ErrNotMuted        = errors.New("user is not muted")
	ErrInvalidDuration = errors.New("invalid mute duration")
)

// Store is the persistence contract, satisfied by *storage.Storage.
type Store interface {
	FindActive(userID, guildID string) (*storage.MuteRecord, error)
	FindExpiredActive(now time.Time) ([]storage.MuteRecord, error)
	InsertActive(rec storage.MuteRecord) (*storage.MuteRecord, error)
	Save(rec *storage.MuteRecord) error
}

// Gateway is the live-guild contract: resolution, timeouts, permission checks.
// Implemented over the Discord session by internal/discord.
type Gateway interface {
	Guild(guildID string) (*discordgo.Guild, error)
	Member(guildID, userID string) (*discordgo.Member, error)
	// Timeout sets the member's timeout expiry; a nil until clears it.
	Timeout(guildID, userID string, until *time.Time, reason string) error
	HasPermission(guildID, userID string, permission int64) (bool, error)
}

// Service runs the mute state machine.
type Service struct {
	store Store
	gw    Gateway
	log   zerolog.Logger
	now   func() time.Time
}

func NewService(store Store, gw Gateway, log zerolog.Logger) *Service {
	return &Service{
		store: store,
		gw:    gw,
		log:   log.With().Str("component", "mute").Logger(),
		now:   time.Now,
	}
}

// CreateRequest carries the inputs of a moderator-issued mute.
type CreateRequest struct {
	GuildID      string
	ModeratorID  string
	Target       *discordgo.User
	DurationText string // empty = permanent
	Reason       string // empty = DefaultReason
}

// CreateMute validates the request, applies a live timeout where Discord
// allows one, and persists a new active record.
func (s *Service) CreateMute(req CreateRequest) (*storage.MuteRecord, error) {
	if req.Target.ID == req.ModeratorID {
		return nil, ErrSelfMute
	}
	if req.Target.Bot {
		return nil, ErrBotTarget
	}

	admin, err := s.gw.HasPermission(req.GuildID, req.Target.ID, discordgo.PermissionAdministrator)
	if err != nil {
		s.log.Debug().Err(err).Str("guild_id", req.GuildID).Str("user_id", req.Target.ID).
			Msg("Could not resolve target permissions")
	} else if admin {
		return nil, ErrAdminTarget
	}

	var durationMs int64
	if req.DurationText != "" {
		durationMs, err = duration.Parse(req.DurationText)
		if err != nil {
			return nil, ErrInvalidDuration
		}
	}

	existing, err := s.store.FindActive(req.Target.ID, req.GuildID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyMuted
	}

	reason := req.Reason
	if reason == "" {
		reason = DefaultReason
	}

	mutedAt := s.now().UTC()
	var expiresAt *time.Time
	if durationMs > 0 {
		t := mutedAt.Add(time.Duration(durationMs) * time.Millisecond)
		expiresAt = &t
	}

	// Discord refuses timeouts beyond 28 days; longer mutes are enforced by
	// the sweep only. A failed call does not abort the mute.
	if durationMs > 0 && time.Duration(durationMs)*time.Millisecond <= MaxTimeout {
		if err := s.gw.Timeout(req.GuildID, req.Target.ID, expiresAt, reason); err != nil {
			s.log.Warn().Err(err).Str("guild_id", req.GuildID).Str("user_id", req.Target.ID).
				Msg("Failed to apply timeout, mute recorded anyway")
		}
	}

	rec, err := s.store.InsertActive(storage.MuteRecord{
		UserID:      req.Target.ID,
		GuildID:     req.GuildID,
		ModeratorID: req.ModeratorID,
		Reason:      reason,
		MutedAt:     mutedAt,
		Duration:    durationMs,
		ExpiresAt:   expiresAt,
	})
	if err != nil {
		if errors.Is(err, storage.ErrActiveMuteExists) {
			return nil, ErrAlreadyMuted
		}
		return nil, err
	}

	s.log.Info().Str("guild_id", req.GuildID).Str("user_id", req.Target.ID).
		Str("moderator_id", req.ModeratorID).Int64("duration_ms", durationMs).
		Msg("Mute created")
	return rec, nil
}

// ClearMute lifts an active mute: removes the live timeout if one is showing,
// then marks the record inactive.
func (s *Service) ClearMute(guildID, moderatorID, targetID, reason string) (*storage.MuteRecord, error) {
	rec, err := s.store.FindActive(targetID, guildID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotMuted
	}

	if reason == "" {
		reason = DefaultReason
	}

	member, err := s.gw.Member(guildID, targetID)
	if err != nil {
		s.log.Debug().Err(err).Str("guild_id", guildID).Str("user_id", targetID).
			Msg("Could not resolve member during unmute")
	} else if timedOut(member, s.now()) {
		if err := s.gw.Timeout(guildID, targetID, nil, reason); err != nil {
			s.log.Warn().Err(err).Str("guild_id", guildID).Str("user_id", targetID).
				Msg("Failed to clear timeout, unmute recorded anyway")
		}
	}

	rec.Active = false
	if err := s.store.Save(rec); err != nil {
		return nil, err
	}

	s.log.Info().Str("guild_id", guildID).Str("user_id", targetID).
		Str("moderator_id", moderatorID).Msg("Mute cleared")
	return rec, nil
}

// SweepExpired deactivates every active record whose expiry has passed,
// clearing live timeouts where the member still shows one. Each record is
// handled independently; one failure never aborts the rest. Returns the
// number of records visited.
func (s *Service) SweepExpired(now time.Time) (int, error) {
	expired, err := s.store.FindExpiredActive(now)
	if err != nil {
		return 0, err
	}

	for i := range expired {
		rec := &expired[i]

		guild, err := s.gw.Guild(rec.GuildID)
		if err != nil || guild == nil {
			// Bot likely removed from the guild; retire the record.
			s.log.Info().Str("guild_id", rec.GuildID).Str("user_id", rec.UserID).
				Msg("Guild not resolvable, marking mute inactive")
			s.deactivate(rec)
			continue
		}

		member, err := s.gw.Member(rec.GuildID, rec.UserID)
		if err == nil && timedOut(member, now) {
			if err := s.gw.Timeout(rec.GuildID, rec.UserID, nil, expiredReason); err != nil {
				s.log.Warn().Err(err).Str("guild_id", rec.GuildID).Str("user_id", rec.UserID).
					Msg("Failed to clear expired timeout")
			}
		}

		s.deactivate(rec)
	}

	return len(expired), nil
}

func (s *Service) deactivate(rec *storage.MuteRecord) {
	rec.Active = false
	if err := s.store.Save(rec); err != nil {
		s.log.Error().Err(err).Str("guild_id", rec.GuildID).Str("user_id", rec.UserID).
			Msg("Failed to persist mute deactivation")
	}
}

func timedOut(member *discordgo.Member, now time.Time) bool {
	return member != nil &&
		member.CommunicationDisabledUntil != nil &&
		member.CommunicationDisabledUntil.After(now)
}

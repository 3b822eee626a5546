// /internal/storage/storage.go
package storage

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"guild-warden/datastore"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const muteCollection = "mutes"

var (
	// ErrActiveMuteExists is returned by InsertActive when the target already
	// has an active mute in the guild.
	ErrActiveMuteExists = errors.New("an active mute already exists")
	// ErrNotFound is returned by Save when the record does not exist.
	ErrNotFound = errors.New("mute record not found")
)

// MuteRecord is one sanction instance for a user in a guild. Records are
// append-only history; Active is the only field that changes after creation.
type MuteRecord struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	GuildID     string     `json:"guild_id"`
	ModeratorID string     `json:"moderator_id"`
	Reason      string     `json:"reason"`
	MutedAt     time.Time  `json:"muted_at"`
	Duration    int64      `json:"duration_ms"` // milliseconds, 0 = permanent
	ExpiresAt   *time.Time `json:"expires_at"`  // nil iff Duration == 0
	Active      bool       `json:"active"`
}

// guildDoc is the per-guild document holding that guild's mute history.
type guildDoc struct {
	Records []MuteRecord `json:"records"`
}

// Storage is the mute record repository. All operations run under one mutex,
// so check-then-write sequences like InsertActive are atomic in-process.
type Storage struct {
	ds  *datastore.Store
	mu  sync.Mutex
	log zerolog.Logger
}

// New opens the backing datastore at filePath.
func New(filePath string, log zerolog.Logger) (*Storage, error) {
	cfg := datastore.DefaultConfig(filePath)
	cfg.Logger = log
	ds, err := datastore.OpenWithConfig(cfg)
	if err != nil {
		return nil, err
	}
	return &Storage{ds: ds, log: log}, nil
}

// Close flushes and closes the backing datastore.
func (s *Storage) Close() error {
	return s.ds.Close()
}

func (s *Storage) guildDoc(guildID string) (*guildDoc, error) {
	var doc guildDoc
	if _, err := s.ds.Get(muteCollection, guildID, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// FindActive returns the active mute record for (userID, guildID), or nil.
func (s *Storage) FindActive(userID, guildID string) (*MuteRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findActiveLocked(userID, guildID)
}

func (s *Storage) findActiveLocked(userID, guildID string) (*MuteRecord, error) {
	doc, err := s.guildDoc(guildID)
	if err != nil {
		return nil, err
	}
	for i := range doc.Records {
		if doc.Records[i].Active && doc.Records[i].UserID == userID {
			rec := doc.Records[i]
			return &rec, nil
		}
	}
	return nil, nil
}

// FindExpiredActive returns every active record with a non-nil expiry at or
// before now. Permanent mutes (nil expiry) are never returned.
func (s *Storage) FindExpiredActive(now time.Time) ([]MuteRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var expired []MuteRecord
	for _, guildID := range s.ds.Keys(muteCollection) {
		doc, err := s.guildDoc(guildID)
		if err != nil {
			return nil, err
		}
		for _, rec := range doc.Records {
			if rec.Active && rec.ExpiresAt != nil && !rec.ExpiresAt.After(now) {
				expired = append(expired, rec)
			}
		}
	}
	return expired, nil
}

// InsertActive persists a new active mute record, assigning it an ID.
// Fails with ErrActiveMuteExists if the user already has an active mute in the
// guild; the check and the insert share the same critical section.
func (s *Storage) InsertActive(rec MuteRecord) (*MuteRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.findActiveLocked(rec.UserID, rec.GuildID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrActiveMuteExists
	}

	rec.ID = uuid.NewString()
	rec.Active = true

	doc, err := s.guildDoc(rec.GuildID)
	if err != nil {
		return nil, err
	}
	doc.Records = append(doc.Records, rec)
	if err := s.ds.Put(muteCollection, rec.GuildID, doc); err != nil {
		return nil, fmt.Errorf("failed to persist mute record: %w", err)
	}
	return &rec, nil
}

// Save persists mutations to an existing record, addressed by ID.
func (s *Storage) Save(rec *MuteRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.guildDoc(rec.GuildID)
	if err != nil {
		return err
	}
	for i := range doc.Records {
		if doc.Records[i].ID == rec.ID {
			doc.Records[i] = *rec
			if err := s.ds.Put(muteCollection, rec.GuildID, doc); err != nil {
				return fmt.Errorf("failed to persist mute record: %w", err)
			}
			return nil
		}
	}
	return ErrNotFound
}

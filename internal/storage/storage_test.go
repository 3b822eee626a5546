package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "store.json"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func timedRecord(userID, guildID string, d time.Duration) MuteRecord {
	now := time.Now().UTC()
	rec := MuteRecord{
		UserID:      userID,
		GuildID:     guildID,
		ModeratorID: "mod",
		Reason:      "test",
		MutedAt:     now,
		Duration:    d.Milliseconds(),
	}
	if d > 0 {
		expires := now.Add(d)
		rec.ExpiresAt = &expires
	}
	return rec
}

func TestInsertAndFindActive(t *testing.T) {
	s := openTestStorage(t)

	stored, err := s.InsertActive(timedRecord("u1", "g1", time.Hour))
	require.NoError(t, err)
	assert.NotEmpty(t, stored.ID)
	assert.True(t, stored.Active)

	got, err := s.FindActive("u1", "g1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, stored.ID, got.ID)

	// different guild, same user
	got, err = s.FindActive("u1", "g2")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestInsertActiveRejectsDuplicate(t *testing.T) {
	s := openTestStorage(t)

	_, err := s.InsertActive(timedRecord("u1", "g1", time.Hour))
	require.NoError(t, err)

	_, err = s.InsertActive(timedRecord("u1", "g1", time.Minute))
	assert.ErrorIs(t, err, ErrActiveMuteExists)
}

func TestNewMuteAfterClear(t *testing.T) {
	s := openTestStorage(t)

	first, err := s.InsertActive(timedRecord("u1", "g1", time.Hour))
	require.NoError(t, err)

	first.Active = false
	require.NoError(t, s.Save(first))

	second, err := s.InsertActive(timedRecord("u1", "g1", 0))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	// at most one active record per (user, guild)
	got, err := s.FindActive("u1", "g1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, second.ID, got.ID)
}

func TestFindExpiredActive(t *testing.T) {
	s := openTestStorage(t)
	now := time.Now().UTC()

	expired := timedRecord("u1", "g1", time.Minute)
	past := now.Add(-time.Minute)
	expired.ExpiresAt = &past
	_, err := s.InsertActive(expired)
	require.NoError(t, err)

	_, err = s.InsertActive(timedRecord("u2", "g1", time.Hour)) // future expiry
	require.NoError(t, err)
	_, err = s.InsertActive(timedRecord("u3", "g2", 0)) // permanent
	require.NoError(t, err)

	got, err := s.FindExpiredActive(now)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "u1", got[0].UserID)
}

func TestPermanentMuteNeverExpires(t *testing.T) {
	s := openTestStorage(t)

	rec, err := s.InsertActive(timedRecord("u1", "g1", 0))
	require.NoError(t, err)
	assert.Nil(t, rec.ExpiresAt)

	got, err := s.FindExpiredActive(time.Now().UTC().Add(1000 * time.Hour))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSaveUnknownRecord(t *testing.T) {
	s := openTestStorage(t)

	rec := timedRecord("u1", "g1", time.Hour)
	rec.ID = "missing"
	assert.ErrorIs(t, s.Save(&rec), ErrNotFound)
}

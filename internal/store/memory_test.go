package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ugaemi/divecatch-server/internal/record"
)

func TestMemoryStore_SaveAndFind(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	rec := record.NewCaughtRecord("session-1", 4.2, time.Now())
	require.NoError(t, s.Save(ctx, rec))

	found, err := s.FindByID(ctx, rec.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "session-1", found.SessionID)

	found, err = s.FindBySession(ctx, "session-1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, rec.ID, found.ID)
}

func TestMemoryStore_NotFound(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	found, err := s.FindByID(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, found)

	found, err = s.FindBySession(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestMemoryStore_DuplicateSession(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, record.NewEndedRecord("dup", "none", time.Now())))
	assert.Error(t, s.Save(ctx, record.NewEndedRecord("dup", "escaped", time.Now())))
}

func TestMemoryStore_RecentNewestFirst(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	base := time.Now()
	for i, id := range []string{"a", "b", "c"} {
		rec := record.NewEndedRecord(id, "escaped", base)
		rec.EndedAt = base.Add(time.Duration(i) * time.Second)
		require.NoError(t, s.Save(ctx, rec))
	}

	recs, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "c", recs[0].SessionID)
	assert.Equal(t, "b", recs[1].SessionID)
}

package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugaemi/divecatch-server/internal/game"
	"github.com/ugaemi/divecatch-server/internal/store"
)

func TestManager_CreateAndGet(t *testing.T) {
	m := NewManager(testSettings(), store.NewMemoryStore())

	s := m.CreateSession(7)

	require.NotNil(t, s)
	assert.Len(t, s.Code, codeLength)
	assert.Equal(t, int64(7), s.settings.Seed)
	assert.Same(t, s, m.GetSession(s.Code))
	assert.Equal(t, 1, m.SessionCount())
}

func TestManager_GetIsCaseInsensitive(t *testing.T) {
	m := NewManager(testSettings(), nil)
	s := m.CreateSession(1)

	lower := []rune(s.Code)
	for i, r := range lower {
		lower[i] = r + ('a' - 'A')
	}

	assert.Same(t, s, m.GetSession(string(lower)))
	assert.Nil(t, m.GetSession("ZZZZZ"))
}

func TestManager_ZeroSeedIsRandomized(t *testing.T) {
	m := NewManager(testSettings(), nil)

	s := m.CreateSession(0)

	assert.NotZero(t, s.settings.Seed)
}

func TestManager_RemoveStopsSession(t *testing.T) {
	m := NewManager(testSettings(), nil)
	s := m.CreateSession(1)
	markRunning(s)

	m.RemoveSession(s.Code)

	assert.Nil(t, m.GetSession(s.Code))
	assert.Equal(t, 0, m.SessionCount())
	assert.Equal(t, game.StateEnded, s.CurrentState())
}

func TestManager_FindByClient(t *testing.T) {
	m := NewManager(testSettings(), nil)
	s1 := m.CreateSession(1)
	s2 := m.CreateSession(2)
	s1.AddClient(mockClient("c1"))
	s2.AddClient(mockClient("c2"))

	assert.Same(t, s1, m.FindByClient("c1"))
	assert.Same(t, s2, m.FindByClient("c2"))
	assert.Nil(t, m.FindByClient("nobody"))
}

func TestManager_StopAll(t *testing.T) {
	m := NewManager(testSettings(), nil)
	s1 := m.CreateSession(1)
	s2 := m.CreateSession(2)
	markRunning(s1)

	m.StopAll()

	assert.Equal(t, game.StateEnded, s1.CurrentState())
	assert.Equal(t, game.StateWaiting, s2.CurrentState())
}

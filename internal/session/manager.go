package session

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/ugaemi/divecatch-server/internal/game"
	"github.com/ugaemi/divecatch-server/internal/store"
)

// Manager owns all live sessions, keyed by join code.
type Manager struct {
	sessions map[string]*Session // code -> session
	defaults Settings
	records  store.RecordStore
	mu       sync.RWMutex
}

// NewManager creates a manager that builds sessions from defaults and
// records finished ones into records.
func NewManager(defaults Settings, records store.RecordStore) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		defaults: defaults,
		records:  records,
	}
}

// CreateSession creates a waiting session. A zero seed picks one from the
// wall clock.
func (m *Manager) CreateSession(seed int64) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing := make(map[string]bool, len(m.sessions))
	for code := range m.sessions {
		existing[code] = true
	}

	settings := m.defaults
	settings.Seed = seed
	if settings.Seed == 0 {
		settings.Seed = time.Now().UnixNano()
	}

	code := GenerateCode(existing)
	s := NewSession(code, settings, m.records)
	m.sessions[code] = s

	slog.Info("session created", "code", code, "id", s.ID, "seed", settings.Seed)
	return s
}

// GetSession returns a session by join code, case-insensitively.
func (m *Manager) GetSession(code string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[strings.ToUpper(code)]
}

// RemoveSession stops and forgets a session.
func (m *Manager) RemoveSession(code string) {
	m.mu.Lock()
	s, ok := m.sessions[code]
	delete(m.sessions, code)
	m.mu.Unlock()

	if ok {
		s.Stop(game.OutcomeNone)
		slog.Info("session removed", "code", code)
	}
}

// SessionCount returns the number of live sessions.
func (m *Manager) SessionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// FindByClient returns the session a client is attached to.
func (m *Manager) FindByClient(clientID string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.sessions {
		if s.HasClient(clientID) {
			return s
		}
	}
	return nil
}

// StopAll ends every running session. Used on shutdown.
func (m *Manager) StopAll() {
	m.mu.RLock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.RUnlock()

	for _, s := range sessions {
		s.Stop(game.OutcomeNone)
	}
}

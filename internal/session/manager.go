package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/FabricioUDB/control-gastos/internal/core/events"
)

// Manager is the registry of live sessions, one per signed-in identity.
// Sign-out removes the instance entirely; the next sign-in constructs a
// fresh one, so stale records can never bleed into another account or a
// later session of the same account.
type Manager struct {
	remote RemoteLedger
	bus    *events.Bus
	logger *slog.Logger
	loc    *time.Location

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(remote RemoteLedger, bus *events.Bus, logger *slog.Logger, loc *time.Location) *Manager {
	return &Manager{
		remote:   remote,
		bus:      bus,
		logger:   logger,
		loc:      loc,
		sessions: make(map[string]*Session),
	}
}

// Session returns the live session for userID, constructing one on first
// use.
func (m *Manager) Session(userID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[userID]; ok {
		return s
	}
	s := New(userID, m.remote, m.bus, m.logger, m.loc)
	m.sessions[userID] = s
	m.logger.Info("session started", "user_id", userID)
	return s
}

// SignOut closes and discards the user's session. No-op when none exists.
func (m *Manager) SignOut(userID string) {
	m.mu.Lock()
	s, ok := m.sessions[userID]
	delete(m.sessions, userID)
	m.mu.Unlock()

	if ok {
		s.SignOut()
		m.logger.Info("session discarded", "user_id", userID)
	}
}

// Active reports how many sessions are live, for health reporting.
func (m *Manager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

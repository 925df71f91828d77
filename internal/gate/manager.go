package gate

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"

	"screenclash/internal/exercise"
	"screenclash/internal/models"
)

// HistorySink persists completed exercise runs
type HistorySink interface {
	SaveRecord(rec *models.HistoryRecord)
}

// Manager tracks the active gate session of each profile and drives
// their countdowns from a single one-second ticker.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	content ContentSource
	history HistorySink
	newRand func() *rand.Rand
}

// NewManager creates a session manager
func NewManager(content ContentSource, history HistorySink) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		content:  content,
		history:  history,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

// Run drives the countdowns until the context is cancelled. Intended
// to be started once as a goroutine from main.
func (m *Manager) Run(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.TickAll()
		}
	}
}

// TickAll advances every active session by one second
func (m *Manager) TickAll() {
	m.mu.RLock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.RUnlock()

	for _, s := range sessions {
		s.Tick()
	}
}

// Activate starts a session for a profile, replacing any existing one.
// Replacing discards the old session's in-flight exercise without
// persisting it.
func (m *Manager) Activate(cfg *models.ProfileConfig) *Status {
	session := NewSession(cfg, m.content, m.newRand())

	m.mu.Lock()
	m.sessions[cfg.ProfileName] = session
	m.mu.Unlock()

	log.Printf("Gate session activated for profile %s (allowance %ds)", cfg.ProfileName, cfg.AllowanceSeconds())
	return session.Status()
}

// Deactivate ends a profile's session. Any in-flight exercise run is
// discarded; nothing is written to history.
func (m *Manager) Deactivate(profileName string) {
	m.mu.Lock()
	_, existed := m.sessions[profileName]
	delete(m.sessions, profileName)
	m.mu.Unlock()

	if existed {
		log.Printf("Gate session deactivated for profile %s", profileName)
	}
}

// Status returns the snapshot of a profile's session
func (m *Manager) Status(profileName string) (*Status, error) {
	session, err := m.get(profileName)
	if err != nil {
		return nil, err
	}
	return session.Status(), nil
}

// Submit forwards an answer to a profile's locked session. Completed
// runs are persisted to history before the status is returned.
func (m *Manager) Submit(profileName string, answer exercise.Answer) (*exercise.Feedback, error) {
	session, err := m.get(profileName)
	if err != nil {
		return nil, err
	}

	feedback, record, err := session.Submit(answer)
	if err != nil {
		return nil, err
	}

	if record != nil && m.history != nil {
		m.history.SaveRecord(record)
	}
	return feedback, nil
}

// ForceUnlock ends a profile's lock via the parental override. The
// in-flight run is discarded.
func (m *Manager) ForceUnlock(profileName string) (*Status, error) {
	session, err := m.get(profileName)
	if err != nil {
		return nil, err
	}
	session.ForceUnlock()
	log.Printf("Gate force-unlocked for profile %s", profileName)
	return session.Status(), nil
}

func (m *Manager) get(profileName string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[profileName]
	if !ok {
		return nil, ErrNoSession
	}
	return session, nil
}

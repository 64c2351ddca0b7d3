package session

import (
	"sync"

	"github.com/GriffinCanCode/TermBridge/internal/logging"
	"github.com/GriffinCanCode/TermBridge/internal/terminal"
	"go.uber.org/zap"
)

// Manager is the single authority mapping session identity to session
// state. One mutex guards the map, and every driver call reachable
// through the manager runs while holding it: terminal operations are
// serialized from the caller's point of view. Session counts are small
// and calls infrequent, so simplicity wins over throughput here.
//
// Liveness is never trusted from a previous call. Every read path probes
// the driver and evicts entries whose probe fails, so a dead session
// disappears on whichever operation touches it first.
type Manager struct {
	mu       sync.Mutex
	driver   terminal.Driver
	sessions map[string]*terminal.Session
	log      *logging.Logger
}

// NewManager creates a session manager backed by the given driver.
func NewManager(driver terminal.Driver, log *logging.Logger) *Manager {
	return &Manager{
		driver:   driver,
		sessions: make(map[string]*terminal.Session),
		log:      log,
	}
}

// CreateOrGet returns the live session with the given name if one
// exists, creating a fresh session otherwise. A dead entry holding the
// name is evicted before the new one is created, so at most one live
// session owns a non-empty name at any instant.
func (m *Manager) CreateOrGet(name, workingDir string) (*terminal.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if name != "" {
		for _, sess := range m.sessions {
			if sess.Name != name {
				continue
			}
			if m.driver.Alive(sess) {
				return sess, nil
			}
			m.evictLocked(sess)
			break
		}
	}

	sess, err := m.driver.Create(name, workingDir)
	if err != nil {
		return nil, err
	}
	m.sessions[sess.ID] = sess

	m.log.Info("session registered",
		zap.String("session_id", sess.ID),
		zap.String("name", sess.Name),
		zap.String("platform", string(sess.Platform)))
	return sess, nil
}

// Get looks up a session by id, re-probing liveness. A failed probe
// evicts the entry and returns nil; callers never see a stale record.
func (m *Manager) Get(id string) *terminal.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getLocked(id)
}

// SendInput delivers one line of text to the session's window. Unknown
// or dead ids report false without side effects.
func (m *Manager) SendInput(id, text string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess := m.getLocked(id)
	if sess == nil {
		return false
	}
	return m.driver.SendInput(sess, text)
}

// Output returns the trailing lines of the session transcript, or the
// empty string for unknown or dead ids. No clamping happens here; the
// dispatch layer owns the external bounds.
func (m *Manager) Output(id string, lines int) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess := m.getLocked(id)
	if sess == nil {
		return ""
	}
	return m.driver.Output(sess, lines)
}

// List probes every entry and returns the live ones. Entries whose probe
// fails are evicted during the sweep: List is a reconciliation pass, not
// a pure read.
func (m *Manager) List() []*terminal.Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	var live []*terminal.Session
	var dead []*terminal.Session
	for _, sess := range m.sessions {
		if m.driver.Alive(sess) {
			live = append(live, sess)
		} else {
			dead = append(dead, sess)
		}
	}
	for _, sess := range dead {
		m.evictLocked(sess)
	}
	return live
}

// Close removes the session and tears down its native resources.
// Closing an unknown (or already-closed) id reports false, never an
// error.
func (m *Manager) Close(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[id]
	if !ok {
		return false
	}
	m.driver.Close(sess)
	delete(m.sessions, id)

	m.log.Info("session closed", zap.String("session_id", id))
	return true
}

// Count reports the number of registered entries without probing.
// Advisory only; List is the authoritative view.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// CloseAll tears down every session best-effort and runs the driver's
// shutdown sweep. Called from signal handlers and the exit path, so it
// must stay synchronous.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, sess := range m.sessions {
		m.driver.Close(sess)
		delete(m.sessions, id)
	}
	m.driver.Cleanup()

	m.log.Info("all sessions closed")
}

func (m *Manager) getLocked(id string) *terminal.Session {
	sess, ok := m.sessions[id]
	if !ok {
		return nil
	}
	if m.driver.Alive(sess) {
		return sess
	}
	m.evictLocked(sess)
	return nil
}

// evictLocked reaps an entry discovered dead: native teardown plus map
// removal, same as an explicit close.
func (m *Manager) evictLocked(sess *terminal.Session) {
	m.driver.Close(sess)
	delete(m.sessions, sess.ID)

	m.log.Info("dead session evicted",
		zap.String("session_id", sess.ID),
		zap.String("name", sess.Name))
}

package places

import (
	"sync"

	"github.com/google/uuid"
)

// SessionToken is the opaque billing/session handle required by the
// autocomplete provider. One token spans exactly one "user types → selects
// (or abandons)" interaction: it is sent on every suggest call and on the
// immediately following details call, then discarded.
type SessionToken string

// SessionTokenManager owns the lifecycle of a session token. It is not a
// process-wide singleton: each active field controller owns one manager and
// passes it by reference into the fetcher and the details resolver.
type SessionTokenManager struct {
	mu      sync.Mutex
	current SessionToken
}

// NewSessionTokenManager creates a manager with no live token. The first
// Current call mints one.
func NewSessionTokenManager() *SessionTokenManager {
	return &SessionTokenManager{}
}

// Current returns the live token, creating one if none exists.
func (m *SessionTokenManager) Current() SessionToken {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == "" {
		m.current = SessionToken(uuid.New().String())
	}
	return m.current
}

// Reset discards the current token and allocates a fresh one. Callers invoke
// it when a selection completes, on explicit clear, or when the field
// becomes empty. Tokens are never reused across sessions.
func (m *SessionTokenManager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = SessionToken(uuid.New().String())
}

// Package session owns the session-id lifecycle: resume on startup, and the
// clear-memory sequence that swaps in a fresh id.
package session

import (
	"context"

	"go.uber.org/zap"

	"github.com/anonivate/anoni/pkg/identity"
)

// Gateway is the slice of the backend client the manager needs.
type Gateway interface {
	DeleteMemory(ctx context.Context, sessionID string) error
}

type Manager struct {
	store *identity.Store
	gw    Gateway
	log   *zap.Logger
	id    string
}

// NewManager resumes the persisted session id, minting one on first use.
func NewManager(store *identity.Store, gw Gateway, logger *zap.Logger) (*Manager, error) {
	id, err := store.LoadOrCreateSessionID()
	if err != nil {
		return nil, err
	}
	return &Manager{store: store, gw: gw, log: logger, id: id}, nil
}

// ID returns the current session id. It only changes through ClearMemory.
func (m *Manager) ID() string {
	return m.id
}

// ClearMemory runs the reset sequence: a best-effort remote delete for the
// current id (failure is logged, never blocking), then local cleanup and a
// fresh persisted id. The caller is responsible for dropping the profile
// from its own state, re-running onboarding and resetting the transcript.
func (m *Manager) ClearMemory(ctx context.Context) (string, error) {
	if err := m.gw.DeleteMemory(ctx, m.id); err != nil {
		m.log.Warn("remote memory delete failed, continuing local reset",
			zap.String("session_id", m.id),
			zap.Error(err))
	}

	if err := m.store.Clear(); err != nil {
		return "", err
	}

	fresh := identity.NewSessionID()
	if err := m.store.SetSessionID(fresh); err != nil {
		return "", err
	}
	m.id = fresh

	return fresh, nil
}

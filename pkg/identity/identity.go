// Package identity persists the session id and onboarding profile in a
// small sqlite-backed key-value store under the user config directory.
// No validation happens here; that is the onboarding flow's job.
package identity

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const (
	sessionKey = "anoni.session_id"
	profileKey = "anoni.user_profile"
)

// UserProfile is collected once during onboarding and sent along with every
// chat request.
type UserProfile struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	AssistantName string `json:"assistant_name"`
}

type Store struct {
	db *sql.DB
}

// Open opens (or creates) the key-value store at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open identity store: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize identity store: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// LoadProfile returns the stored profile, or nil when onboarding has not
// run yet.
func (s *Store) LoadProfile() (*UserProfile, error) {
	value, ok, err := s.get(profileKey)
	if err != nil || !ok {
		return nil, err
	}

	var profile UserProfile
	if err := json.Unmarshal([]byte(value), &profile); err != nil {
		return nil, fmt.Errorf("failed to decode stored profile: %w", err)
	}
	return &profile, nil
}

func (s *Store) SaveProfile(profile *UserProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	return s.put(profileKey, string(data))
}

// LoadOrCreateSessionID returns the persisted session id, minting and
// persisting a fresh one on first use.
func (s *Store) LoadOrCreateSessionID() (string, error) {
	value, ok, err := s.get(sessionKey)
	if err != nil {
		return "", err
	}
	if ok {
		return value, nil
	}

	id := NewSessionID()
	if err := s.put(sessionKey, id); err != nil {
		return "", err
	}
	return id, nil
}

// SetSessionID replaces the persisted session id.
func (s *Store) SetSessionID(id string) error {
	return s.put(sessionKey, id)
}

// Clear removes both the session id and the profile.
func (s *Store) Clear() error {
	_, err := s.db.Exec(`DELETE FROM kv WHERE key IN (?, ?)`, sessionKey, profileKey)
	if err != nil {
		return fmt.Errorf("failed to clear identity store: %w", err)
	}
	return nil
}

// NewSessionID mints a time-plus-random session identifier. It is unique
// enough to avoid backend collisions but is not a security token.
func NewSessionID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("session_%d_%s", time.Now().UnixMilli(), suffix)
}

func (s *Store) get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) put(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

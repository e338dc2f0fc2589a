package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"tddbank/internal/core"
)

// Entry keys, kept identical to the persisted schema so that memory and
// sqlite backends stay interchangeable.
const (
	keyUserName   = "userName"
	keyProfile    = "bankUser"
	keyLoggedIn   = "isLoggedIn"
	loggedInValue = "true"
)

// Store is the in-process key-value backend, the default for local runs.
type Store struct {
	mu      sync.Mutex
	entries map[string]string
	audit   []core.AuditEntry
}

func New() *Store {
	return &Store{entries: make(map[string]string)}
}

// ReadUserName returns the persisted display name, or "" when absent.
func (s *Store) ReadUserName(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries[keyUserName], nil
}

func (s *Store) WriteUserName(_ context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("write userName: empty name")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[keyUserName] = name
	return nil
}

func (s *Store) ClearUserName(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, keyUserName)
	return nil
}

func (s *Store) WriteLoggedInFlag(_ context.Context, loggedIn bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if loggedIn {
		s.entries[keyLoggedIn] = loggedInValue
	} else {
		delete(s.entries, keyLoggedIn)
	}
	return nil
}

// ReadProfile returns the stored profile; ok is false when none exists.
func (s *Store) ReadProfile(_ context.Context) (core.Profile, bool, error) {
	s.mu.Lock()
	raw, exists := s.entries[keyProfile]
	s.mu.Unlock()
	if !exists {
		return core.Profile{}, false, nil
	}
	var p core.Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return core.Profile{}, false, fmt.Errorf("decode stored profile: %w", err)
	}
	return p, true, nil
}

func (s *Store) WriteProfile(_ context.Context, p core.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[keyProfile] = string(raw)
	return nil
}

// AppendAudit stores the entry and returns a synthetic reference.
func (s *Store) AppendAudit(_ context.Context, e core.AuditEntry) (string, error) {
	if err := e.Kind.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audit = append(s.audit, e)
	return fmt.Sprintf("mem:%d", len(s.audit)), nil
}

// AuditEntries returns a copy of the audit trail, oldest first.
func (s *Store) AuditEntries() []core.AuditEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.AuditEntry, len(s.audit))
	copy(out, s.audit)
	return out
}

// Wipe clears every stored entry. The audit trail survives, matching
// the SQLite backend: a deactivation must stay traceable.
func (s *Store) Wipe(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]string)
	return nil
}

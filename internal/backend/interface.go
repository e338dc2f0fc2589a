package backend

import (
	"context"

	"tddbank/internal/store"
)

// Backend bundles every persistence port the application needs.
type Backend interface {
	store.SessionStore
	store.ProfileStore
	store.AuditLog
	store.Wiper
}

// CleanupFunc releases resources held by a backend.
type CleanupFunc func() error

// BackendResult contains the backend instance and optional cleanup function.
type BackendResult struct {
	Backend Backend
	Cleanup CleanupFunc
}

// Factory creates backends based on configuration.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation.
type Config struct {
	Type BackendType

	// SQLite specific
	SQLiteDBPath string
}

// BackendType represents the type of backend.
type BackendType string

const (
	MemoryBackend BackendType = "memory"
	SQLiteBackend BackendType = "sqlite"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid.
func (bt BackendType) IsValid() bool {
	switch bt {
	case MemoryBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}

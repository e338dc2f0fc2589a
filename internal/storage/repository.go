package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"tddbank/internal/core"

	_ "modernc.org/sqlite"
)

// Entry keys of the persisted key-value schema.
const (
	keyUserName   = "userName"
	keyProfile    = "bankUser"
	keyLoggedIn   = "isLoggedIn"
	loggedInValue = "true"
)

// SQLiteRepository persists the key-value entries and the audit trail.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Run migrations
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) readEntry(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM entries WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read entry %q: %w", key, err)
	}
	return value, true, nil
}

func (r *SQLiteRepository) writeEntry(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO entries (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value)
	if err != nil {
		return fmt.Errorf("write entry %q: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) deleteEntry(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete entry %q: %w", key, err)
	}
	return nil
}

// ReadUserName implements store.SessionStore.
func (r *SQLiteRepository) ReadUserName(ctx context.Context) (string, error) {
	name, _, err := r.readEntry(ctx, keyUserName)
	return name, err
}

// WriteUserName implements store.SessionStore.
func (r *SQLiteRepository) WriteUserName(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("write userName: empty name")
	}
	return r.writeEntry(ctx, keyUserName, name)
}

// ClearUserName implements store.SessionStore.
func (r *SQLiteRepository) ClearUserName(ctx context.Context) error {
	return r.deleteEntry(ctx, keyUserName)
}

// WriteLoggedInFlag implements store.SessionStore.
func (r *SQLiteRepository) WriteLoggedInFlag(ctx context.Context, loggedIn bool) error {
	if loggedIn {
		return r.writeEntry(ctx, keyLoggedIn, loggedInValue)
	}
	return r.deleteEntry(ctx, keyLoggedIn)
}

// ReadProfile implements store.ProfileStore.
func (r *SQLiteRepository) ReadProfile(ctx context.Context) (core.Profile, bool, error) {
	raw, exists, err := r.readEntry(ctx, keyProfile)
	if err != nil || !exists {
		return core.Profile{}, false, err
	}
	var p core.Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return core.Profile{}, false, fmt.Errorf("decode stored profile: %w", err)
	}
	return p, true, nil
}

// WriteProfile implements store.ProfileStore.
func (r *SQLiteRepository) WriteProfile(ctx context.Context, p core.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := r.writeEntry(ctx, keyProfile, string(raw)); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Profile saved to SQLite",
		"full_name", p.FullName,
		"twofa_enabled", p.Is2FAEnabled)

	return nil
}

// AppendAudit implements store.AuditLog.
func (r *SQLiteRepository) AppendAudit(ctx context.Context, e core.AuditEntry) (string, error) {
	if err := e.Kind.Validate(); err != nil {
		return "", err
	}
	// Redelivered events carry the same event_id; the conflict clause
	// makes the append idempotent.
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO audit_entries (event_id, kind, actor, detail, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(event_id) DO NOTHING`,
		e.ID, string(e.Kind), e.Actor, e.Detail, e.At.UTC())
	if err != nil {
		return "", fmt.Errorf("append audit entry: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		var id int64
		err := r.db.QueryRowContext(ctx,
			`SELECT id FROM audit_entries WHERE event_id = ?`, e.ID).Scan(&id)
		if err != nil {
			return "", fmt.Errorf("lookup duplicate audit entry: %w", err)
		}
		return fmt.Sprintf("audit:%d", id), nil
	}
	id, err := res.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("audit entry id: %w", err)
	}
	return fmt.Sprintf("audit:%d", id), nil
}

// ListAudit returns the most recent audit entries, newest first.
func (r *SQLiteRepository) ListAudit(ctx context.Context, limit int) ([]core.AuditEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT event_id, kind, actor, detail, created_at
		FROM audit_entries ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	var out []core.AuditEntry
	for rows.Next() {
		var e core.AuditEntry
		var kind string
		if err := rows.Scan(&e.ID, &kind, &e.Actor, &e.Detail, &e.At); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		e.Kind = core.AuditKind(kind)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}
	return out, nil
}

// Wipe implements store.Wiper. The audit trail survives a wipe on purpose:
// deactivation itself must stay traceable.
func (r *SQLiteRepository) Wipe(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM entries`); err != nil {
		return fmt.Errorf("wipe entries: %w", err)
	}
	return nil
}

package publish

import (
	"context"
	"database/sql"
	"encoding/base64"
	stderrors "errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Settings records the destination of the most recent push for a project
// so a re-push needs no re-entry.
type Settings struct {
	ProjectID  string    `json:"projectId"`
	Owner      string    `json:"owner"`
	Repo       string    `json:"repo"`
	Branch     string    `json:"branch"`
	BasePath   string    `json:"basePath"`
	LastPushAt time.Time `json:"lastPushAt"`
}

// Store persists the GitHub token and per-project push settings.
type Store interface {
	SaveToken(ctx context.Context, token string) error
	Token(ctx context.Context) (string, error)
	HasToken(ctx context.Context) (bool, error)
	RemoveToken(ctx context.Context) error

	SaveSettings(ctx context.Context, s Settings) error
	SettingsFor(ctx context.Context, projectID string) (*Settings, error)

	Close() error
}

// tokenXORKey lightly obfuscates the stored token. This is not encryption;
// it only keeps the token from being greppable in the database file.
const tokenXORKey = 42

func obfuscateToken(token string) string {
	b := []byte(token)
	for i := range b {
		b[i] ^= tokenXORKey
	}
	return base64.StdEncoding.EncodeToString(b)
}

func deobfuscateToken(stored string) (string, error) {
	b, err := base64.StdEncoding.DecodeString(stored)
	if err != nil {
		return "", fmt.Errorf("decode stored token: %w", err)
	}
	for i := range b {
		b[i] ^= tokenXORKey
	}
	return string(b), nil
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore opens (or creates) the settings database at dbPath.
// Use ":memory:" for tests.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS credentials (
		name TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS push_settings (
		project_id TEXT PRIMARY KEY,
		owner TEXT NOT NULL,
		repo TEXT NOT NULL,
		branch TEXT NOT NULL,
		base_path TEXT NOT NULL,
		last_push_at INTEGER NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

const tokenName = "github_pat"

// SaveToken stores the GitHub token, replacing any previous one.
func (s *SQLiteStore) SaveToken(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO credentials (name, value, updated_at) VALUES (?, ?, ?) ON CONFLICT(name) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at",
		tokenName, obfuscateToken(token), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// Token returns the stored GitHub token, or empty when none is saved.
func (s *SQLiteStore) Token(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stored string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM credentials WHERE name = ?", tokenName).Scan(&stored)
	if stderrors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load token: %w", err)
	}
	return deobfuscateToken(stored)
}

// HasToken reports whether a token is saved.
func (s *SQLiteStore) HasToken(ctx context.Context) (bool, error) {
	token, err := s.Token(ctx)
	if err != nil {
		return false, err
	}
	return token != "", nil
}

// RemoveToken deletes the token and every saved push setting, matching the
// semantics of disconnecting an account.
func (s *SQLiteStore) RemoveToken(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin remove token: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM credentials WHERE name = ?", tokenName); err != nil {
		return fmt.Errorf("remove token: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM push_settings"); err != nil {
		return fmt.Errorf("remove push settings: %w", err)
	}
	return tx.Commit()
}

// SaveSettings stores the last-push settings for a project, replacing any
// previous entry.
func (s *SQLiteStore) SaveSettings(ctx context.Context, settings Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO push_settings (project_id, owner, repo, branch, base_path, last_push_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(project_id) DO UPDATE SET
		   owner=excluded.owner, repo=excluded.repo, branch=excluded.branch,
		   base_path=excluded.base_path, last_push_at=excluded.last_push_at`,
		settings.ProjectID, settings.Owner, settings.Repo, settings.Branch,
		settings.BasePath, settings.LastPushAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("save push settings: %w", err)
	}
	return nil
}

// SettingsFor returns the saved settings for a project, or nil when the
// project has never been pushed.
func (s *SQLiteStore) SettingsFor(ctx context.Context, projectID string) (*Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		settings Settings
		pushedAt int64
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT project_id, owner, repo, branch, base_path, last_push_at FROM push_settings WHERE project_id = ?",
		projectID,
	).Scan(&settings.ProjectID, &settings.Owner, &settings.Repo, &settings.Branch, &settings.BasePath, &pushedAt)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load push settings: %w", err)
	}
	settings.LastPushAt = time.Unix(pushedAt, 0).UTC()
	return &settings, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }

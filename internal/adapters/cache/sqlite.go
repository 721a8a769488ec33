package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS cache_entries (
    key        TEXT PRIMARY KEY,
    value      BLOB    NOT NULL,
    fetched_at INTEGER NOT NULL, -- unix nanos
    ttl_ns     INTEGER NOT NULL,
    expires_at INTEGER NOT NULL  -- unix nanos
);

CREATE INDEX IF NOT EXISTS idx_cache_expires ON cache_entries(expires_at);
`

// SQLiteStore implementa Store sobre SQLite (pure Go, sin CGo).
// Permite compartir la cache entre ejecuciones con -once.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore abre (o crea) la base de datos en la ruta dada, aplica el
// schema y borra las entradas expiradas.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		path = ":memory:"
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cache.NewSQLiteStore: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache.NewSQLiteStore: apply schema: %w", err)
	}

	s := &SQLiteStore{db: db}
	s.pruneExpired(context.Background(), time.Now())
	return s, nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (Entry, bool, error) {
	var (
		value     []byte
		fetchedAt int64
		ttl       int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT value, fetched_at, ttl_ns FROM cache_entries WHERE key = ?`, key,
	).Scan(&value, &fetchedAt, &ttl)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("cache.SQLiteStore.Get %q: %w", key, err)
	}
	return Entry{
		Value:     value,
		FetchedAt: time.Unix(0, fetchedAt),
		TTL:       time.Duration(ttl),
	}, true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, e Entry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cache_entries (key, value, fetched_at, ttl_ns, expires_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value      = excluded.value,
			fetched_at = excluded.fetched_at,
			ttl_ns     = excluded.ttl_ns,
			expires_at = excluded.expires_at`,
		key, e.Value, e.FetchedAt.UnixNano(), int64(e.TTL), e.FetchedAt.Add(e.TTL).UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("cache.SQLiteStore.Set %q: %w", key, err)
	}
	return nil
}

// pruneExpired borra las entradas expiradas antes de now. Best-effort.
func (s *SQLiteStore) pruneExpired(ctx context.Context, now time.Time) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM cache_entries WHERE expires_at < ?`, now.UnixNano())
	if err != nil {
		slog.Warn("cache prune failed", "err", err)
		return
	}
	if n, _ := res.RowsAffected(); n > 0 {
		slog.Debug("cache pruned", "rows", n)
	}
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

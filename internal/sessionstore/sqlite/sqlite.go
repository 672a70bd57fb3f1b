// Package sqlite provides a sessionstore driver backed by a local SQLite
// file. Sessions survive process restarts on a single node; the TTL contract
// is identical to the in-memory driver.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/haletree/symptom-intake/server/internal/model"
	"github.com/haletree/symptom-intake/server/internal/sessionstore"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
    session_id TEXT PRIMARY KEY,
    actor_id   TEXT NOT NULL DEFAULT '',
    body       BLOB NOT NULL,
    expires_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sessions_actor ON sessions(actor_id) WHERE actor_id <> '';
CREATE INDEX IF NOT EXISTS idx_sessions_expiry ON sessions(expires_at);
`

// Open opens (or creates) the session database at the given path, enables WAL
// journal mode and ensures the schema exists.
func Open(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewWithDB constructs the driver over an already-opened database.
func NewWithDB(db *sql.DB) sessionstore.Store { return &store{db: db, now: time.Now} }

type store struct {
	db  *sql.DB
	now func() time.Time
}

func (st *store) Get(ctx context.Context, sessionID string) (*model.Session, error) {
	var body []byte
	var exp int64
	row := st.db.QueryRowContext(ctx,
		`SELECT body, expires_at FROM sessions WHERE session_id=?`, sessionID)
	if err := row.Scan(&body, &exp); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	if st.now().Unix() > exp {
		_, _ = st.db.ExecContext(ctx, `DELETE FROM sessions WHERE session_id=?`, sessionID)
		return nil, model.ErrExpired
	}
	return decode(body, exp)
}

func (st *store) GetByActor(ctx context.Context, actorID string) (*model.Session, error) {
	if actorID == "" {
		return nil, model.ErrNotFound
	}
	var id string
	row := st.db.QueryRowContext(ctx,
		`SELECT session_id FROM sessions WHERE actor_id=? ORDER BY expires_at DESC LIMIT 1`, actorID)
	if err := row.Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return st.Get(ctx, id)
}

func (st *store) Put(ctx context.Context, s *model.Session, ttl time.Duration) error {
	exp := st.now().Add(ttl)
	cp := s.Clone()
	cp.ExpiresAt = exp
	body, err := json.Marshal(cp)
	if err != nil {
		return err
	}
	_, err = st.db.ExecContext(ctx, `
        INSERT INTO sessions (session_id, actor_id, body, expires_at)
        VALUES (?,?,?,?)
        ON CONFLICT(session_id) DO UPDATE SET body=excluded.body, expires_at=excluded.expires_at
    `, cp.SessionID, cp.ActorID, body, exp.Unix())
	if err != nil {
		return err
	}
	s.ExpiresAt = exp
	return nil
}

func (st *store) Remove(ctx context.Context, sessionID string) error {
	_, err := st.db.ExecContext(ctx, `DELETE FROM sessions WHERE session_id=?`, sessionID)
	return err
}

func (st *store) PurgeExpired(ctx context.Context) (int, error) {
	res, err := st.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < ?`, st.now().Unix())
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// HealthPing implements health.HealthPinger for the SQLite-backed store.
func (st *store) HealthPing(ctx context.Context) error {
	return st.db.PingContext(ctx)
}

func decode(body []byte, exp int64) (*model.Session, error) {
	var s model.Session
	if err := json.Unmarshal(body, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	s.ExpiresAt = time.Unix(exp, 0)
	return &s, nil
}

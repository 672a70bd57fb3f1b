// Package postgres provides the Postgres-backed recommendation archive.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/haletree/symptom-intake/server/internal/archive"
	"github.com/haletree/symptom-intake/server/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS recommendations (
    recommendation_id UUID PRIMARY KEY,
    actor_id          TEXT NOT NULL,
    symptoms          TEXT NOT NULL DEFAULT '',
    summary           TEXT NOT NULL,
    triage_level      TEXT NOT NULL,
    creation_time     TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_recommendations_actor
    ON recommendations(actor_id, creation_time DESC);
`

// Open opens a PostgreSQL connection using the pgx stdlib driver and
// verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Bootstrap ensures the archive schema exists.
func Bootstrap(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}

// NewWithDB constructs the archive over an already-opened database.
func NewWithDB(db *sql.DB) archive.Archiver { return &pgArchive{db: db} }

type pgArchive struct{ db *sql.DB }

func (a *pgArchive) SaveRecommendation(ctx context.Context, rec *model.Recommendation) error {
	if rec.ActorID == "" {
		return fmt.Errorf("%w: anonymous recommendations are not archived", model.ErrValidation)
	}
	id := rec.RecommendationID
	if id == "" {
		id = uuid.New().String()
	}
	var created time.Time
	row := a.db.QueryRowContext(ctx, `
        INSERT INTO recommendations (recommendation_id, actor_id, symptoms, summary, triage_level)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING creation_time
    `, id, rec.ActorID, rec.Symptoms, rec.Summary, string(rec.TriageLevel))
	if err := row.Scan(&created); err != nil {
		return err
	}
	rec.RecommendationID = id
	rec.CreationTime = created
	return nil
}

func (a *pgArchive) ListRecommendations(ctx context.Context, actorID string, limit, offset int) ([]*model.Recommendation, error) {
	rows, err := a.db.QueryContext(ctx, `
        SELECT recommendation_id, actor_id, symptoms, summary, triage_level, creation_time
        FROM recommendations
        WHERE actor_id=$1
        ORDER BY creation_time DESC
        LIMIT $2 OFFSET $3
    `, actorID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Recommendation{}
	for rows.Next() {
		var rec model.Recommendation
		var level string
		if err := rows.Scan(&rec.RecommendationID, &rec.ActorID, &rec.Symptoms, &rec.Summary, &level, &rec.CreationTime); err != nil {
			return nil, err
		}
		rec.TriageLevel = model.TriageLevel(level)
		out = append(out, &rec)
	}
	return out, rows.Err()
}

// HealthPing implements health.HealthPinger for the archive backend.
func (a *pgArchive) HealthPing(ctx context.Context) error {
	return a.db.PingContext(ctx)
}

// Package factory assembles configured collaborators for the service binary.
package factory

import (
	"context"
	"fmt"

	"github.com/haletree/symptom-intake/server/internal/archive"
	"github.com/haletree/symptom-intake/server/internal/archive/postgres"
	"github.com/haletree/symptom-intake/server/internal/auth"
	"github.com/haletree/symptom-intake/server/internal/config"
	"github.com/haletree/symptom-intake/server/internal/oracle"
	"github.com/haletree/symptom-intake/server/internal/oracle/anthropic"
	"github.com/haletree/symptom-intake/server/internal/oracle/ollama"
	"github.com/haletree/symptom-intake/server/internal/sessionstore"
	"github.com/haletree/symptom-intake/server/internal/sessionstore/memory"
	"github.com/haletree/symptom-intake/server/internal/sessionstore/sqlite"
)

// NewSessionStore builds the configured session store driver. The returned
// closer is a no-op for the in-memory driver.
func NewSessionStore(cfg *config.Config) (sessionstore.Store, func() error, error) {
	switch cfg.SessionStore {
	case "memory":
		return memory.New(), func() error { return nil }, nil
	case "sqlite":
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite session store: %w", err)
		}
		return sqlite.NewWithDB(db), db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported session store: %s", cfg.SessionStore)
	}
}

// NewOracle builds the configured question oracle provider.
func NewOracle(cfg *config.Config) (oracle.Client, error) {
	switch cfg.OracleProvider {
	case "ollama":
		return ollama.New(cfg.OracleURL, cfg.OracleModel, cfg.OracleTimeoutDuration()), nil
	case "anthropic":
		return anthropic.New(cfg.OracleModel), nil
	default:
		return nil, fmt.Errorf("unsupported oracle provider: %s", cfg.OracleProvider)
	}
}

// NewArchiver builds the recommendation archive. An empty DSN disables
// archiving: completed interviews of identified callers are simply dropped.
func NewArchiver(ctx context.Context, cfg *config.Config) (archive.Archiver, func() error, error) {
	if cfg.PostgresDSN == "" {
		return archive.Noop{}, func() error { return nil }, nil
	}
	db, err := postgres.Open(cfg.PostgresDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("open recommendation archive: %w", err)
	}
	if err := postgres.Bootstrap(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("bootstrap recommendation archive: %w", err)
	}
	return postgres.NewWithDB(db), db.Close, nil
}

// NewVerifier builds the bearer-token verifier from the static token table.
func NewVerifier(cfg *config.Config) (auth.Verifier, error) {
	return auth.NewStaticVerifierFromSpec(cfg.AuthTokens)
}

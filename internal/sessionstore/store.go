// Package sessionstore defines the ephemeral session persistence contract.
// Implementations live under internal/sessionstore/<driver>/ (memory,
// sqlite). The engine never assumes any driver-specific concurrency
// semantics beyond this contract.
package sessionstore

import (
	"context"
	"time"

	"github.com/haletree/symptom-intake/server/internal/model"
)

// Store is a key-value cache of serialized sessions with per-entry TTL.
//
// Get must perform a lazy expiry check: an entry whose ExpiresAt has passed
// is reported as model.ErrExpired and evicted, regardless of whether a
// background sweep has run. Put stamps ExpiresAt = now + ttl (sliding
// expiration is achieved by the engine re-putting on every mutation).
// Implementations must return deep copies so callers never share slices with
// the stored record.
type Store interface {
	Get(ctx context.Context, sessionID string) (*model.Session, error)
	// GetByActor returns the live session owned by an identity, if any.
	// Consumed only by the accessor facade.
	GetByActor(ctx context.Context, actorID string) (*model.Session, error)
	Put(ctx context.Context, s *model.Session, ttl time.Duration) error
	Remove(ctx context.Context, sessionID string) error
	// PurgeExpired removes entries whose TTL has lapsed and reports how many
	// were evicted. It must never remove a live entry and must be safe to
	// call concurrently with normal traffic.
	PurgeExpired(ctx context.Context) (int, error)
}

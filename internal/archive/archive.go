// Package archive defines durable persistence for completed recommendations.
// The engine calls it once per completed interview; anonymous results are
// never archived and archive failures never fail the interview flow.
package archive

import (
	"context"

	"github.com/haletree/symptom-intake/server/internal/model"
)

// Archiver stores completed recommendations keyed by caller identity.
type Archiver interface {
	SaveRecommendation(ctx context.Context, rec *model.Recommendation) error
	ListRecommendations(ctx context.Context, actorID string, limit, offset int) ([]*model.Recommendation, error)
}

// Noop discards recommendations; used when no archive backend is configured.
type Noop struct{}

func (Noop) SaveRecommendation(ctx context.Context, rec *model.Recommendation) error { return nil }

func (Noop) ListRecommendations(ctx context.Context, actorID string, limit, offset int) ([]*model.Recommendation, error) {
	return []*model.Recommendation{}, nil
}

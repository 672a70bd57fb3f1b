// Package oracle abstracts the external content-generation service that
// produces interview questions and the final recommendation. Providers live
// under internal/oracle/<provider>/ and share the prompt and parsing helpers
// here; the engine treats every provider failure as transient.
package oracle

import (
	"context"

	"github.com/haletree/symptom-intake/server/internal/model"
)

// Client is the generation contract.
//
// GeneratePhaseQuestions returns exactly model.QuestionsPerPhase new
// questions for the given phase, conditioned on the symptoms text and the
// entire question/answer history so far. A provider must fail, not truncate
// or pad, when the upstream returns a different count.
//
// GenerateRecommendation requires the full set of model.TotalQuestions
// answers; fewer is a precondition failure, not something to adapt to.
type Client interface {
	GeneratePhaseQuestions(ctx context.Context, phase int, symptoms string, asked []model.Question, answers []model.Answer) ([]model.Question, error)
	GenerateRecommendation(ctx context.Context, symptoms string, asked []model.Question, answers []model.Answer) (*model.Recommendation, error)
}

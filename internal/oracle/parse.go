package oracle

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/haletree/symptom-intake/server/internal/model"
)

// ParseQuestionList decodes a provider response into exactly
// model.QuestionsPerPhase questions. Any other count, or non-JSON content,
// is a hard failure.
func ParseQuestionList(raw string) ([]model.Question, error) {
	var texts []string
	if err := json.Unmarshal([]byte(extractJSON(raw, '[', ']')), &texts); err != nil {
		return nil, fmt.Errorf("malformed question list: %w", err)
	}
	if len(texts) != model.QuestionsPerPhase {
		return nil, fmt.Errorf("expected %d questions, got %d", model.QuestionsPerPhase, len(texts))
	}
	out := make([]model.Question, 0, len(texts))
	for _, t := range texts {
		t = strings.TrimSpace(t)
		if t == "" {
			return nil, fmt.Errorf("empty question text in response")
		}
		out = append(out, model.Question{
			QuestionID: uuid.New().String(),
			Text:       t,
			Kind:       model.QuestionYesNo,
		})
	}
	return out, nil
}

// ParseRecommendation decodes a provider response into a Recommendation.
// An unknown triage level is a failure, never silently defaulted.
func ParseRecommendation(raw string) (*model.Recommendation, error) {
	var body struct {
		Summary     string `json:"summary"`
		TriageLevel string `json:"triageLevel"`
	}
	if err := json.Unmarshal([]byte(extractJSON(raw, '{', '}')), &body); err != nil {
		return nil, fmt.Errorf("malformed recommendation: %w", err)
	}
	if strings.TrimSpace(body.Summary) == "" {
		return nil, fmt.Errorf("recommendation summary is empty")
	}
	level := model.TriageLevel(strings.ToLower(strings.TrimSpace(body.TriageLevel)))
	if !model.ValidTriageLevel(level) {
		return nil, fmt.Errorf("unknown triage level %q", body.TriageLevel)
	}
	return &model.Recommendation{
		RecommendationID: uuid.New().String(),
		Summary:          strings.TrimSpace(body.Summary),
		TriageLevel:      level,
		CreationTime:     time.Now().UTC(),
	}, nil
}

// extractJSON trims prose an LLM may wrap around the payload by slicing from
// the first opening to the last closing delimiter. Decoding still fails on
// anything that is not valid JSON in between.
func extractJSON(raw string, opening, closing byte) string {
	start := strings.IndexByte(raw, opening)
	end := strings.LastIndexByte(raw, closing)
	if start < 0 || end <= start {
		return raw
	}
	return raw[start : end+1]
}

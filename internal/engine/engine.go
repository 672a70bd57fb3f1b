// Package engine implements the diagnostic session state machine: session
// lifecycle, answer recording, phase transitions and completion. It is the
// only component permitted to mutate session state.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/haletree/symptom-intake/server/internal/archive"
	"github.com/haletree/symptom-intake/server/internal/model"
	"github.com/haletree/symptom-intake/server/internal/oracle"
	"github.com/haletree/symptom-intake/server/internal/sessionstore"
	"github.com/haletree/symptom-intake/server/internal/validate"
)

// Result is the outcome of a successful SubmitAnswer: either the next
// question of the already-extended question list, or the terminal
// recommendation for a completed interview.
type Result struct {
	NextQuestion   *model.Question       `json:"nextQuestion,omitempty"`
	Recommendation *model.Recommendation `json:"recommendation,omitempty"`
	Phase          int                   `json:"phase"`
	Answered       int                   `json:"answered"`
	Total          int                   `json:"total"`
}

// Engine drives interviews against an injected store, oracle and archive.
// All mutating operations for the same session id are serialized through a
// per-key lock; different sessions proceed fully in parallel.
type Engine struct {
	store    sessionstore.Store
	oracle   oracle.Client
	archiver archive.Archiver
	log      zerolog.Logger
	locks    *keyLock
	ttl      time.Duration
	now      func() time.Time
}

func New(store sessionstore.Store, oc oracle.Client, ar archive.Archiver, log zerolog.Logger) *Engine {
	if ar == nil {
		ar = archive.Noop{}
	}
	return &Engine{
		store:    store,
		oracle:   oc,
		archiver: ar,
		log:      log,
		locks:    newKeyLock(),
		ttl:      model.SessionTTL,
		now:      time.Now,
	}
}

// StartSession validates inputs, generates phase-1 questions and stores the
// new session. The session is never observable with fewer than a full phase
// of questions: if generation fails, no session is created.
func (e *Engine) StartSession(ctx context.Context, symptoms, actorID string) (*model.Session, error) {
	if err := validate.SymptomText(symptoms); err != nil {
		return nil, err
	}
	if err := validate.ActorID(actorID); err != nil {
		return nil, err
	}

	qs, err := e.oracle.GeneratePhaseQuestions(ctx, 1, symptoms, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrOracle, err)
	}
	if len(qs) != model.QuestionsPerPhase {
		return nil, fmt.Errorf("%w: phase 1 produced %d questions", model.ErrOracle, len(qs))
	}

	s := &model.Session{
		SessionID:    uuid.New().String(),
		ActorID:      actorID,
		Symptoms:     symptoms,
		Phase:        1,
		Questions:    qs,
		CreationTime: e.now().UTC(),
	}
	if err := e.store.Put(ctx, s, e.ttl); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	e.log.Info().Str("session_id", s.SessionID).Bool("anonymous", actorID == "").Msg("session started")
	return s, nil
}

// SubmitAnswer records one boolean answer, runs any due phase transition
// inside the same operation and persists the session with a refreshed TTL.
// On the final answer it generates the recommendation, removes the session
// and returns the recommendation instead of a next question.
//
// Re-submitting the most recently answered question overwrites the prior
// value, so callers may safely retry after a timeout. Overwriting any
// earlier answer is rejected.
func (e *Engine) SubmitAnswer(ctx context.Context, sessionID, questionID string, value bool, actorID string) (*Result, error) {
	if err := validate.SessionID(sessionID); err != nil {
		return nil, err
	}
	if err := validate.QuestionID(questionID); err != nil {
		return nil, err
	}
	if err := validate.ActorID(actorID); err != nil {
		return nil, err
	}

	unlock := e.locks.lock(sessionID)
	defer unlock()

	s, err := e.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := authorize(s, actorID); err != nil {
		return nil, err
	}

	qIdx := -1
	for i, q := range s.Questions {
		if q.QuestionID == questionID {
			qIdx = i
			break
		}
	}
	if qIdx < 0 {
		return nil, fmt.Errorf("%w: %s", model.ErrUnknownQuestion, questionID)
	}

	ans := model.Answer{QuestionID: questionID, Value: value, AnsweredAt: e.now().UTC()}
	switch {
	case qIdx == len(s.Answers):
		// The question at the cursor: a fresh answer.
		s.Answers = append(s.Answers, ans)
	case qIdx == len(s.Answers)-1:
		// Retry of the last recorded answer: overwrite value and timestamp.
		s.Answers[qIdx] = ans
	default:
		return nil, fmt.Errorf("%w: question %d is not open for answering (cursor at %d)",
			model.ErrInvariant, qIdx+1, s.Cursor())
	}

	// Phase transitions happen synchronously inside this operation; the
	// caller never observes a session with a partially generated phase.
	if err := e.extendDuePhases(ctx, s); err != nil {
		// The triggering answer stays recorded so a retry only repeats the
		// generation, not the answer.
		e.persistBestEffort(ctx, s)
		return nil, fmt.Errorf("%w: %v", model.ErrOracle, err)
	}

	if s.Completed() {
		return e.complete(ctx, s)
	}

	if err := e.store.Put(ctx, s, e.ttl); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	next := s.Questions[len(s.Answers)]
	return &Result{
		NextQuestion: &next,
		Phase:        s.Phase,
		Answered:     len(s.Answers),
		Total:        model.TotalQuestions,
	}, nil
}

// extendDuePhases generates every phase the recorded answers call for. More
// than one phase is only due when recovering from an earlier generation
// failure.
func (e *Engine) extendDuePhases(ctx context.Context, s *model.Session) error {
	for s.Phase < model.NumPhases && len(s.Answers) >= s.Phase*model.QuestionsPerPhase {
		next := s.Phase + 1
		qs, err := e.oracle.GeneratePhaseQuestions(ctx, next, s.Symptoms, s.Questions, s.Answers)
		if err != nil {
			return fmt.Errorf("phase %d: %v", next, err)
		}
		if len(qs) != model.QuestionsPerPhase {
			return fmt.Errorf("phase %d produced %d questions", next, len(qs))
		}
		s.Questions = append(s.Questions, qs...)
		s.Phase = next
		e.log.Info().Str("session_id", s.SessionID).Int("phase", next).Msg("phase generated")
	}
	return nil
}

func (e *Engine) complete(ctx context.Context, s *model.Session) (*Result, error) {
	rec, err := e.oracle.GenerateRecommendation(ctx, s.Symptoms, s.Questions, s.Answers)
	if err != nil {
		// Keep the session so the final answer can be retried; the overwrite
		// rule makes that retry idempotent.
		e.persistBestEffort(ctx, s)
		return nil, fmt.Errorf("%w: %v", model.ErrOracle, err)
	}
	rec.ActorID = s.ActorID
	rec.Symptoms = s.Symptoms

	if s.ActorID != "" {
		if err := e.archiver.SaveRecommendation(ctx, rec); err != nil {
			e.log.Warn().Err(err).Str("session_id", s.SessionID).Msg("recommendation archive failed")
		}
	}
	if err := e.store.Remove(ctx, s.SessionID); err != nil {
		e.log.Warn().Err(err).Str("session_id", s.SessionID).Msg("session removal failed")
	}
	e.log.Info().Str("session_id", s.SessionID).Str("triage", string(rec.TriageLevel)).Msg("interview completed")
	return &Result{
		Recommendation: rec,
		Phase:          s.Phase,
		Answered:       len(s.Answers),
		Total:          model.TotalQuestions,
	}, nil
}

// EnsurePhases regenerates any phase the session's answers already call for.
// Used by the accessor facade when a caller addresses a question whose phase
// failed to generate earlier.
func (e *Engine) EnsurePhases(ctx context.Context, sessionID, actorID string) (*model.Session, error) {
	if err := validate.SessionID(sessionID); err != nil {
		return nil, err
	}
	unlock := e.locks.lock(sessionID)
	defer unlock()

	s, err := e.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := authorize(s, actorID); err != nil {
		return nil, err
	}
	before := s.Phase
	if err := e.extendDuePhases(ctx, s); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrOracle, err)
	}
	if s.Phase != before {
		if err := e.store.Put(ctx, s, e.ttl); err != nil {
			return nil, fmt.Errorf("store session: %w", err)
		}
	}
	return s, nil
}

// GetSession returns a live session for progress display, enforcing the
// owner check. Reads do not slide the TTL.
func (e *Engine) GetSession(ctx context.Context, sessionID, actorID string) (*model.Session, error) {
	if err := validate.SessionID(sessionID); err != nil {
		return nil, err
	}
	s, err := e.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := authorize(s, actorID); err != nil {
		return nil, err
	}
	return s, nil
}

// IsSessionValid reports whether a live session exists. Reading an expired
// entry evicts it as a side effect of the store's lazy check.
func (e *Engine) IsSessionValid(ctx context.Context, sessionID string) bool {
	if err := validate.SessionID(sessionID); err != nil {
		return false
	}
	_, err := e.store.Get(ctx, sessionID)
	return err == nil
}

// ClearExpiredSessions sweeps lapsed entries. Failures are logged, never
// propagated; a live session is never removed.
func (e *Engine) ClearExpiredSessions(ctx context.Context) int {
	n, err := e.store.PurgeExpired(ctx)
	if err != nil {
		e.log.Error().Err(err).Msg("expired session sweep failed")
		return 0
	}
	if n > 0 {
		e.log.Debug().Int("evicted", n).Msg("expired sessions cleared")
	}
	return n
}

func authorize(s *model.Session, actorID string) error {
	if s.ActorID != "" && s.ActorID != actorID {
		return model.ErrUnauthorized
	}
	return nil
}

func (e *Engine) persistBestEffort(ctx context.Context, s *model.Session) {
	if err := e.store.Put(ctx, s, e.ttl); err != nil {
		e.log.Error().Err(err).Str("session_id", s.SessionID).Msg("session persist failed")
	}
}

// Package facade reconciles the two ways a caller can address an interview:
// anonymously by session id, or as an authenticated identity that owns at
// most one active session. It is the only place the identity-to-session
// mapping is consulted; the engine itself has a single id-based code path.
package facade

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/haletree/symptom-intake/server/internal/engine"
	"github.com/haletree/symptom-intake/server/internal/model"
	"github.com/haletree/symptom-intake/server/internal/sessionstore"
	"github.com/haletree/symptom-intake/server/internal/validate"
)

type Facade struct {
	engine *engine.Engine
	store  sessionstore.Store
	group  singleflight.Group
	log    zerolog.Logger
}

func New(e *engine.Engine, st sessionstore.Store, log zerolog.Logger) *Facade {
	return &Facade{engine: e, store: st, log: log}
}

// GetOrCreateSession returns the identity's live session, starting a new one
// only when none exists. Concurrent calls for the same identity collapse to
// a single StartSession, so an identity never ends up with two sessions.
func (f *Facade) GetOrCreateSession(ctx context.Context, actorID, symptoms string) (*model.Session, error) {
	if err := validate.RequiredActorID(actorID); err != nil {
		return nil, err
	}
	v, err, _ := f.group.Do(actorID, func() (interface{}, error) {
		s, err := f.store.GetByActor(ctx, actorID)
		if err == nil {
			return s, nil
		}
		if !errors.Is(err, model.ErrNotFound) && !errors.Is(err, model.ErrExpired) {
			return nil, err
		}
		return f.engine.StartSession(ctx, symptoms, actorID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.Session), nil
}

// QuestionByNumber translates 1-based question addressing into the engine's
// id-based model. When the requested number falls in a phase whose earlier
// generation failed, the missing phase is generated on demand; a number
// beyond what the recorded answers permit is a hard failure.
func (f *Facade) QuestionByNumber(ctx context.Context, actorID string, n int) (*model.Question, *model.Session, error) {
	if err := validate.QuestionNumber(n); err != nil {
		return nil, nil, err
	}
	s, err := f.GetOrCreateSession(ctx, actorID, "")
	if err != nil {
		return nil, nil, err
	}
	if n > len(s.Questions) {
		s, err = f.engine.EnsurePhases(ctx, s.SessionID, actorID)
		if err != nil {
			return nil, nil, err
		}
	}
	if n > len(s.Questions) {
		return nil, nil, fmt.Errorf("%w: question %d is not generated yet (%d available)",
			model.ErrInvariant, n, len(s.Questions))
	}
	q := s.Questions[n-1]
	return &q, s, nil
}

// AnswerByNumber records an answer addressed by question number for the
// identity's active session.
func (f *Facade) AnswerByNumber(ctx context.Context, actorID string, n int, value bool) (*engine.Result, error) {
	q, s, err := f.QuestionByNumber(ctx, actorID, n)
	if err != nil {
		return nil, err
	}
	return f.engine.SubmitAnswer(ctx, s.SessionID, q.QuestionID, value, actorID)
}

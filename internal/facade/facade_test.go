package facade

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haletree/symptom-intake/server/internal/engine"
	"github.com/haletree/symptom-intake/server/internal/model"
	"github.com/haletree/symptom-intake/server/internal/oracle/oracletest"
	"github.com/haletree/symptom-intake/server/internal/sessionstore/memory"
)

func newFacade(t *testing.T) (*Facade, *oracletest.Client) {
	t.Helper()
	st := memory.New()
	oc := oracletest.New()
	e := engine.New(st, oc, nil, zerolog.Nop())
	return New(e, st, zerolog.Nop()), oc
}

func TestGetOrCreateSession(t *testing.T) {
	f, oc := newFacade(t)
	ctx := context.Background()

	s1, err := f.GetOrCreateSession(ctx, "alice", "sore throat")
	require.NoError(t, err)
	assert.Equal(t, "alice", s1.ActorID)

	// A second call returns the same session, not a new one.
	s2, err := f.GetOrCreateSession(ctx, "alice", "different text")
	require.NoError(t, err)
	assert.Equal(t, s1.SessionID, s2.SessionID)
	assert.Equal(t, 1, oc.PhaseCalls(1))

	// A different identity gets its own session.
	s3, err := f.GetOrCreateSession(ctx, "bob", "")
	require.NoError(t, err)
	assert.NotEqual(t, s1.SessionID, s3.SessionID)

	// Identity is mandatory on this path.
	_, err = f.GetOrCreateSession(ctx, "", "")
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestGetOrCreateSession_ConcurrentSingleSession(t *testing.T) {
	f, oc := newFacade(t)
	ctx := context.Background()

	const n = 10
	ids := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := f.GetOrCreateSession(ctx, "carol", "")
			if err == nil {
				ids[i] = s.SessionID
			}
		}(i)
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		assert.Equal(t, ids[0], ids[i], "all callers must land on one session")
	}
	assert.Equal(t, 1, oc.PhaseCalls(1), "exactly one session started")
}

func TestQuestionByNumber(t *testing.T) {
	f, _ := newFacade(t)
	ctx := context.Background()

	q1, s, err := f.QuestionByNumber(ctx, "alice", 1)
	require.NoError(t, err)
	assert.Equal(t, s.Questions[0].QuestionID, q1.QuestionID)

	// Question 7 belongs to phase 2, which the answers do not justify yet.
	_, _, err = f.QuestionByNumber(ctx, "alice", 7)
	assert.ErrorIs(t, err, model.ErrInvariant)

	// Out-of-range numbers are validation failures.
	_, _, err = f.QuestionByNumber(ctx, "alice", 0)
	assert.ErrorIs(t, err, model.ErrValidation)
	_, _, err = f.QuestionByNumber(ctx, "alice", model.TotalQuestions+1)
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestAnswerByNumber(t *testing.T) {
	f, oc := newFacade(t)
	ctx := context.Background()

	for i := 1; i <= model.QuestionsPerPhase; i++ {
		res, err := f.AnswerByNumber(ctx, "alice", i, i%2 == 0)
		require.NoError(t, err)
		assert.Equal(t, i, res.Answered)
	}

	// The boundary answer extended the interview; question 6 is now
	// addressable and phase 2 was generated exactly once.
	assert.Equal(t, 1, oc.PhaseCalls(2))
	q6, s, err := f.QuestionByNumber(ctx, "alice", 6)
	require.NoError(t, err)
	assert.Equal(t, s.Questions[5].QuestionID, q6.QuestionID)
	assert.Equal(t, 2, s.Phase)
}

func TestQuestionByNumber_RegeneratesFailedPhase(t *testing.T) {
	f, oc := newFacade(t)
	ctx := context.Background()

	for i := 1; i <= 4; i++ {
		_, err := f.AnswerByNumber(ctx, "alice", i, true)
		require.NoError(t, err)
	}
	oc.FailPhase(2, 1)
	_, err := f.AnswerByNumber(ctx, "alice", 5, true)
	require.ErrorIs(t, err, model.ErrOracle)

	// Asking for question 6 triggers on-demand generation of the phase the
	// failed transition left missing.
	q6, s, err := f.QuestionByNumber(ctx, "alice", 6)
	require.NoError(t, err)
	assert.NotNil(t, q6)
	assert.Equal(t, 2, s.Phase)
}

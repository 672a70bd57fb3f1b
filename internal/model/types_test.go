package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSession() *Session {
	s := &Session{
		SessionID:    "s1",
		ActorID:      "alice",
		Phase:        1,
		CreationTime: time.Now().UTC(),
	}
	for i := 0; i < QuestionsPerPhase; i++ {
		s.Questions = append(s.Questions, Question{
			QuestionID: string(rune('a' + i)),
			Text:       "Any fever?",
			Kind:       QuestionYesNo,
		})
	}
	s.Answers = append(s.Answers, Answer{QuestionID: "a", Value: true, AnsweredAt: time.Now().UTC()})
	return s
}

func TestSessionCursorAndCompletion(t *testing.T) {
	s := sampleSession()
	assert.Equal(t, 2, s.Cursor())
	assert.False(t, s.Completed())

	for len(s.Answers) < TotalQuestions {
		s.Answers = append(s.Answers, Answer{QuestionID: "x", Value: false})
	}
	assert.Equal(t, TotalQuestions+1, s.Cursor())
	assert.True(t, s.Completed())
}

func TestSessionLookups(t *testing.T) {
	s := sampleSession()

	a, ok := s.AnswerFor("a")
	require.True(t, ok)
	assert.True(t, a.Value)
	_, ok = s.AnswerFor("b")
	assert.False(t, ok)

	q, ok := s.QuestionByID("c")
	require.True(t, ok)
	assert.Equal(t, "c", q.QuestionID)
	_, ok = s.QuestionByID("zz")
	assert.False(t, ok)
}

func TestSessionCloneDoesNotAlias(t *testing.T) {
	s := sampleSession()
	c := s.Clone()

	c.Questions[0].Text = "mutated"
	c.Answers[0].Value = false

	assert.Equal(t, "Any fever?", s.Questions[0].Text)
	assert.True(t, s.Answers[0].Value)
}

func TestPhaseDescription(t *testing.T) {
	assert.Equal(t, "baseline constitutional patterns", PhaseDescription(1))
	assert.Equal(t, "organ-system specialization", PhaseDescription(2))
	assert.Equal(t, "syndrome differentiation", PhaseDescription(3))
	assert.Empty(t, PhaseDescription(0))
	assert.Empty(t, PhaseDescription(4))
}

func TestValidTriageLevel(t *testing.T) {
	for _, l := range []TriageLevel{TriageSelfCare, TriageRoutine, TriageUrgent, TriageEmergency} {
		assert.True(t, ValidTriageLevel(l))
	}
	assert.False(t, ValidTriageLevel("soon"))
	assert.False(t, ValidTriageLevel(""))
}

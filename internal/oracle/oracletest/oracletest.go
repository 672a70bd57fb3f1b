// Package oracletest provides a scripted oracle.Client for engine and API
// tests.
package oracletest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/haletree/symptom-intake/server/internal/model"
	"github.com/haletree/symptom-intake/server/internal/oracle"
)

// ErrScripted is the failure injected by FailPhase / FailRecommendation.
var ErrScripted = errors.New("scripted oracle failure")

// Client generates deterministic questions and counts every call, so tests
// can assert that a phase was generated exactly once. Failure injection is
// one-shot per arm: the next matching call fails, later calls succeed.
type Client struct {
	mu sync.Mutex

	phaseCalls   map[int]int
	recCalls     int
	failPhases   map[int]int // remaining injected failures per phase
	failRecs     int
	questionSeq  int
	Recommend    *model.Recommendation // optional canned recommendation
	LastSymptoms string
}

var _ oracle.Client = (*Client)(nil)

func New() *Client {
	return &Client{phaseCalls: map[int]int{}, failPhases: map[int]int{}}
}

// FailPhase makes the next n GeneratePhaseQuestions calls for the phase fail.
func (c *Client) FailPhase(phase, n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failPhases[phase] = n
}

// FailRecommendation makes the next n GenerateRecommendation calls fail.
func (c *Client) FailRecommendation(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failRecs = n
}

// PhaseCalls reports how many times a phase has been generated.
func (c *Client) PhaseCalls(phase int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phaseCalls[phase]
}

// RecommendationCalls reports how many times the artifact was generated.
func (c *Client) RecommendationCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recCalls
}

func (c *Client) GeneratePhaseQuestions(ctx context.Context, phase int, symptoms string, asked []model.Question, answers []model.Answer) ([]model.Question, error) {
	if _, err := oracle.BuildPhasePrompt(phase, symptoms, asked, answers); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.phaseCalls[phase]++
	c.LastSymptoms = symptoms
	if c.failPhases[phase] > 0 {
		c.failPhases[phase]--
		return nil, ErrScripted
	}
	out := make([]model.Question, 0, model.QuestionsPerPhase)
	for i := 0; i < model.QuestionsPerPhase; i++ {
		c.questionSeq++
		out = append(out, model.Question{
			QuestionID: fmt.Sprintf("q-%d-%d", phase, c.questionSeq),
			Text:       fmt.Sprintf("Scripted question %d for phase %d?", i+1, phase),
			Kind:       model.QuestionYesNo,
		})
	}
	return out, nil
}

func (c *Client) GenerateRecommendation(ctx context.Context, symptoms string, asked []model.Question, answers []model.Answer) (*model.Recommendation, error) {
	if _, err := oracle.BuildRecommendationPrompt(symptoms, asked, answers); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recCalls++
	if c.failRecs > 0 {
		c.failRecs--
		return nil, ErrScripted
	}
	if c.Recommend != nil {
		out := *c.Recommend
		return &out, nil
	}
	return &model.Recommendation{
		RecommendationID: fmt.Sprintf("rec-%d", c.recCalls),
		Summary:          "Rest and monitor symptoms for 48 hours.",
		TriageLevel:      model.TriageSelfCare,
		CreationTime:     time.Now().UTC(),
	}, nil
}

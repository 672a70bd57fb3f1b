package model

import "time"

// Interview protocol constants. These are part of the protocol contract and
// are not runtime-configurable.
const (
	QuestionsPerPhase = 5
	NumPhases         = 3
	TotalQuestions    = QuestionsPerPhase * NumPhases

	// SessionTTL is the sliding lifetime of a session. Every successful
	// mutation pushes ExpiresAt to now + SessionTTL.
	SessionTTL = time.Hour
)

// QuestionKind enumerates supported question types.
type QuestionKind string

const (
	QuestionYesNo QuestionKind = "yes/no"
)

// Question is one generated interview question. QuestionID is unique within
// its session.
type Question struct {
	QuestionID string       `json:"questionId"`
	Text       string       `json:"text"`
	Kind       QuestionKind `json:"kind"`
}

// Answer records a single boolean response. Answers are append-only except
// that the most recently recorded answer may be overwritten by a retry.
type Answer struct {
	QuestionID string    `json:"questionId"`
	Value      bool      `json:"value"`
	AnsweredAt time.Time `json:"answeredAt"`
}

// Session is the mutable record of one in-progress interview.
//
// ActorID is empty for anonymous sessions; once set it never changes.
// Questions grows by exactly QuestionsPerPhase at creation and at each phase
// transition. Answers holds one entry per answered question, in order.
type Session struct {
	SessionID    string     `json:"sessionId"`
	ActorID      string     `json:"actorId,omitempty"`
	Symptoms     string     `json:"symptoms,omitempty"`
	Phase        int        `json:"phase"`
	Questions    []Question `json:"questions"`
	Answers      []Answer   `json:"answers"`
	CreationTime time.Time  `json:"creationTime"`
	ExpiresAt    time.Time  `json:"expiresAt"`
}

// Cursor returns the 1-based index of the next unanswered question (1..16).
// A value above TotalQuestions means the interview is complete.
func (s *Session) Cursor() int { return len(s.Answers) + 1 }

// Completed reports whether all questions have been answered.
func (s *Session) Completed() bool { return len(s.Answers) >= TotalQuestions }

// AnswerFor returns the recorded answer for a question, if any.
func (s *Session) AnswerFor(questionID string) (Answer, bool) {
	for _, a := range s.Answers {
		if a.QuestionID == questionID {
			return a, true
		}
	}
	return Answer{}, false
}

// QuestionByID returns the question with the given id, if it has been
// generated for this session.
func (s *Session) QuestionByID(questionID string) (Question, bool) {
	for _, q := range s.Questions {
		if q.QuestionID == questionID {
			return q, true
		}
	}
	return Question{}, false
}

// Clone returns a deep copy so callers can hand sessions across goroutines
// without sharing the underlying slices.
func (s *Session) Clone() *Session {
	out := *s
	out.Questions = append([]Question(nil), s.Questions...)
	out.Answers = append([]Answer(nil), s.Answers...)
	return &out
}

// PhaseDescription maps a phase number to its clinical focus. Derived on
// demand wherever it is displayed; never stored on the session.
func PhaseDescription(phase int) string {
	switch phase {
	case 1:
		return "baseline constitutional patterns"
	case 2:
		return "organ-system specialization"
	case 3:
		return "syndrome differentiation"
	default:
		return ""
	}
}

// TriageLevel classifies a completed interview's recommendation.
type TriageLevel string

const (
	TriageSelfCare  TriageLevel = "self-care"
	TriageRoutine   TriageLevel = "routine"
	TriageUrgent    TriageLevel = "urgent"
	TriageEmergency TriageLevel = "emergency"
)

// ValidTriageLevel reports whether the level is one of the known values.
func ValidTriageLevel(l TriageLevel) bool {
	switch l {
	case TriageSelfCare, TriageRoutine, TriageUrgent, TriageEmergency:
		return true
	}
	return false
}

// Recommendation is the final derived artifact of a completed interview.
// The engine hands it to the archive collaborator and does not retain it.
type Recommendation struct {
	RecommendationID string      `json:"recommendationId"`
	ActorID          string      `json:"actorId,omitempty"`
	Symptoms         string      `json:"symptoms,omitempty"`
	Summary          string      `json:"summary"`
	TriageLevel      TriageLevel `json:"triageLevel"`
	CreationTime     time.Time   `json:"creationTime"`
}

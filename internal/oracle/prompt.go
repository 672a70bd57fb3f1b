package oracle

import (
	"fmt"
	"strings"

	"github.com/haletree/symptom-intake/server/internal/model"
)

// BuildPhasePrompt renders the question-generation prompt for a phase. It
// validates the phase number and that the history is consistent with the
// phase being requested (all prior-phase questions answered).
func BuildPhasePrompt(phase int, symptoms string, asked []model.Question, answers []model.Answer) (string, error) {
	if phase < 1 || phase > model.NumPhases {
		return "", fmt.Errorf("phase %d out of range", phase)
	}
	want := (phase - 1) * model.QuestionsPerPhase
	if len(answers) != want {
		return "", fmt.Errorf("phase %d requires %d prior answers, have %d", phase, want, len(answers))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are generating a structured symptom interview.\n")
	if symptoms != "" {
		fmt.Fprintf(&b, "The patient initially reported: %q\n", symptoms)
	} else {
		b.WriteString("No initial complaint was given; run a generic interview.\n")
	}
	fmt.Fprintf(&b, "Focus of this stage: %s.\n", model.PhaseDescription(phase))
	if len(answers) > 0 {
		b.WriteString("\nAnswers so far:\n")
		b.WriteString(Transcript(asked, answers))
	}
	fmt.Fprintf(&b, "\nProduce exactly %d new yes/no questions for this stage.\n", model.QuestionsPerPhase)
	b.WriteString(`Respond with only a JSON array of question strings, e.g. ["...","...","...","...","..."].`)
	return b.String(), nil
}

// BuildRecommendationPrompt renders the final-artifact prompt. The full
// answer set is a hard precondition.
func BuildRecommendationPrompt(symptoms string, asked []model.Question, answers []model.Answer) (string, error) {
	if len(answers) != model.TotalQuestions {
		return "", fmt.Errorf("recommendation requires %d answers, have %d", model.TotalQuestions, len(answers))
	}

	var b strings.Builder
	b.WriteString("A structured symptom interview has completed.\n")
	if symptoms != "" {
		fmt.Fprintf(&b, "Initial complaint: %q\n", symptoms)
	}
	b.WriteString("\nFull transcript:\n")
	b.WriteString(Transcript(asked, answers))
	b.WriteString("\nWrite a short plain-language recommendation and classify the urgency.\n")
	b.WriteString(`Respond with only a JSON object: {"summary": "...", "triageLevel": "self-care|routine|urgent|emergency"}.`)
	return b.String(), nil
}

// Transcript renders the ordered question/answer history as prompt text.
// Answers reference questions by id; unanswered questions are omitted.
func Transcript(asked []model.Question, answers []model.Answer) string {
	text := make(map[string]string, len(asked))
	for _, q := range asked {
		text[q.QuestionID] = q.Text
	}
	var b strings.Builder
	for i, a := range answers {
		v := "no"
		if a.Value {
			v = "yes"
		}
		fmt.Fprintf(&b, "%d. %s %s\n", i+1, text[a.QuestionID], v)
	}
	return b.String()
}

package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/haletree/symptom-intake/server/internal/api/respond"
	"github.com/haletree/symptom-intake/server/internal/auth"
	"github.com/haletree/symptom-intake/server/internal/facade"
	"github.com/haletree/symptom-intake/server/internal/model"
)

// MeHandler serves the identity-addressed convenience surface: identified
// callers interact with "their" session by question number and never need to
// hold a session id.
type MeHandler struct {
	fc       *facade.Facade
	verifier auth.Verifier
}

func NewMeHandler(fc *facade.Facade, verifier auth.Verifier) *MeHandler {
	return &MeHandler{fc: fc, verifier: verifier}
}

// GetOrCreateSession GET /api/me/session
//
// The optional symptoms query parameter seeds a fresh interview; it is
// ignored when the caller already has a live session.
func (h *MeHandler) GetOrCreateSession(w http.ResponseWriter, r *http.Request) {
	actorID, err := requiredActor(h.verifier, r)
	if err != nil {
		respond.WriteUnauthorized(w, err.Error())
		return
	}

	s, err := h.fc.GetOrCreateSession(r.Context(), actorID, r.URL.Query().Get("symptoms"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, newSessionView(s))
}

// GetQuestion GET /api/me/session/questions/{n}
func (h *MeHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	actorID, err := requiredActor(h.verifier, r)
	if err != nil {
		respond.WriteUnauthorized(w, err.Error())
		return
	}

	n, err := questionNumber(r)
	if err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	q, s, err := h.fc.QuestionByNumber(r.Context(), actorID, n)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, struct {
		Question *model.Question `json:"question"`
		Number   int             `json:"number"`
		Phase    int             `json:"phase"`
		Cursor   int             `json:"cursor"`
	}{Question: q, Number: n, Phase: s.Phase, Cursor: s.Cursor()})
}

// SubmitAnswer POST /api/me/session/questions/{n}/answer
func (h *MeHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	actorID, err := requiredActor(h.verifier, r)
	if err != nil {
		respond.WriteUnauthorized(w, err.Error())
		return
	}

	n, err := questionNumber(r)
	if err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	var req struct {
		Value *bool `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "invalid JSON")
		return
	}
	if req.Value == nil {
		respond.WriteBadRequest(w, "value is required")
		return
	}

	out, err := h.fc.AnswerByNumber(r.Context(), actorID, n, *req.Value)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

func questionNumber(r *http.Request) (int, error) {
	return strconv.Atoi(mux.Vars(r)["n"])
}

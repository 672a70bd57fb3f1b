package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/haletree/symptom-intake/server/internal/api/respond"
	"github.com/haletree/symptom-intake/server/internal/auth"
	"github.com/haletree/symptom-intake/server/internal/engine"
	"github.com/haletree/symptom-intake/server/internal/facade"
	"github.com/haletree/symptom-intake/server/internal/model"
)

// SessionHandler serves the session-id addressed interview endpoints. Both
// anonymous and identified callers use these; identity only matters for
// authorization against the session's owner. Identified session creation is
// routed through the facade, which owns the identity-to-session mapping and
// guarantees at most one live session per identity.
type SessionHandler struct {
	eng      *engine.Engine
	fc       *facade.Facade
	verifier auth.Verifier
}

func NewSessionHandler(eng *engine.Engine, fc *facade.Facade, verifier auth.Verifier) *SessionHandler {
	return &SessionHandler{eng: eng, fc: fc, verifier: verifier}
}

// sessionView is the read shape of a session: progress plus liveness, never
// the recorded answers of other phases than the client already knows.
type sessionView struct {
	SessionID        string           `json:"sessionId"`
	Phase            int              `json:"phase"`
	PhaseDescription string           `json:"phaseDescription"`
	Cursor           int              `json:"cursor"`
	Answered         int              `json:"answered"`
	Total            int              `json:"total"`
	Questions        []model.Question `json:"questions"`
	Completed        bool             `json:"completed"`
	ExpiresInSeconds int64            `json:"expiresInSeconds"`
}

func newSessionView(s *model.Session) sessionView {
	remaining := int64(time.Until(s.ExpiresAt) / time.Second)
	if remaining < 0 {
		remaining = 0
	}
	return sessionView{
		SessionID:        s.SessionID,
		Phase:            s.Phase,
		PhaseDescription: model.PhaseDescription(s.Phase),
		Cursor:           s.Cursor(),
		Answered:         len(s.Answers),
		Total:            model.TotalQuestions,
		Questions:        s.Questions,
		Completed:        s.Completed(),
		ExpiresInSeconds: remaining,
	}
}

// StartSession POST /api/sessions
func (h *SessionHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	actorID, err := optionalActor(h.verifier, r)
	if err != nil {
		respond.WriteUnauthorized(w, err.Error())
		return
	}

	var req struct {
		Symptoms string `json:"symptoms"`
	}
	// An empty body means a generic interview; symptoms are optional.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respond.WriteBadRequest(w, "invalid JSON")
		return
	}

	// Identified callers get-or-create through the facade so a repeated
	// start returns their existing live session instead of orphaning it.
	if actorID != "" {
		s, err := h.fc.GetOrCreateSession(r.Context(), actorID, req.Symptoms)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		respond.WriteJSON(w, http.StatusOK, newSessionView(s))
		return
	}

	s, err := h.eng.StartSession(r.Context(), req.Symptoms, actorID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, newSessionView(s))
}

// GetSession GET /api/sessions/{sessionId}
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	actorID, err := optionalActor(h.verifier, r)
	if err != nil {
		respond.WriteUnauthorized(w, err.Error())
		return
	}

	sessionID := mux.Vars(r)["sessionId"]
	s, err := h.eng.GetSession(r.Context(), sessionID, actorID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, newSessionView(s))
}

// SubmitAnswer POST /api/sessions/{sessionId}/answers
func (h *SessionHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	actorID, err := optionalActor(h.verifier, r)
	if err != nil {
		respond.WriteUnauthorized(w, err.Error())
		return
	}

	sessionID := mux.Vars(r)["sessionId"]
	var req struct {
		QuestionID string `json:"questionId"`
		Value      *bool  `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "invalid JSON")
		return
	}
	if req.Value == nil {
		respond.WriteBadRequest(w, "value is required")
		return
	}

	out, err := h.eng.SubmitAnswer(r.Context(), sessionID, req.QuestionID, *req.Value, actorID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

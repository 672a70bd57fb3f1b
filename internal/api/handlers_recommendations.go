package api

import (
	"net/http"
	"strconv"

	"github.com/haletree/symptom-intake/server/internal/api/respond"
	"github.com/haletree/symptom-intake/server/internal/archive"
	"github.com/haletree/symptom-intake/server/internal/auth"
	"github.com/haletree/symptom-intake/server/internal/model"
	"github.com/haletree/symptom-intake/server/internal/validate"
)

const defaultListLimit = 20

// RecommendationHandler lists a caller's archived recommendations.
type RecommendationHandler struct {
	ar       archive.Archiver
	verifier auth.Verifier
}

func NewRecommendationHandler(ar archive.Archiver, verifier auth.Verifier) *RecommendationHandler {
	return &RecommendationHandler{ar: ar, verifier: verifier}
}

// List GET /api/recommendations?limit=&offset=
func (h *RecommendationHandler) List(w http.ResponseWriter, r *http.Request) {
	actorID, err := requiredActor(h.verifier, r)
	if err != nil {
		respond.WriteUnauthorized(w, err.Error())
		return
	}

	limit, offset := defaultListLimit, 0
	q := r.URL.Query()
	if v := q.Get("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil {
			respond.WriteBadRequest(w, "limit must be an integer")
			return
		}
	}
	if v := q.Get("offset"); v != "" {
		if offset, err = strconv.Atoi(v); err != nil {
			respond.WriteBadRequest(w, "offset must be an integer")
			return
		}
	}
	if err := validate.Pagination(limit, offset); err != nil {
		writeDomainError(w, err)
		return
	}

	recs, err := h.ar.ListRecommendations(r.Context(), actorID, limit, offset)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if recs == nil {
		recs = []*model.Recommendation{}
	}
	respond.WriteJSON(w, http.StatusOK, struct {
		Recommendations []*model.Recommendation `json:"recommendations"`
		Count           int                     `json:"count"`
	}{Recommendations: recs, Count: len(recs)})
}

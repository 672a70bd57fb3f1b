package api

import (
	"errors"
	"net/http"

	"github.com/haletree/symptom-intake/server/internal/api/respond"
	"github.com/haletree/symptom-intake/server/internal/model"
)

// writeDomainError maps engine and store sentinels onto HTTP status codes.
// Anything unrecognized is a 500.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrValidation):
		respond.WriteBadRequest(w, err.Error())
	case errors.Is(err, model.ErrUnauthorized):
		respond.WriteUnauthorized(w, err.Error())
	case errors.Is(err, model.ErrExpired):
		respond.WriteExpired(w, err.Error())
	case errors.Is(err, model.ErrNotFound):
		respond.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, model.ErrUnknownQuestion), errors.Is(err, model.ErrInvariant):
		respond.WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, model.ErrOracle):
		respond.WriteError(w, http.StatusBadGateway, "question oracle unavailable, retry the request")
	default:
		respond.WriteInternalError(w, err.Error())
	}
}

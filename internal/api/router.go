package api

import (
	"github.com/gorilla/mux"

	"github.com/haletree/symptom-intake/server/internal/api/recovery"
	"github.com/haletree/symptom-intake/server/internal/archive"
	"github.com/haletree/symptom-intake/server/internal/auth"
	"github.com/haletree/symptom-intake/server/internal/engine"
	"github.com/haletree/symptom-intake/server/internal/facade"
	"github.com/haletree/symptom-intake/server/internal/health"
)

// Deps are the wired collaborators the router mounts handlers over.
type Deps struct {
	Engine   *engine.Engine
	Facade   *facade.Facade
	Archive  archive.Archiver
	Verifier auth.Verifier
	Monitor  *health.Monitor
	Store    health.Pinger // session store probe for /api/health/db; may be nil
}

// NewRouter mounts the full API surface.
func NewRouter(d Deps) *mux.Router {
	router := mux.NewRouter()

	router.Use(recovery.Middleware)

	sessionHandler := NewSessionHandler(d.Engine, d.Facade, d.Verifier)
	meHandler := NewMeHandler(d.Facade, d.Verifier)
	recHandler := NewRecommendationHandler(d.Archive, d.Verifier)
	healthHandler := NewHealthHandler(d.Monitor, d.Store)

	// Health endpoints
	router.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")
	router.HandleFunc("/api/health/db", healthHandler.CheckStorageHealth).Methods("GET")

	// Session-id addressed interview endpoints
	router.HandleFunc("/api/sessions", sessionHandler.StartSession).Methods("POST")
	router.HandleFunc("/api/sessions/{sessionId:[0-9a-fA-F-]{36}}", sessionHandler.GetSession).Methods("GET")
	router.HandleFunc("/api/sessions/{sessionId:[0-9a-fA-F-]{36}}/answers", sessionHandler.SubmitAnswer).Methods("POST")

	// Identity addressed endpoints
	router.HandleFunc("/api/me/session", meHandler.GetOrCreateSession).Methods("GET")
	router.HandleFunc("/api/me/session/questions/{n:[0-9]+}", meHandler.GetQuestion).Methods("GET")
	router.HandleFunc("/api/me/session/questions/{n:[0-9]+}/answer", meHandler.SubmitAnswer).Methods("POST")

	// Archived recommendations
	router.HandleFunc("/api/recommendations", recHandler.List).Methods("GET")

	return router
}

package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/haletree/symptom-intake/server/internal/api"
	"github.com/haletree/symptom-intake/server/internal/config"
	"github.com/haletree/symptom-intake/server/internal/engine"
	"github.com/haletree/symptom-intake/server/internal/facade"
	"github.com/haletree/symptom-intake/server/internal/health"
	"github.com/haletree/symptom-intake/server/internal/platform/factory"
	"github.com/haletree/symptom-intake/server/internal/platform/logger"
	"github.com/haletree/symptom-intake/server/internal/sessionstore/memory"
)

func main() {
	// Optional session-store flag override (memory | sqlite)
	storeFlag := flag.String("session-store", "", "Override SYMPTOM_INTAKE_SESSION_STORE (memory, sqlite)")
	flag.Parse()

	log := logger.New("intake-service")

	cfg, err := config.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if !cfg.IsProduction() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if *storeFlag != "" {
		cfg.SessionStore = *storeFlag
		if err := cfg.ResolveDefaults(); err != nil {
			log.Fatal().Err(err).Msg("Invalid session-store override")
		}
	}

	log.Info().
		Str("environment", string(cfg.Environment)).
		Str("session_store", cfg.SessionStore).
		Str("oracle_provider", cfg.OracleProvider).
		Int("http_port", cfg.HTTPPort).
		Msg("Intake service starting")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// -------- Collaborators -----------------
	store, closeStore, err := factory.NewSessionStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Session store unavailable")
	}
	defer func() { _ = closeStore() }()

	oc, err := factory.NewOracle(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Oracle provider unavailable")
	}

	ar, closeArchive, err := factory.NewArchiver(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Recommendation archive unavailable")
	}
	defer func() { _ = closeArchive() }()

	verifier, err := factory.NewVerifier(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid auth token table")
	}

	eng := engine.New(store, oc, ar, log)
	fc := facade.New(eng, store, log)

	// -------- Background sweeps -------------
	if ms, ok := store.(*memory.Store); ok {
		ms.StartJanitor(ctx, cfg.SweepInterval(), log)
	} else {
		go func() {
			ticker := time.NewTicker(cfg.SweepInterval())
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					eng.ClearExpiredSessions(ctx)
				}
			}
		}()
	}

	// -------- Health monitor ----------------
	var checkers []*health.Checker
	var storePinger health.Pinger
	if p, ok := store.(health.Pinger); ok {
		storePinger = p
		checkers = append(checkers, health.NewChecker("session_store", p, log))
	}
	if p, ok := oc.(health.Pinger); ok {
		checkers = append(checkers, health.NewChecker("oracle", p, log))
	}
	if p, ok := ar.(health.Pinger); ok {
		checkers = append(checkers, health.NewChecker("archive", p, log))
	}
	monitor := health.NewMonitor(checkers...)
	monitor.Start(ctx, 30*time.Second)

	// -------- Router & Server ---------------
	router := api.NewRouter(api.Deps{
		Engine:   eng,
		Facade:   fc,
		Archive:  ar,
		Verifier: verifier,
		Monitor:  monitor,
		Store:    storePinger,
	})
	server := &http.Server{
		Addr:         cfg.GetHTTPAddr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * cfg.OracleTimeoutDuration(),
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-ctx.Done()

	log.Info().Msg("Shutting down server")
	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
		os.Exit(1)
	}
	log.Info().Msg("Server exited")
}

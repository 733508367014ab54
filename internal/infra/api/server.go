// Package api is the studio-facing HTTP surface: generation session
// operations, text analysis, health and metrics.
package api

import (
	"net/http"
	"time"

	"lectio-studio/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const requestTimeout = 30 * time.Second

type Server struct {
	genUC      usecase.GenerationUseCase
	analysisUC usecase.AnalysisUseCase
	apiKey     string
	log        *zerolog.Logger
}

func NewServer(genUC usecase.GenerationUseCase, analysisUC usecase.AnalysisUseCase, apiKey string, logger *zerolog.Logger) *Server {
	l := logger.With().Str("component", "api").Logger()
	return &Server{genUC: genUC, analysisUC: analysisUC, apiKey: apiKey, log: &l}
}

// Router builds the full route tree. Health and metrics are public; the
// studio routes sit behind the bearer key.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(TraceID(s.log), RequestLog(s.log), Recover(s.log), Timeout(requestTimeout))

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey, s.log))

		r.Route("/readings/{readingID}/generation", func(r chi.Router) {
			r.Post("/", s.handleStartGeneration)
			r.Get("/", s.handleGenerationForReading)
		})

		r.Route("/generation/sessions/{sessionID}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Post("/dismiss", s.handleDismiss)
			r.Post("/reopen", s.handleReopen)
			r.Delete("/", s.handleTeardown)
		})

		r.Post("/analyze", s.handleAnalyze)
	})

	return r
}

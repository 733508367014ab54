package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"lectio-studio/internal/domain"
	"lectio-studio/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleStartGeneration(w http.ResponseWriter, r *http.Request) {
	readingID := chi.URLParam(r, "readingID")

	var req startGenerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	snap, err := s.genUC.Start(r.Context(), req.toModel(readingID))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSessionView(snap))
}

func (s *Server) handleGenerationForReading(w http.ResponseWriter, r *http.Request) {
	snap, err := s.genUC.SessionForReading(r.Context(), chi.URLParam(r, "readingID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionView(snap))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	snap, err := s.genUC.Session(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionView(snap))
}

func (s *Server) handleDismiss(w http.ResponseWriter, r *http.Request) {
	if err := s.genUC.Dismiss(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReopen(w http.ResponseWriter, r *http.Request) {
	snap, err := s.genUC.Reopen(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionView(snap))
}

// handleTeardown is idempotent: deleting an unknown session is still a 204.
func (s *Server) handleTeardown(w http.ResponseWriter, r *http.Request) {
	if err := s.genUC.Teardown(r.Context(), chi.URLParam(r, "sessionID")); err != nil && !errors.Is(err, domain.ErrNotFound) {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	analysis, err := s.analysisUC.Analyze(r.Context(), req.Text, model.AnalysisOptions{
		IncludeMorphology:   req.IncludeMorphology,
		IncludeDependencies: req.IncludeDependencies,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAnalyzeResponse(analysis))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	view := healthView{Status: "ok", Analyzer: "unknown"}
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if h, err := s.analysisUC.Health(ctx); err == nil {
		if h.Ready {
			view.Analyzer = "ready"
		} else {
			view.Analyzer = "not_ready"
		}
	}
	writeJSON(w, http.StatusOK, view)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeDomainError maps the domain taxonomy onto HTTP status codes.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrGenerationActive), errors.Is(err, domain.ErrSessionSettled):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrSessionTornDown):
		writeError(w, http.StatusGone, err.Error())
	case errors.Is(err, domain.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, domain.ErrNoGeneratorsEnabled),
		errors.Is(err, domain.ErrInvalidArgument),
		errors.Is(err, domain.ErrReadingTooLong):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrAnalyzerFailed):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

package pipelinesim

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// knownKinds is the set of generators the pipeline offers, in wire order.
var knownKinds = []string{"vocabulary", "grammar", "exercises", "dialogs"}

type submitGeneratorDTO struct {
	Level            string   `json:"level"`
	ItemCount        int      `json:"itemCount"`
	ExerciseTypes    []string `json:"exerciseTypes"`
	DialogComplexity string   `json:"dialogComplexity"`
}

type submitRequestDTO struct {
	ReadingID  string                         `json:"readingId"`
	Generators map[string]*submitGeneratorDTO `json:"generators"`
}

type submitResponseDTO struct {
	JobID string `json:"jobId"`
}

type progressDTO struct {
	Status string `json:"status"`
	Count  int    `json:"count,omitempty"`
	Error  string `json:"error,omitempty"`
}

type resultDTO struct {
	Count         int   `json:"count"`
	ExecutionTime int64 `json:"executionTime"`
}

type jobStatusDTO struct {
	Status   string                 `json:"status"`
	Progress map[string]progressDTO `json:"progress"`
	Results  map[string]resultDTO   `json:"results"`
}

// Router serves the pipeline's wire contract: job creation and job status.
func (s *Simulator) Router() http.Handler {
	r := chi.NewRouter()
	r.Post("/api/v1/generation/jobs", s.handleSubmit)
	r.Get("/api/v1/generation/jobs/{jobID}", s.handleStatus)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	return r
}

func (s *Simulator) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.ReadingID == "" {
		http.Error(w, "readingId required", http.StatusBadRequest)
		return
	}

	specs := make([]generatorSpec, 0, len(knownKinds))
	for _, kind := range knownKinds {
		cfg, ok := req.Generators[kind]
		if !ok || cfg == nil {
			continue
		}
		specs = append(specs, generatorSpec{Kind: kind, ItemCount: cfg.ItemCount})
	}
	if len(specs) == 0 {
		http.Error(w, "no generators enabled", http.StatusBadRequest)
		return
	}

	jobID, err := s.SubmitJob(req.ReadingID, specs)
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(submitResponseDTO{JobID: jobID})
}

func (s *Simulator) handleStatus(w http.ResponseWriter, r *http.Request) {
	view, ok := s.Job(chi.URLParam(r, "jobID"))
	if !ok {
		http.Error(w, "job not found", http.StatusNotFound)
		return
	}

	out := jobStatusDTO{
		Status:   view.Status,
		Progress: make(map[string]progressDTO, len(view.Progress)),
		Results:  make(map[string]resultDTO, len(view.Results)),
	}
	for k, p := range view.Progress {
		out.Progress[k] = progressDTO{Status: p.Status, Count: p.Count, Error: p.Error}
	}
	for k, res := range view.Results {
		out.Results[k] = resultDTO{Count: res.Count, ExecutionTime: res.ExecutionTime}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

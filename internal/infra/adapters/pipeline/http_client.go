// Package pipeline talks to the external content-generation pipeline over
// its two-endpoint HTTP contract: job creation and job status.
package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"lectio-studio/internal/domain/model"
	"lectio-studio/internal/domain/ports/adapter"

	"github.com/rs/zerolog"
)

var _ adapter.GenerationPipelineAdapter = (*HTTPClient)(nil)

const (
	jobsPath = "/api/v1/generation/jobs"

	// snippet of an error body kept for logs; bodies are otherwise ignored
	maxErrBody = 512
)

// HTTPClient implements adapter.GenerationPipelineAdapter.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     zerolog.Logger
}

// NewHTTPClient validates the base URL and builds the client. An empty
// apiKey disables the Authorization header; timeout <= 0 falls back to 10s.
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration, logger *zerolog.Logger) (*HTTPClient, error) {
	if baseURL == "" {
		return nil, errors.New("pipeline base url empty")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid pipeline base url: %w", err)
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		log:     logger.With().Str("component", "pipeline_client").Logger(),
	}, nil
}

type generatorConfigDTO struct {
	Level            string   `json:"level,omitempty"`
	ItemCount        int      `json:"itemCount,omitempty"`
	ExerciseTypes    []string `json:"exerciseTypes,omitempty"`
	DialogComplexity string   `json:"dialogComplexity,omitempty"`
}

// submitRequestDTO always carries all four generator keys; a disabled
// generator is an explicit null, never an absent key.
type submitRequestDTO struct {
	ReadingID  string                          `json:"readingId"`
	Generators map[string]*generatorConfigDTO `json:"generators"`
}

type submitResponseDTO struct {
	JobID string `json:"jobId"`
}

type generatorProgressDTO struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
	Error  string `json:"error"`
}

type generatorResultDTO struct {
	Count         int   `json:"count"`
	ExecutionTime int64 `json:"executionTime"`
}

type jobStatusDTO struct {
	Status   string                          `json:"status"`
	Progress map[string]generatorProgressDTO `json:"progress"`
	Results  map[string]generatorResultDTO   `json:"results"`
}

// SubmitJob posts the generation request and returns the assigned job id.
func (c *HTTPClient) SubmitJob(ctx context.Context, req *model.GenerationRequest) (string, error) {
	gens := make(map[string]*generatorConfigDTO, len(model.GeneratorKinds))
	for _, kind := range model.GeneratorKinds {
		cfg := req.Config(kind)
		if cfg == nil {
			gens[string(kind)] = nil
			continue
		}
		gens[string(kind)] = &generatorConfigDTO{
			Level:            cfg.Level,
			ItemCount:        cfg.ItemCount,
			ExerciseTypes:    cfg.ExerciseTypes,
			DialogComplexity: cfg.DialogComplexity,
		}
	}
	body, err := json.Marshal(submitRequestDTO{ReadingID: req.ReadingID, Generators: gens})
	if err != nil {
		return "", fmt.Errorf("pipeline: encode submit request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+jobsPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("pipeline: build submit request: %w", err)
	}
	c.setHeaders(httpReq)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("pipeline: submit job: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logErrBody(resp, "job submission rejected")
		return "", fmt.Errorf("pipeline: submit job: http %d", resp.StatusCode)
	}

	var out submitResponseDTO
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("pipeline: decode submit response: %w", err)
	}
	if out.JobID == "" {
		return "", errors.New("pipeline: submit response carries no job id")
	}
	return out.JobID, nil
}

// FetchJob reads one full job snapshot. Any transport, status, or decode
// problem is an error; callers treat those as transient.
func (c *HTTPClient) FetchJob(ctx context.Context, jobID string) (*model.GenerationJob, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+jobsPath+"/"+url.PathEscape(jobID), nil)
	if err != nil {
		return nil, fmt.Errorf("pipeline: build status request: %w", err)
	}
	c.setHeaders(httpReq)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("pipeline: fetch job %s: %w", jobID, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logErrBody(resp, "status fetch rejected")
		return nil, fmt.Errorf("pipeline: fetch job %s: http %d", jobID, resp.StatusCode)
	}

	var out jobStatusDTO
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("pipeline: decode job %s: %w", jobID, err)
	}
	status := model.JobStatus(out.Status)
	switch status {
	case model.JobStatusQueued, model.JobStatusProcessing, model.JobStatusCompleted, model.JobStatusFailed:
	default:
		return nil, fmt.Errorf("pipeline: job %s reports unknown status %q", jobID, out.Status)
	}

	job := &model.GenerationJob{
		ID:       jobID,
		Status:   status,
		Progress: make(map[model.GeneratorKind]model.GeneratorProgress, len(out.Progress)),
		Results:  make(map[model.GeneratorKind]model.GeneratorResult, len(out.Results)),
	}
	for name, p := range out.Progress {
		job.Progress[model.GeneratorKind(name)] = model.GeneratorProgress{
			Status: model.GeneratorState(p.Status),
			Count:  p.Count,
			Error:  p.Error,
		}
	}
	for name, r := range out.Results {
		job.Results[model.GeneratorKind(name)] = model.GeneratorResult{
			Count:         r.Count,
			ExecutionTime: r.ExecutionTime,
		}
	}
	return job, nil
}

func (c *HTTPClient) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

func (c *HTTPClient) logErrBody(resp *http.Response, msg string) {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrBody))
	c.log.Debug().Int("status", resp.StatusCode).Str("body", string(b)).Msg(msg)
}

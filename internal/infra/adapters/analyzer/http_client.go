// Package analyzer talks to the Latin morphological analyzer microservice.
package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"lectio-studio/internal/domain"
	"lectio-studio/internal/domain/model"
	"lectio-studio/internal/domain/ports/adapter"

	"github.com/rs/zerolog"
)

var _ adapter.TextAnalyzerAdapter = (*HTTPClient)(nil)

// HTTPClient implements adapter.TextAnalyzerAdapter against the analyzer's
// /analyze and /health endpoints.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

func NewHTTPClient(baseURL string, timeout time.Duration, logger *zerolog.Logger) (*HTTPClient, error) {
	if baseURL == "" {
		return nil, errors.New("analyzer base url empty")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid analyzer base url: %w", err)
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		log:     logger.With().Str("component", "analyzer_client").Logger(),
	}, nil
}

type analyzeRequestDTO struct {
	Text                string `json:"text"`
	IncludeMorphology   bool   `json:"include_morphology"`
	IncludeDependencies bool   `json:"include_dependencies"`
}

type morphologyDTO struct {
	Case   string `json:"case"`
	Number string `json:"number"`
	Gender string `json:"gender"`
	Tense  string `json:"tense"`
	Voice  string `json:"voice"`
	Mood   string `json:"mood"`
	Person string `json:"person"`
	Degree string `json:"degree"`
}

type dependencyDTO struct {
	Relation string `json:"relation"`
	Governor int    `json:"governor"`
}

type wordAnalysisDTO struct {
	Form       string         `json:"form"`
	Lemma      string         `json:"lemma"`
	POS        string         `json:"pos"`
	Morphology *morphologyDTO `json:"morphology"`
	Dependency *dependencyDTO `json:"dependency"`
	Index      int            `json:"index"`
}

type analyzeResponseDTO struct {
	Success bool              `json:"success"`
	Words   []wordAnalysisDTO `json:"words"`
	RawText string            `json:"raw_text"`
	Error   string            `json:"error"`
}

type healthResponseDTO struct {
	Status    string `json:"status"`
	CLTKReady bool   `json:"cltk_ready"`
	Version   string `json:"version"`
}

// Analyze posts the text and decodes the word-level analysis. An envelope
// with success=false maps to domain.ErrAnalyzerFailed with the service's
// error text attached.
func (c *HTTPClient) Analyze(ctx context.Context, text string, opts model.AnalysisOptions) (*model.TextAnalysis, error) {
	if text == "" {
		return nil, fmt.Errorf("analyzer: empty text: %w", domain.ErrInvalidArgument)
	}
	body, err := json.Marshal(analyzeRequestDTO{
		Text:                text,
		IncludeMorphology:   opts.IncludeMorphology,
		IncludeDependencies: opts.IncludeDependencies,
	})
	if err != nil {
		return nil, fmt.Errorf("analyzer: encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("analyzer: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("analyzer: analyze: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("analyzer: analyze: http %d: %w", resp.StatusCode, domain.ErrAnalyzerFailed)
	}

	var out analyzeResponseDTO
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("analyzer: decode response: %w", err)
	}
	if !out.Success {
		c.log.Warn().Str("error", out.Error).Msg("analyzer reported failure")
		return nil, fmt.Errorf("analyzer: %s: %w", out.Error, domain.ErrAnalyzerFailed)
	}

	analysis := &model.TextAnalysis{
		RawText: out.RawText,
		Words:   make([]model.WordAnalysis, 0, len(out.Words)),
	}
	for _, w := range out.Words {
		word := model.WordAnalysis{
			Form:  w.Form,
			Lemma: w.Lemma,
			POS:   w.POS,
			Index: w.Index,
		}
		if w.Morphology != nil {
			word.Morphology = &model.Morphology{
				Case:   w.Morphology.Case,
				Number: w.Morphology.Number,
				Gender: w.Morphology.Gender,
				Tense:  w.Morphology.Tense,
				Voice:  w.Morphology.Voice,
				Mood:   w.Morphology.Mood,
				Person: w.Morphology.Person,
				Degree: w.Morphology.Degree,
			}
		}
		if w.Dependency != nil {
			word.Dependency = &model.Dependency{
				Relation: w.Dependency.Relation,
				Governor: w.Dependency.Governor,
			}
		}
		analysis.Words = append(analysis.Words, word)
	}
	return analysis, nil
}

// Health reads the analyzer's readiness probe.
func (c *HTTPClient) Health(ctx context.Context) (adapter.AnalyzerHealth, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return adapter.AnalyzerHealth{}, fmt.Errorf("analyzer: build health request: %w", err)
	}
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return adapter.AnalyzerHealth{}, fmt.Errorf("analyzer: health: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return adapter.AnalyzerHealth{}, fmt.Errorf("analyzer: health: http %d", resp.StatusCode)
	}
	var out healthResponseDTO
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return adapter.AnalyzerHealth{}, fmt.Errorf("analyzer: decode health: %w", err)
	}
	return adapter.AnalyzerHealth{
		Status:  out.Status,
		Ready:   out.CLTKReady,
		Version: out.Version,
	}, nil
}

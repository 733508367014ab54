// File: internal/usecase/analysis_uc.go
package usecase

import (
	"context"
	"strings"
	"time"

	"lectio-studio/internal/domain"
	"lectio-studio/internal/domain/model"
	"lectio-studio/internal/domain/ports/adapter"
	"lectio-studio/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ AnalysisUseCase = (*analysisUC)(nil)

type AnalysisUseCase interface {
	Analyze(ctx context.Context, text string, opts model.AnalysisOptions) (*model.TextAnalysis, error)
	Health(ctx context.Context) (adapter.AnalyzerHealth, error)
}

// maxAnalysisChars keeps editor hint requests within what the analyzer
// handles in one round trip.
const maxAnalysisChars = 20000

type analysisUC struct {
	analyzer adapter.TextAnalyzerAdapter
	log      *zerolog.Logger
}

func NewAnalysisUseCase(analyzer adapter.TextAnalyzerAdapter, logger *zerolog.Logger) *analysisUC {
	l := logger.With().Str("component", "analysis_uc").Logger()
	return &analysisUC{analyzer: analyzer, log: &l}
}

func (a *analysisUC) Analyze(ctx context.Context, text string, opts model.AnalysisOptions) (*model.TextAnalysis, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrInvalidArgument
	}
	if len(text) > maxAnalysisChars {
		return nil, domain.ErrInvalidArgument
	}

	start := time.Now()
	analysis, err := a.analyzer.Analyze(ctx, text, opts)
	if err != nil {
		metrics.IncAnalysis("error")
		return nil, err
	}
	metrics.IncAnalysis("ok")
	metrics.ObserveAnalysisLatency(int(time.Since(start).Milliseconds()))
	return analysis, nil
}

func (a *analysisUC) Health(ctx context.Context) (adapter.AnalyzerHealth, error) {
	return a.analyzer.Health(ctx)
}

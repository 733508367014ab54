package adapter

import (
	"context"

	"lectio-studio/internal/domain/model"
)

// AnalyzerHealth describes the analyzer service's readiness.
type AnalyzerHealth struct {
	Status  string
	Ready   bool
	Version string
}

// TextAnalyzerAdapter is the port for the Latin morphological analyzer.
type TextAnalyzerAdapter interface {
	Analyze(ctx context.Context, text string, opts model.AnalysisOptions) (*model.TextAnalysis, error)
	Health(ctx context.Context) (AnalyzerHealth, error)
}

package api

import (
	"context"
	"sync"

	"lectio-studio/internal/domain"
	"lectio-studio/internal/domain/model"
	"lectio-studio/internal/domain/ports/adapter"

	"github.com/rs/zerolog"
)

func newLogger() *zerolog.Logger { l := zerolog.Nop(); return &l }

// fakeGenerationUC is a scriptable GenerationUseCase.
type fakeGenerationUC struct {
	mu        sync.Mutex
	snapshot  *model.SessionSnapshot
	startErr  error
	getErr    error
	dismissed []string
	tornDown  []string
	lastReq   *model.GenerationRequest
}

func (f *fakeGenerationUC) Start(ctx context.Context, req *model.GenerationRequest) (*model.SessionSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastReq = req
	if f.startErr != nil {
		return nil, f.startErr
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return f.snapshot, nil
}

func (f *fakeGenerationUC) Session(ctx context.Context, sessionID string) (*model.SessionSnapshot, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.snapshot, nil
}

func (f *fakeGenerationUC) SessionForReading(ctx context.Context, readingID string) (*model.SessionSnapshot, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.snapshot, nil
}

func (f *fakeGenerationUC) Dismiss(ctx context.Context, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return f.getErr
	}
	f.dismissed = append(f.dismissed, sessionID)
	return nil
}

func (f *fakeGenerationUC) Reopen(ctx context.Context, sessionID string) (*model.SessionSnapshot, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.snapshot, nil
}

func (f *fakeGenerationUC) Teardown(ctx context.Context, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tornDown = append(f.tornDown, sessionID)
	return domain.ErrNotFound // teardown of an unknown session still succeeds at the API
}

// fakeAnalysisUC returns a canned analysis.
type fakeAnalysisUC struct {
	analysis *model.TextAnalysis
	err      error
	healthy  bool
}

func (f *fakeAnalysisUC) Analyze(ctx context.Context, text string, opts model.AnalysisOptions) (*model.TextAnalysis, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.analysis != nil {
		return f.analysis, nil
	}
	return &model.TextAnalysis{RawText: text}, nil
}

func (f *fakeAnalysisUC) Health(ctx context.Context) (adapter.AnalyzerHealth, error) {
	return adapter.AnalyzerHealth{Status: "healthy", Ready: f.healthy}, nil
}

// File: internal/usecase/mocks_test.go
package usecase

import (
	"context"
	"sync"
	"time"

	"lectio-studio/internal/domain"
	"lectio-studio/internal/domain/model"
	"lectio-studio/internal/domain/ports/adapter"

	"github.com/rs/zerolog"
)

func newLogger() *zerolog.Logger { l := zerolog.Nop(); return &l }

// --- reading repository ---

type mockReadingRepo struct {
	mu       sync.Mutex
	readings map[string]*model.Reading
	marked   map[string]time.Time
	markErr  error
}

func newMockReadingRepo(readings ...*model.Reading) *mockReadingRepo {
	m := &mockReadingRepo{
		readings: make(map[string]*model.Reading),
		marked:   make(map[string]time.Time),
	}
	for _, r := range readings {
		m.readings[r.ID] = r
	}
	return m
}

func (m *mockReadingRepo) FindByID(ctx context.Context, id string) (*model.Reading, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.readings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *mockReadingRepo) Create(ctx context.Context, r *model.Reading) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.readings[r.ID]; ok {
		return domain.ErrAlreadyExists
	}
	cp := *r
	m.readings[r.ID] = &cp
	return nil
}

func (m *mockReadingRepo) MarkGenerated(ctx context.Context, id string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.markErr != nil {
		return m.markErr
	}
	if _, ok := m.readings[id]; !ok {
		return domain.ErrNotFound
	}
	m.marked[id] = at
	return nil
}

// --- coordinator ---

type mockCoordinator struct {
	mu         sync.Mutex
	starts     int
	lastReq    *model.GenerationRequest
	snapshot   *model.SessionSnapshot
	startErr   error
	dismissed  []string
	reopened   []string
	tornDown   []string
	getErr     error
	readingErr error
}

func (m *mockCoordinator) Start(ctx context.Context, req *model.GenerationRequest) (*model.SessionSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.starts++
	m.lastReq = req
	if m.startErr != nil {
		return nil, m.startErr
	}
	return m.snapshot, nil
}

func (m *mockCoordinator) Get(sessionID string) (*model.SessionSnapshot, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.snapshot, nil
}

func (m *mockCoordinator) ForReading(readingID string) (*model.SessionSnapshot, error) {
	if m.readingErr != nil {
		return nil, m.readingErr
	}
	return m.snapshot, nil
}

func (m *mockCoordinator) Dismiss(sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dismissed = append(m.dismissed, sessionID)
	return nil
}

func (m *mockCoordinator) Reopen(sessionID string) (*model.SessionSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reopened = append(m.reopened, sessionID)
	return m.snapshot, nil
}

func (m *mockCoordinator) Teardown(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tornDown = append(m.tornDown, sessionID)
}

func (m *mockCoordinator) startCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.starts
}

// --- token counter ---

type mockTokenCounter struct {
	count int
	err   error
}

func (m *mockTokenCounter) CountTokens(text string) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if m.count > 0 {
		return m.count, nil
	}
	return len(text), nil
}

// --- submit limiter ---

type mockLimiter struct {
	mu    sync.Mutex
	allow bool
	err   error
	keys  []string
}

func (m *mockLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys = append(m.keys, key)
	if m.err != nil {
		return false, m.err
	}
	return m.allow, nil
}

// --- revision bumper ---

type mockRevisions struct {
	mu    sync.Mutex
	bumps map[string]int64
	err   error
}

func newMockRevisions() *mockRevisions { return &mockRevisions{bumps: make(map[string]int64)} }

func (m *mockRevisions) Bump(ctx context.Context, readingID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	m.bumps[readingID]++
	return m.bumps[readingID], nil
}

// --- analyzer ---

type mockAnalyzer struct {
	mu       sync.Mutex
	calls    int
	analysis *model.TextAnalysis
	err      error
}

func (m *mockAnalyzer) Analyze(ctx context.Context, text string, opts model.AnalysisOptions) (*model.TextAnalysis, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if m.analysis != nil {
		return m.analysis, nil
	}
	return &model.TextAnalysis{RawText: text}, nil
}

func (m *mockAnalyzer) Health(ctx context.Context) (adapter.AnalyzerHealth, error) {
	return adapter.AnalyzerHealth{Status: "healthy", Ready: true, Version: "1.0.0"}, nil
}

func sampleReading(id string) *model.Reading {
	r, _ := model.NewReading(id, "De Bello Gallico", "lat", "B1", "Gallia est omnis divisa in partes tres.")
	return r
}

func vocabRequest(readingID string) *model.GenerationRequest {
	return &model.GenerationRequest{
		ReadingID:  readingID,
		Vocabulary: &model.GeneratorConfig{Level: "A2", ItemCount: 10},
	}
}

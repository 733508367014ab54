// File: internal/infra/orchestrator/mocks_test.go
package orchestrator

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"lectio-studio/internal/domain/model"

	"github.com/rs/zerolog"
)

func newLogger() *zerolog.Logger { l := zerolog.Nop(); return &l }

// fakePipeline is a scriptable in-memory pipeline adapter.
type fakePipeline struct {
	mu        sync.Mutex
	jobID     string
	submitErr error
	submits   int
	fetches   int
	fetchErrs int           // fail this many fetches before succeeding
	fetchErr  error         // error used for injected fetch failures
	job       *model.GenerationJob
	block     chan struct{} // when set, FetchJob blocks on it after counting
}

func newFakePipeline(jobID string) *fakePipeline {
	return &fakePipeline{jobID: jobID}
}

func (f *fakePipeline) SubmitJob(ctx context.Context, req *model.GenerationRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submits++
	if f.submitErr != nil {
		return "", f.submitErr
	}
	return f.jobID, nil
}

func (f *fakePipeline) FetchJob(ctx context.Context, jobID string) (*model.GenerationJob, error) {
	f.mu.Lock()
	f.fetches++
	block := f.block
	var err error
	if f.fetchErrs > 0 {
		f.fetchErrs--
		err = f.fetchErr
		if err == nil {
			err = errors.New("injected fetch failure")
		}
	}
	job := cloneJob(f.job)
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	if err != nil {
		return nil, err
	}
	return job, nil
}

func (f *fakePipeline) setJob(job *model.GenerationJob) {
	f.mu.Lock()
	f.job = job
	f.mu.Unlock()
}

func (f *fakePipeline) fetchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches
}

func (f *fakePipeline) submitCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submits
}

func cloneJob(job *model.GenerationJob) *model.GenerationJob {
	if job == nil {
		return nil
	}
	cp := &model.GenerationJob{
		ID:       job.ID,
		Status:   job.Status,
		Progress: make(map[model.GeneratorKind]model.GeneratorProgress, len(job.Progress)),
		Results:  make(map[model.GeneratorKind]model.GeneratorResult, len(job.Results)),
	}
	for k, v := range job.Progress {
		cp.Progress[k] = v
	}
	for k, v := range job.Results {
		cp.Results[k] = v
	}
	return cp
}

// fakeRefresher records side-effect invocations.
type fakeRefresher struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (f *fakeRefresher) RefreshReading(ctx context.Context, readingID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, readingID)
	return f.err
}

func (f *fakeRefresher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, timeout time.Duration, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for: %s", msg)
}

func vocabGrammarRequest(readingID string) *model.GenerationRequest {
	return &model.GenerationRequest{
		ReadingID:  readingID,
		Vocabulary: &model.GeneratorConfig{Level: "A2", ItemCount: 10},
		Grammar:    &model.GeneratorConfig{ItemCount: 5},
	}
}

func processingJob(id string) *model.GenerationJob {
	return &model.GenerationJob{
		ID:     id,
		Status: model.JobStatusProcessing,
		Progress: map[model.GeneratorKind]model.GeneratorProgress{
			model.GeneratorVocabulary: {Status: model.GeneratorStateProcessing, Count: 3},
		},
	}
}

func completedJob(id string) *model.GenerationJob {
	return &model.GenerationJob{
		ID:     id,
		Status: model.JobStatusCompleted,
		Progress: map[model.GeneratorKind]model.GeneratorProgress{
			model.GeneratorVocabulary: {Status: model.GeneratorStateCompleted, Count: 12},
			model.GeneratorGrammar:    {Status: model.GeneratorStateCompleted, Count: 5},
		},
		Results: map[model.GeneratorKind]model.GeneratorResult{
			model.GeneratorVocabulary: {Count: 12, ExecutionTime: 1500},
			model.GeneratorGrammar:    {Count: 5, ExecutionTime: 900},
		},
	}
}

func partialFailureJob(id string) *model.GenerationJob {
	return &model.GenerationJob{
		ID:     id,
		Status: model.JobStatusCompleted,
		Progress: map[model.GeneratorKind]model.GeneratorProgress{
			model.GeneratorVocabulary: {Status: model.GeneratorStateCompleted, Count: 12},
			model.GeneratorGrammar:    {Status: model.GeneratorStateFailed, Error: "model timeout"},
		},
		Results: map[model.GeneratorKind]model.GeneratorResult{
			model.GeneratorVocabulary: {Count: 12, ExecutionTime: 1500},
		},
	}
}

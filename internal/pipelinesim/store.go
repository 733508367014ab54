// Package pipelinesim is an in-memory stand-in for the content-generation
// pipeline. It implements the same two-endpoint HTTP contract (job creation
// and job status) and simulates per-generator work with configurable latency
// and failure injection. Used for local development and end-to-end tests.
package pipelinesim

import (
	"sync"
	"time"
)

type generatorProgress struct {
	Status string
	Count  int
	Error  string
}

type generatorResult struct {
	Count         int
	ExecutionTime int64
}

// jobRecord is the pipeline-side state of one job. All mutation goes through
// the store's mutex.
type jobRecord struct {
	ID        string
	ReadingID string
	Status    string
	Progress  map[string]generatorProgress
	Results   map[string]generatorResult
	pending   int
	CreatedAt time.Time
}

// JobView is a deep copy of a job, safe to read without the store lock.
type JobView struct {
	ID        string
	ReadingID string
	Status    string
	Progress  map[string]generatorProgress
	Results   map[string]generatorResult
}

// Store holds all simulated jobs in memory behind one mutex.
type Store struct {
	mu   sync.Mutex
	jobs map[string]*jobRecord
}

func NewStore() *Store {
	return &Store{jobs: make(map[string]*jobRecord)}
}

// Create registers a queued job with one pending entry per generator.
func (s *Store) Create(id, readingID string, kinds []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := &jobRecord{
		ID:        id,
		ReadingID: readingID,
		Status:    "queued",
		Progress:  make(map[string]generatorProgress, len(kinds)),
		Results:   make(map[string]generatorResult, len(kinds)),
		pending:   len(kinds),
		CreatedAt: time.Now(),
	}
	for _, k := range kinds {
		rec.Progress[k] = generatorProgress{Status: "pending"}
	}
	s.jobs[id] = rec
}

// StartGenerator flips one generator to processing and the envelope with it.
func (s *Store) StartGenerator(jobID, kind string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.jobs[jobID]
	if !ok {
		return
	}
	rec.Progress[kind] = generatorProgress{Status: "processing"}
	if rec.Status == "queued" {
		rec.Status = "processing"
	}
}

// CompleteGenerator lands one generator's output and settles the envelope
// when it was the last one outstanding.
func (s *Store) CompleteGenerator(jobID, kind string, count int, took time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.jobs[jobID]
	if !ok {
		return
	}
	rec.Progress[kind] = generatorProgress{Status: "completed", Count: count}
	rec.Results[kind] = generatorResult{Count: count, ExecutionTime: took.Milliseconds()}
	rec.pending--
	s.finalizeLocked(rec)
}

// FailGenerator records one generator's failure. Other generators keep
// running; the envelope still completes unless every generator failed.
func (s *Store) FailGenerator(jobID, kind, errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.jobs[jobID]
	if !ok {
		return
	}
	rec.Progress[kind] = generatorProgress{Status: "failed", Error: errMsg}
	rec.pending--
	s.finalizeLocked(rec)
}

func (s *Store) finalizeLocked(rec *jobRecord) {
	if rec.pending > 0 {
		return
	}
	allFailed := true
	for _, p := range rec.Progress {
		if p.Status != "failed" {
			allFailed = false
			break
		}
	}
	if allFailed {
		rec.Status = "failed"
	} else {
		rec.Status = "completed"
	}
}

// Snapshot returns a deep copy of the job, or false when unknown.
func (s *Store) Snapshot(jobID string) (JobView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.jobs[jobID]
	if !ok {
		return JobView{}, false
	}
	view := JobView{
		ID:        rec.ID,
		ReadingID: rec.ReadingID,
		Status:    rec.Status,
		Progress:  make(map[string]generatorProgress, len(rec.Progress)),
		Results:   make(map[string]generatorResult, len(rec.Results)),
	}
	for k, v := range rec.Progress {
		view.Progress[k] = v
	}
	for k, v := range rec.Results {
		view.Results[k] = v
	}
	return view, true
}

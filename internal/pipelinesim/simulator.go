package pipelinesim

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// generatorSpec carries the per-generator knobs from the submit request the
// simulator actually honors.
type generatorSpec struct {
	Kind      string
	ItemCount int
}

// Options tune the simulated pipeline.
type Options struct {
	Workers    int
	MinLatency time.Duration // per-generator work floor
	MaxLatency time.Duration
	// FailGenerators injects a failure: kind -> error message.
	FailGenerators map[string]string
}

func (o Options) withDefaults() Options {
	if o.Workers <= 0 {
		o.Workers = 4
	}
	if o.MinLatency <= 0 {
		o.MinLatency = 2 * time.Second
	}
	if o.MaxLatency < o.MinLatency {
		o.MaxLatency = o.MinLatency
	}
	return o
}

// Simulator owns the job store and the worker pool that plays the part of
// the generation pipeline's backend.
type Simulator struct {
	store *Store
	pool  *pool
	opts  Options
	log   zerolog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

func NewSimulator(opts Options, logger *zerolog.Logger) *Simulator {
	opts = opts.withDefaults()
	l := logger.With().Str("component", "pipelinesim").Logger()
	return &Simulator{
		store: NewStore(),
		pool:  newPool(opts.Workers, l),
		opts:  opts,
		log:   l,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Start launches the worker pool on ctx; Stop drains it.
func (s *Simulator) Start(ctx context.Context) { s.pool.start(ctx) }

func (s *Simulator) Stop() { s.pool.stop() }

// SubmitJob registers the job and queues one simulated task per enabled
// generator. The returned id is immediately pollable.
func (s *Simulator) SubmitJob(readingID string, specs []generatorSpec) (string, error) {
	jobID := uuid.NewString()
	kinds := make([]string, 0, len(specs))
	for _, spec := range specs {
		kinds = append(kinds, spec.Kind)
	}
	s.store.Create(jobID, readingID, kinds)

	for _, spec := range specs {
		spec := spec
		err := s.pool.submit(func(ctx context.Context) error {
			s.runGenerator(ctx, jobID, spec)
			return nil
		})
		if err != nil {
			s.store.FailGenerator(jobID, spec.Kind, "pipeline overloaded")
		}
	}
	s.log.Info().Str("job_id", jobID).Str("reading_id", readingID).Strs("generators", kinds).Msg("job accepted")
	return jobID, nil
}

func (s *Simulator) runGenerator(ctx context.Context, jobID string, spec generatorSpec) {
	s.store.StartGenerator(jobID, spec.Kind)
	started := time.Now()

	select {
	case <-ctx.Done():
		s.store.FailGenerator(jobID, spec.Kind, "pipeline shutting down")
		return
	case <-time.After(s.latency()):
	}

	if msg, ok := s.opts.FailGenerators[spec.Kind]; ok {
		s.store.FailGenerator(jobID, spec.Kind, msg)
		return
	}

	count := spec.ItemCount
	if count <= 0 {
		count = 10
	}
	s.store.CompleteGenerator(jobID, spec.Kind, count, time.Since(started))
}

func (s *Simulator) latency() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	span := s.opts.MaxLatency - s.opts.MinLatency
	if span <= 0 {
		return s.opts.MinLatency
	}
	return s.opts.MinLatency + time.Duration(s.rng.Int63n(int64(span)))
}

// Job exposes store snapshots to the HTTP layer.
func (s *Simulator) Job(jobID string) (JobView, bool) {
	return s.store.Snapshot(jobID)
}

package orchestrator

import (
	"context"
	"errors"
	"sync"
	"time"

	"lectio-studio/internal/domain"
	"lectio-studio/internal/domain/model"
	"lectio-studio/internal/domain/ports/adapter"
	"lectio-studio/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// Coordinator owns every live orchestration session. It enforces one active
// session per reading, starts pollers on its own root context (pollers must
// outlive the HTTP request that started them), and tears everything down on
// shutdown.
type Coordinator struct {
	pipeline     adapter.GenerationPipelineAdapter
	refresher    Refresher
	interval     time.Duration
	refreshDelay time.Duration
	log          zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	byID      map[string]*Session
	byReading map[string]*Session
}

// NewCoordinator constructs a coordinator. Intervals of zero or less fall
// back to the reference cadence of 2s for both polling and the settle delay.
func NewCoordinator(pipeline adapter.GenerationPipelineAdapter, refresher Refresher, pollInterval, refreshDelay time.Duration, logger *zerolog.Logger) *Coordinator {
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}
	if refreshDelay <= 0 {
		refreshDelay = 2 * time.Second
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		pipeline:     pipeline,
		refresher:    refresher,
		interval:     pollInterval,
		refreshDelay: refreshDelay,
		log:          logger.With().Str("component", "orchestrator").Logger(),
		ctx:          ctx,
		cancel:       cancel,
		byID:         make(map[string]*Session),
		byReading:    make(map[string]*Session),
	}
}

// Start creates a session for the request and submits its job. The request
// context bounds only the submission call; polling continues on the
// coordinator's context. A submission failure settles the session in place
// with the synthetic failure row rather than returning an error, so callers
// always receive a presentable snapshot.
//
// While a session for the same reading is active, Start refuses with
// ErrGenerationActive; a settled session is superseded.
func (c *Coordinator) Start(ctx context.Context, req *model.GenerationRequest) (*model.SessionSnapshot, error) {
	enabled := req.EnabledKinds()
	if len(enabled) == 0 {
		return nil, domain.ErrNoGeneratorsEnabled
	}

	s := newSession(req.ReadingID, enabled, c.pipeline, c.refresher, c.interval, c.refreshDelay, &c.log)

	c.mu.Lock()
	if old, ok := c.byReading[req.ReadingID]; ok {
		if old.active() {
			c.mu.Unlock()
			return nil, domain.ErrGenerationActive
		}
		delete(c.byID, old.ID)
		delete(c.byReading, old.ReadingID)
		old.Teardown()
	}
	// The slot is taken before submitting so a concurrent Start for the same
	// reading cannot double-submit.
	c.byID[s.ID] = s
	c.byReading[s.ReadingID] = s
	c.mu.Unlock()

	metrics.IncSessionStarted()

	jobID, err := c.pipeline.SubmitJob(ctx, req)
	if err == nil && jobID == "" {
		err = errors.New("pipeline returned no job id")
	}
	if err != nil {
		s.failSubmission(err)
		return s.Snapshot(), nil
	}

	s.beginPolling(jobID)
	go s.runPoller(c.ctx)
	c.log.Info().
		Str("session_id", s.ID).
		Str("reading_id", s.ReadingID).
		Str("job_id", jobID).
		Int("generators", len(enabled)).
		Msg("generation session started")
	return s.Snapshot(), nil
}

// Get returns the snapshot of one session.
func (c *Coordinator) Get(sessionID string) (*model.SessionSnapshot, error) {
	s, err := c.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	return s.Snapshot(), nil
}

// ForReading returns the snapshot of the session currently registered for a
// reading, settled or not.
func (c *Coordinator) ForReading(readingID string) (*model.SessionSnapshot, error) {
	c.mu.Lock()
	s, ok := c.byReading[readingID]
	c.mu.Unlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s.Snapshot(), nil
}

// Dismiss hides a live session from the author without stopping its poller.
func (c *Coordinator) Dismiss(sessionID string) error {
	s, err := c.lookup(sessionID)
	if err != nil {
		return err
	}
	return s.Dismiss()
}

// Reopen resets a session's dismissed flag and returns its current snapshot.
func (c *Coordinator) Reopen(sessionID string) (*model.SessionSnapshot, error) {
	s, err := c.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.Reopen(); err != nil {
		return nil, err
	}
	return s.Snapshot(), nil
}

// Teardown deregisters a session and stops its timers. Unknown session IDs
// are a no-op: teardown is idempotent by contract.
func (c *Coordinator) Teardown(sessionID string) {
	c.mu.Lock()
	s, ok := c.byID[sessionID]
	if ok {
		delete(c.byID, sessionID)
		delete(c.byReading, s.ReadingID)
	}
	c.mu.Unlock()
	if ok {
		s.Teardown()
	}
}

// Shutdown tears down every session and cancels all pollers.
func (c *Coordinator) Shutdown() {
	c.cancel()
	c.mu.Lock()
	sessions := make([]*Session, 0, len(c.byID))
	for _, s := range c.byID {
		sessions = append(sessions, s)
	}
	c.byID = make(map[string]*Session)
	c.byReading = make(map[string]*Session)
	c.mu.Unlock()

	for _, s := range sessions {
		s.Teardown()
	}
	c.log.Info().Int("sessions", len(sessions)).Msg("orchestrator shut down")
}

func (c *Coordinator) lookup(sessionID string) (*Session, error) {
	c.mu.Lock()
	s, ok := c.byID[sessionID]
	c.mu.Unlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

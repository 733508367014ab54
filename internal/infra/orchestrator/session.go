// Package orchestrator drives lesson-content generation jobs: it submits
// them to the generation pipeline, polls their status on a fixed interval,
// reconciles per-generator progress into snapshots, and performs the
// content-refresh side effect when a job fully succeeds.
package orchestrator

import (
	"context"
	"sync"
	"time"

	"lectio-studio/internal/domain"
	"lectio-studio/internal/domain/model"
	"lectio-studio/internal/domain/ports/adapter"
	"lectio-studio/internal/infra/metrics"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

// refreshTimeout bounds the side-effect call, which runs detached from any
// request context.
const refreshTimeout = 10 * time.Second

// Refresher is the minimal interface the orchestrator needs for the success
// side effect. It is invoked once per fully successful session, after the
// settle delay, and never for dismissed or torn-down sessions.
type Refresher interface {
	RefreshReading(ctx context.Context, readingID string) error
}

// Session binds one pipeline job to a polling loop and a dismissed flag.
// It lives in process memory only; the pipeline's job record is the sole
// persistent trace of the work.
type Session struct {
	ID        string
	ReadingID string

	pipeline  adapter.GenerationPipelineAdapter
	refresher Refresher
	log       zerolog.Logger

	interval     time.Duration
	refreshDelay time.Duration

	stopOnce sync.Once
	stopCh   chan struct{}

	mu             sync.Mutex
	jobID          string
	state          model.SessionState
	jobStatus      model.JobStatus
	dismissed      bool
	tornDown       bool
	refreshPending bool
	refreshFired   bool
	enabled        []model.GeneratorKind
	rows           []model.GeneratorStatus
	startedAt      time.Time
	settledAt      time.Time
	refreshTimer   *time.Timer

	// fetch bookkeeping: sequences are assigned when a fetch is issued and
	// checked when its result lands, so late responses can never overwrite
	// newer state.
	fetchSeq   uint64
	appliedSeq uint64
	inFlight   bool
}

func newSession(readingID string, enabled []model.GeneratorKind, pipeline adapter.GenerationPipelineAdapter, refresher Refresher, interval, refreshDelay time.Duration, logger *zerolog.Logger) *Session {
	rows := make([]model.GeneratorStatus, len(enabled))
	for i, k := range enabled {
		rows[i] = model.GeneratorStatus{Kind: k, State: model.GeneratorStatePending}
	}
	id := ulid.Make().String()
	return &Session{
		ID:           id,
		ReadingID:    readingID,
		pipeline:     pipeline,
		refresher:    refresher,
		log:          logger.With().Str("session_id", id).Str("reading_id", readingID).Logger(),
		interval:     interval,
		refreshDelay: refreshDelay,
		stopCh:       make(chan struct{}),
		state:        model.SessionIdle,
		enabled:      enabled,
		rows:         rows,
		startedAt:    time.Now(),
	}
}

// beginPolling records the job identifier and moves idle -> polling. Called
// exactly once, by the coordinator, after a successful submission.
func (s *Session) beginPolling(jobID string) {
	s.mu.Lock()
	s.jobID = jobID
	s.state = model.SessionPolling
	s.log = s.log.With().Str("job_id", jobID).Logger()
	s.mu.Unlock()
}

// failSubmission settles the session immediately with the synthetic
// "Generation" row. The session never reaches polling and owns no timer.
func (s *Session) failSubmission(err error) {
	s.mu.Lock()
	s.state = model.SessionSettled
	s.jobStatus = model.JobStatusFailed
	s.settledAt = time.Now()
	s.rows = []model.GeneratorStatus{{
		Kind:  model.GeneratorSubmission,
		State: model.GeneratorStateFailed,
		Error: err.Error(),
	}}
	s.stopPollingLocked()
	s.mu.Unlock()

	metrics.IncSessionSettled("submit_failed")
	s.log.Warn().Err(err).Msg("job submission failed")
}

// apply lands one fetched job snapshot. Results are discarded when the
// session has settled or been torn down, or when a newer fetch has already
// been applied.
func (s *Session) apply(seq uint64, job *model.GenerationJob) {
	s.mu.Lock()
	if s.tornDown || s.state != model.SessionPolling || seq <= s.appliedSeq {
		s.mu.Unlock()
		metrics.IncPollFetch("stale")
		s.log.Debug().Uint64("seq", seq).Msg("discarded stale status response")
		return
	}
	s.appliedSeq = seq
	s.jobStatus = job.Status
	s.rows = reconcile(s.enabled, job)
	if job.Status.Terminal() {
		s.settleLocked()
	}
	s.mu.Unlock()
	metrics.IncPollFetch("applied")
}

// settleLocked cancels polling and, on full success of a non-dismissed
// session, schedules the refresh side effect after a short delay so the
// author can read the final status display. Callers hold s.mu.
func (s *Session) settleLocked() {
	s.state = model.SessionSettled
	s.settledAt = time.Now()
	s.stopPollingLocked()

	outcome := "failed"
	if s.jobStatus == model.JobStatusCompleted {
		if anyFailed(s.rows) {
			// a completed envelope does not imply success of its parts
			outcome = "partial_failure"
		} else {
			outcome = "succeeded"
		}
	}
	for _, g := range s.rows {
		metrics.IncGeneratorOutcome(string(g.Kind), string(g.State))
	}
	metrics.IncSessionSettled(outcome)
	metrics.ObserveJobDuration(s.settledAt.Sub(s.startedAt).Seconds())

	if outcome == "succeeded" && !s.dismissed {
		s.refreshPending = true
		s.refreshTimer = time.AfterFunc(s.refreshDelay, s.fireRefresh)
	}
	s.log.Info().
		Str("outcome", outcome).
		Dur("took", s.settledAt.Sub(s.startedAt)).
		Msg("generation session settled")
}

// fireRefresh runs after the settle delay. Dismiss and teardown are
// re-checked here: the flag may have flipped between scheduling and firing.
func (s *Session) fireRefresh() {
	s.mu.Lock()
	if s.tornDown || s.dismissed || s.refreshFired {
		s.refreshPending = false
		s.mu.Unlock()
		return
	}
	s.refreshFired = true
	s.refreshPending = false
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()
	if err := s.refresher.RefreshReading(ctx, s.ReadingID); err != nil {
		s.log.Warn().Err(err).Msg("content refresh failed")
		return
	}
	metrics.IncRefreshFired()
	s.log.Debug().Msg("content refresh fired")
}

// Dismiss detaches the author from the session without cancelling polling.
// Valid only while polling or while the settle side effect is still pending.
func (s *Session) Dismiss() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tornDown {
		return domain.ErrSessionTornDown
	}
	if s.state == model.SessionSettled && !s.refreshPending {
		return domain.ErrSessionSettled
	}
	if !s.dismissed {
		s.dismissed = true
		metrics.IncSessionDismissed()
		s.log.Debug().Msg("session dismissed; polling continues in background")
	}
	return nil
}

// Reopen resets the dismissed flag so presentation resumes from the current
// snapshot. No resubmission, no new job.
func (s *Session) Reopen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tornDown {
		return domain.ErrSessionTornDown
	}
	if s.dismissed {
		s.dismissed = false
		s.log.Debug().Msg("session reopened")
	}
	return nil
}

// Teardown forcibly stops polling and any pending side effect, regardless of
// state. Idempotent.
func (s *Session) Teardown() {
	s.mu.Lock()
	if s.tornDown {
		s.mu.Unlock()
		return
	}
	s.tornDown = true
	s.stopPollingLocked()
	if s.refreshTimer != nil {
		s.refreshTimer.Stop()
	}
	s.refreshPending = false
	s.mu.Unlock()
	s.log.Debug().Msg("session torn down")
}

// stopPollingLocked cancels the poll loop exactly once; duplicate cancels
// are no-ops.
func (s *Session) stopPollingLocked() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

// Snapshot returns an independent copy of the observable session state.
func (s *Session) Snapshot() *model.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := make([]model.GeneratorStatus, len(s.rows))
	copy(rows, s.rows)
	return &model.SessionSnapshot{
		SessionID:      s.ID,
		ReadingID:      s.ReadingID,
		JobID:          s.jobID,
		State:          s.state,
		JobStatus:      s.jobStatus,
		Dismissed:      s.dismissed,
		RefreshPending: s.refreshPending,
		Generators:     rows,
		StartedAt:      s.startedAt,
		SettledAt:      s.settledAt,
	}
}

// active reports whether the session still occupies its reading's slot:
// submitting, polling, or settled with the side effect not yet resolved.
func (s *Session) active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tornDown {
		return false
	}
	return s.state != model.SessionSettled || s.refreshPending
}

// reconcile rebuilds the complete per-generator status list from one job
// snapshot, filtered to the generators enabled at submission time. Every
// fetch produces a whole new list; nothing is merged across polls.
func reconcile(enabled []model.GeneratorKind, job *model.GenerationJob) []model.GeneratorStatus {
	rows := make([]model.GeneratorStatus, 0, len(enabled))
	for _, kind := range enabled {
		row := model.GeneratorStatus{Kind: kind, State: model.GeneratorStatePending}
		if p, ok := job.Progress[kind]; ok {
			if p.Status != "" {
				row.State = p.Status
			}
			row.Count = p.Count
			if row.State == model.GeneratorStateFailed {
				row.Error = p.Error
			}
		}
		if r, ok := job.Results[kind]; ok {
			row.Count = r.Count
			row.Duration = time.Duration(r.ExecutionTime) * time.Millisecond
		}
		rows = append(rows, row)
	}
	return rows
}

func anyFailed(rows []model.GeneratorStatus) bool {
	for _, g := range rows {
		if g.State == model.GeneratorStateFailed {
			return true
		}
	}
	return false
}

package orchestrator

import (
	"context"
	"time"

	"lectio-studio/internal/domain/model"
	"lectio-studio/internal/infra/metrics"
)

// runPoller is the per-session poll loop. One synchronous fetch runs before
// the first ticker wait so state is never a full interval stale, then fetches
// repeat on the fixed interval until the session settles, is torn down, or
// the coordinator shuts down.
func (s *Session) runPoller(ctx context.Context) {
	s.pollOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			// Ticks are serialized: while a fetch is still in flight the
			// tick is skipped, never queued.
			if s.busy() {
				metrics.IncPollSkippedTick()
				s.log.Trace().Msg("skipping tick; previous fetch still in flight")
				continue
			}
			s.pollOnce(ctx)
		}
	}
}

// pollOnce issues a single status fetch and applies its result. A fetch
// failure changes no session state; the next tick retries.
func (s *Session) pollOnce(ctx context.Context) {
	seq, ok := s.beginFetch()
	if !ok {
		return
	}
	job, err := s.pipeline.FetchJob(ctx, s.jobID)
	if err != nil {
		s.endFetch()
		metrics.IncPollFetch("error")
		s.log.Debug().Err(err).Msg("status fetch failed; retrying next tick")
		return
	}
	s.apply(seq, job)
	s.endFetch()
}

// beginFetch assigns the next fetch sequence, refusing when the session no
// longer polls or a fetch is already in flight.
func (s *Session) beginFetch() (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tornDown || s.state != model.SessionPolling || s.inFlight {
		return 0, false
	}
	s.inFlight = true
	s.fetchSeq++
	return s.fetchSeq, true
}

func (s *Session) endFetch() {
	s.mu.Lock()
	s.inFlight = false
	s.mu.Unlock()
}

func (s *Session) busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

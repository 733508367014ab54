package model

import "time"

// SessionState is the lifecycle state of an orchestration session.
type SessionState string

const (
	SessionIdle    SessionState = "idle"
	SessionPolling SessionState = "polling"
	SessionSettled SessionState = "settled"
)

// GeneratorStatus is the per-generator projection shown to the author. The
// set of entries always mirrors exactly the generators enabled at submission
// time. Duration is only known after that generator completes.
type GeneratorStatus struct {
	Kind     GeneratorKind
	State    GeneratorState
	Count    int
	Duration time.Duration
	Error    string
}

// SessionSnapshot is an immutable copy of a session's observable state,
// rebuilt wholesale on every applied poll.
type SessionSnapshot struct {
	SessionID      string
	ReadingID      string
	JobID          string
	State          SessionState
	JobStatus      JobStatus
	Dismissed      bool
	RefreshPending bool
	Generators     []GeneratorStatus
	StartedAt      time.Time
	SettledAt      time.Time
}

// Succeeded reports overall success: the job envelope completed and no
// generator failed. A completed envelope with failed parts is not a success.
func (s *SessionSnapshot) Succeeded() bool {
	if s.State != SessionSettled || s.JobStatus != JobStatusCompleted {
		return false
	}
	for _, g := range s.Generators {
		if g.State == GeneratorStateFailed {
			return false
		}
	}
	return true
}

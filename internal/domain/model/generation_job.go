package model

// JobStatus is the job-level aggregate state reported by the generation
// pipeline.
type JobStatus string

const (
	JobStatusQueued     JobStatus = "queued"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// Terminal reports whether the job can no longer change.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// GeneratorState is the per-generator state within a job.
type GeneratorState string

const (
	GeneratorStatePending    GeneratorState = "pending"
	GeneratorStateProcessing GeneratorState = "processing"
	GeneratorStateCompleted  GeneratorState = "completed"
	GeneratorStateFailed     GeneratorState = "failed"
)

// GeneratorProgress is the incremental per-generator record from the job's
// progress map.
type GeneratorProgress struct {
	Status GeneratorState
	Count  int
	Error  string
}

// GeneratorResult is the final per-generator record, populated only once
// that generator completes. ExecutionTime is in milliseconds.
type GeneratorResult struct {
	Count         int
	ExecutionTime int64
}

// GenerationJob is the orchestrator's read-only view of one pipeline job.
// It is mutated exclusively by the pipeline; the orchestrator only ever
// receives full snapshots of it.
type GenerationJob struct {
	ID       string
	Status   JobStatus
	Progress map[GeneratorKind]GeneratorProgress
	Results  map[GeneratorKind]GeneratorResult
}

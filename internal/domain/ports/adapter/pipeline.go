package adapter

import (
	"context"

	"lectio-studio/internal/domain/model"
)

// GenerationPipelineAdapter is the port for the external content-generation
// pipeline. The pipeline owns the job; this side only submits and reads.
type GenerationPipelineAdapter interface {
	// SubmitJob packages the enabled generator configurations and the
	// reading reference into one request and returns the job identifier.
	SubmitJob(ctx context.Context, req *model.GenerationRequest) (string, error)

	// FetchJob returns the current full snapshot of a job. Transport and
	// decode failures are returned as errors; they carry no job state.
	FetchJob(ctx context.Context, jobID string) (*model.GenerationJob, error)
}

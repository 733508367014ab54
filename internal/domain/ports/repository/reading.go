package repository

import (
	"context"
	"time"

	"lectio-studio/internal/domain/model"
)

// -----------------------------
// Readings
// -----------------------------

// ReadingRepository is deliberately narrow: the studio's CRUD surface owns
// readings; this service looks them up and stamps generation metadata.
type ReadingRepository interface {
	FindByID(ctx context.Context, id string) (*model.Reading, error)
	Create(ctx context.Context, r *model.Reading) error
	// MarkGenerated stamps the time of the last fully successful generation.
	MarkGenerated(ctx context.Context, id string, at time.Time) error
}

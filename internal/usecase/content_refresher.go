// File: internal/usecase/content_refresher.go
package usecase

import (
	"context"
	"fmt"
	"time"

	"lectio-studio/internal/domain/ports/repository"

	"github.com/rs/zerolog"
)

// RevisionBumper advances the per-reading content revision that downstream
// lesson viewers watch.
type RevisionBumper interface {
	Bump(ctx context.Context, readingID string) (int64, error)
}

// ContentRefresher is the success side effect of a fully completed
// generation: it stamps the reading and bumps its content revision so
// viewers refetch. It satisfies the orchestrator's Refresher interface.
type ContentRefresher struct {
	readings  repository.ReadingRepository
	revisions RevisionBumper
	log       *zerolog.Logger
}

func NewContentRefresher(readings repository.ReadingRepository, revisions RevisionBumper, logger *zerolog.Logger) *ContentRefresher {
	l := logger.With().Str("component", "content_refresher").Logger()
	return &ContentRefresher{readings: readings, revisions: revisions, log: &l}
}

func (c *ContentRefresher) RefreshReading(ctx context.Context, readingID string) error {
	if err := c.readings.MarkGenerated(ctx, readingID, time.Now()); err != nil {
		return fmt.Errorf("stamp reading %s: %w", readingID, err)
	}
	rev, err := c.revisions.Bump(ctx, readingID)
	if err != nil {
		return fmt.Errorf("bump content revision for %s: %w", readingID, err)
	}
	c.log.Info().Str("reading_id", readingID).Int64("revision", rev).Msg("content refreshed")
	return nil
}

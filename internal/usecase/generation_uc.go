// File: internal/usecase/generation_uc.go
package usecase

import (
	"context"
	"fmt"
	"time"

	"lectio-studio/internal/domain"
	"lectio-studio/internal/domain/model"
	"lectio-studio/internal/domain/ports/adapter"
	"lectio-studio/internal/domain/ports/repository"
	"lectio-studio/internal/infra/logging"
	red "lectio-studio/internal/infra/redis"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ GenerationUseCase = (*generationUC)(nil)

// SessionCoordinator is the slice of the orchestrator the usecase drives.
type SessionCoordinator interface {
	Start(ctx context.Context, req *model.GenerationRequest) (*model.SessionSnapshot, error)
	Get(sessionID string) (*model.SessionSnapshot, error)
	ForReading(readingID string) (*model.SessionSnapshot, error)
	Dismiss(sessionID string) error
	Reopen(sessionID string) (*model.SessionSnapshot, error)
	Teardown(sessionID string)
}

// SubmitLimiter guards how often generation may be started per reading.
type SubmitLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

type GenerationUseCase interface {
	// Start validates the request against the reading and kicks off an
	// orchestration session for it.
	Start(ctx context.Context, req *model.GenerationRequest) (*model.SessionSnapshot, error)
	Session(ctx context.Context, sessionID string) (*model.SessionSnapshot, error)
	SessionForReading(ctx context.Context, readingID string) (*model.SessionSnapshot, error)
	Dismiss(ctx context.Context, sessionID string) error
	Reopen(ctx context.Context, sessionID string) (*model.SessionSnapshot, error)
	Teardown(ctx context.Context, sessionID string) error
}

type generationUC struct {
	readings    repository.ReadingRepository
	coordinator SessionCoordinator
	tokens      adapter.TokenCounter
	limiter     SubmitLimiter

	maxTokens int
	rateLimit int
	rateWin   time.Duration

	log *zerolog.Logger
}

func NewGenerationUseCase(
	readings repository.ReadingRepository,
	coordinator SessionCoordinator,
	tokens adapter.TokenCounter,
	limiter SubmitLimiter,
	maxTokens, rateLimit int,
	rateWindow time.Duration,
	logger *zerolog.Logger,
) *generationUC {
	l := logger.With().Str("component", "generation_uc").Logger()
	return &generationUC{
		readings:    readings,
		coordinator: coordinator,
		tokens:      tokens,
		limiter:     limiter,
		maxTokens:   maxTokens,
		rateLimit:   rateLimit,
		rateWin:     rateWindow,
		log:         &l,
	}
}

func (g *generationUC) Start(ctx context.Context, req *model.GenerationRequest) (*model.SessionSnapshot, error) {
	defer logging.TraceDuration(g.log, "GenerationUC.Start")()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	reading, err := g.readings.FindByID(ctx, req.ReadingID)
	if err != nil {
		return nil, err
	}

	if g.maxTokens > 0 && g.tokens != nil {
		n, err := g.tokens.CountTokens(reading.SourceText)
		if err != nil {
			// the precheck is advisory; the pipeline enforces its own limit
			g.log.Warn().Err(err).Str("reading_id", reading.ID).Msg("token precheck unavailable")
		} else if n > g.maxTokens {
			return nil, fmt.Errorf("reading is %d tokens, limit %d: %w", n, g.maxTokens, domain.ErrReadingTooLong)
		}
	}

	if g.limiter != nil && g.rateLimit > 0 {
		ok, err := g.limiter.Allow(ctx, red.GenerationStartKey(reading.ID), g.rateLimit, g.rateWin)
		if err != nil {
			// a limiter outage must not block authoring
			g.log.Warn().Err(err).Msg("rate limiter unavailable; allowing start")
		} else if !ok {
			return nil, domain.ErrRateLimited
		}
	}

	return g.coordinator.Start(ctx, req)
}

func (g *generationUC) Session(ctx context.Context, sessionID string) (*model.SessionSnapshot, error) {
	return g.coordinator.Get(sessionID)
}

func (g *generationUC) SessionForReading(ctx context.Context, readingID string) (*model.SessionSnapshot, error) {
	return g.coordinator.ForReading(readingID)
}

func (g *generationUC) Dismiss(ctx context.Context, sessionID string) error {
	return g.coordinator.Dismiss(sessionID)
}

func (g *generationUC) Reopen(ctx context.Context, sessionID string) (*model.SessionSnapshot, error) {
	return g.coordinator.Reopen(sessionID)
}

func (g *generationUC) Teardown(ctx context.Context, sessionID string) error {
	g.coordinator.Teardown(sessionID)
	return nil
}

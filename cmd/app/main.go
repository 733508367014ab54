// File: cmd/app/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"lectio-studio/internal/config"
	"lectio-studio/internal/infra/adapters/analyzer"
	"lectio-studio/internal/infra/adapters/pipeline"
	"lectio-studio/internal/infra/adapters/tokenizer"
	"lectio-studio/internal/infra/api"
	pg "lectio-studio/internal/infra/db/postgres"
	"lectio-studio/internal/infra/logging"
	"lectio-studio/internal/infra/metrics"
	"lectio-studio/internal/infra/orchestrator"
	red "lectio-studio/internal/infra/redis"
	"lectio-studio/internal/usecase"

	"golang.org/x/sync/errgroup"
)

// set via -ldflags at build time
var (
	version = "dev"
	commit  = "none"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("developer mode enabled")
	}

	metrics.MustRegister()
	metrics.SetBuildInfo(version, commit)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis")
	}
	defer redisClient.Close()
	limiter := red.NewRateLimiter(redisClient)
	revisions := red.NewContentRevisions(redisClient)

	// ---- Repositories ----
	readingRepo := pg.NewPostgresReadingRepo(pool)

	// ---- Adapters ----
	pipelineClient, err := pipeline.NewHTTPClient(cfg.Pipeline.BaseURL, cfg.Pipeline.APIKey, cfg.Pipeline.RequestTimeout, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("pipeline adapter")
	}
	analyzerClient, err := analyzer.NewHTTPClient(cfg.Analyzer.BaseURL, cfg.Analyzer.RequestTimeout, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("analyzer adapter")
	}
	cachedAnalyzer := analyzer.NewCacheDecorator(analyzerClient, redisClient, cfg.Analyzer.CacheTTL)
	tokens, err := tokenizer.NewTiktokenCounter(cfg.Generation.TokenModel)
	if err != nil {
		logger.Fatal().Err(err).Msg("tokenizer")
	}

	// ---- Orchestration ----
	refresher := usecase.NewContentRefresher(readingRepo, revisions, logger)
	coordinator := orchestrator.NewCoordinator(pipelineClient, refresher, cfg.Generation.PollInterval, cfg.Generation.RefreshDelay, logger)

	// ---- Use cases ----
	genUC := usecase.NewGenerationUseCase(
		readingRepo, coordinator, tokens, limiter,
		cfg.Generation.MaxReadingTokens, cfg.Generation.SubmitRateLimit, cfg.Generation.SubmitRateWindow,
		logger,
	)
	analysisUC := usecase.NewAnalysisUseCase(cachedAnalyzer, logger)

	// ---- HTTP API ----
	apiServer := api.NewServer(genUC, analysisUC, cfg.Server.APIKey, logger)
	httpSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: apiServer.Router(),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().Str("addr", httpSrv.Addr).Str("version", version).Msg("studio api listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutdown requested")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("http shutdown")
		}
		coordinator.Shutdown()
		return nil
	})

	// sample pool stats for the db_pool_stats gauge
	g.Go(func() error {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				st := pool.Stat()
				metrics.SetDBPoolStats(st.TotalConns(), st.IdleConns(), st.AcquiredConns())
			}
		}
	})

	if err := g.Wait(); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
	logger.Info().Msg("bye")
}

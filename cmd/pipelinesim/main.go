// Command pipelinesim runs the generation-pipeline simulator as a standalone
// HTTP server for local development. Point pipeline.base_url at it.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"lectio-studio/internal/pipelinesim"

	"github.com/rs/zerolog"
)

func main() {
	addr := flag.String("addr", ":9090", "listen address")
	workers := flag.Int("workers", 4, "generator worker count")
	minLatency := flag.Duration("min-latency", 2*time.Second, "per-generator work floor")
	maxLatency := flag.Duration("max-latency", 6*time.Second, "per-generator work ceiling")
	fail := flag.String("fail", "", "failure injection, e.g. dialogs:timeout,grammar:model error")
	flag.Parse()

	out := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	logger := zerolog.New(out).With().Timestamp().Logger()

	opts := pipelinesim.Options{
		Workers:        *workers,
		MinLatency:     *minLatency,
		MaxLatency:     *maxLatency,
		FailGenerators: parseFailures(*fail),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sim := pipelinesim.NewSimulator(opts, &logger)
	sim.Start(ctx)
	defer sim.Stop()

	srv := &http.Server{Addr: *addr, Handler: sim.Router()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info().Str("addr", *addr).Msg("pipeline simulator listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("server error")
	}
}

// parseFailures reads "kind:message" pairs separated by commas.
func parseFailures(s string) map[string]string {
	if s == "" {
		return nil
	}
	out := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		kind, msg, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok || kind == "" {
			continue
		}
		out[kind] = msg
	}
	return out
}

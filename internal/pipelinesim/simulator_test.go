package pipelinesim

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newLogger() *zerolog.Logger { l := zerolog.Nop(); return &l }

func fastOptions() Options {
	return Options{Workers: 4, MinLatency: 5 * time.Millisecond, MaxLatency: 10 * time.Millisecond}
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for: %s", msg)
}

func TestSimulatorRunsAllGenerators(t *testing.T) {
	sim := NewSimulator(fastOptions(), newLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sim.Start(ctx)
	defer sim.Stop()

	jobID, err := sim.SubmitJob("r1", []generatorSpec{
		{Kind: "vocabulary", ItemCount: 12},
		{Kind: "grammar", ItemCount: 5},
	})
	if err != nil {
		t.Fatalf("SubmitJob() failed: %v", err)
	}

	view, ok := sim.Job(jobID)
	if !ok {
		t.Fatal("job not found right after submission")
	}
	if view.Status != "queued" && view.Status != "processing" {
		t.Errorf("fresh job status = %q", view.Status)
	}

	waitFor(t, 2*time.Second, func() bool {
		v, _ := sim.Job(jobID)
		return v.Status == "completed"
	}, "job completion")

	view, _ = sim.Job(jobID)
	if view.Progress["vocabulary"].Status != "completed" || view.Progress["vocabulary"].Count != 12 {
		t.Errorf("unexpected vocabulary progress: %+v", view.Progress["vocabulary"])
	}
	if view.Results["grammar"].Count != 5 {
		t.Errorf("unexpected grammar result: %+v", view.Results["grammar"])
	}
	if view.Results["vocabulary"].ExecutionTime <= 0 {
		t.Errorf("execution time must be positive, got %d", view.Results["vocabulary"].ExecutionTime)
	}
}

func TestSimulatorFailureInjection(t *testing.T) {
	opts := fastOptions()
	opts.FailGenerators = map[string]string{"dialogs": "timeout"}
	sim := NewSimulator(opts, newLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sim.Start(ctx)
	defer sim.Stop()

	jobID, _ := sim.SubmitJob("r1", []generatorSpec{
		{Kind: "vocabulary", ItemCount: 8},
		{Kind: "dialogs", ItemCount: 3},
	})

	waitFor(t, 2*time.Second, func() bool {
		v, _ := sim.Job(jobID)
		return v.Status == "completed"
	}, "job settling")

	view, _ := sim.Job(jobID)
	if view.Status != "completed" {
		t.Errorf("a partially failed job still completes its envelope, got %q", view.Status)
	}
	if view.Progress["dialogs"].Status != "failed" || view.Progress["dialogs"].Error != "timeout" {
		t.Errorf("unexpected dialogs progress: %+v", view.Progress["dialogs"])
	}
	if view.Progress["vocabulary"].Status != "completed" {
		t.Errorf("vocabulary must not be affected: %+v", view.Progress["vocabulary"])
	}
	if _, ok := view.Results["dialogs"]; ok {
		t.Error("failed generators must not produce results")
	}
}

func TestSimulatorAllFailedJobFails(t *testing.T) {
	opts := fastOptions()
	opts.FailGenerators = map[string]string{"vocabulary": "model error"}
	sim := NewSimulator(opts, newLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sim.Start(ctx)
	defer sim.Stop()

	jobID, _ := sim.SubmitJob("r1", []generatorSpec{{Kind: "vocabulary", ItemCount: 8}})

	waitFor(t, 2*time.Second, func() bool {
		v, _ := sim.Job(jobID)
		return v.Status == "failed"
	}, "job failing")
}

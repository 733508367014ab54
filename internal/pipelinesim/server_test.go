package pipelinesim

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"lectio-studio/internal/domain/model"
	"lectio-studio/internal/infra/adapters/pipeline"
)

// The simulator must be indistinguishable from the real pipeline to the
// orchestrator's HTTP adapter, so the wire tests run through it.
func TestWireContractThroughPipelineAdapter(t *testing.T) {
	opts := fastOptions()
	opts.FailGenerators = map[string]string{"dialogs": "timeout"}
	sim := NewSimulator(opts, newLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sim.Start(ctx)
	defer sim.Stop()

	srv := httptest.NewServer(sim.Router())
	defer srv.Close()

	client, err := pipeline.NewHTTPClient(srv.URL, "", time.Second, newLogger())
	if err != nil {
		t.Fatalf("NewHTTPClient() failed: %v", err)
	}

	req := &model.GenerationRequest{
		ReadingID:  "r1",
		Vocabulary: &model.GeneratorConfig{Level: "A2", ItemCount: 12},
		Dialogs:    &model.GeneratorConfig{DialogComplexity: "simple", ItemCount: 3},
	}
	jobID, err := client.SubmitJob(ctx, req)
	if err != nil {
		t.Fatalf("SubmitJob() failed: %v", err)
	}
	if jobID == "" {
		t.Fatal("empty job id")
	}

	var job *model.GenerationJob
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		job, err = client.FetchJob(ctx, jobID)
		if err != nil {
			t.Fatalf("FetchJob() failed: %v", err)
		}
		if job.Status.Terminal() {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	if job == nil || !job.Status.Terminal() {
		t.Fatal("job did not settle in time")
	}

	if job.Status != model.JobStatusCompleted {
		t.Errorf("expected a completed envelope, got %q", job.Status)
	}
	vocab := job.Progress[model.GeneratorVocabulary]
	if vocab.Status != model.GeneratorStateCompleted || vocab.Count != 12 {
		t.Errorf("unexpected vocabulary progress: %+v", vocab)
	}
	dialogs := job.Progress[model.GeneratorDialogs]
	if dialogs.Status != model.GeneratorStateFailed || dialogs.Error != "timeout" {
		t.Errorf("unexpected dialogs progress: %+v", dialogs)
	}
	if _, ok := job.Results[model.GeneratorDialogs]; ok {
		t.Error("failed generator must not carry a result")
	}
	if res := job.Results[model.GeneratorVocabulary]; res.Count != 12 || res.ExecutionTime <= 0 {
		t.Errorf("unexpected vocabulary result: %+v", res)
	}
}

func TestSubmitValidation(t *testing.T) {
	sim := NewSimulator(fastOptions(), newLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sim.Start(ctx)
	defer sim.Stop()

	srv := httptest.NewServer(sim.Router())
	defer srv.Close()

	client, _ := pipeline.NewHTTPClient(srv.URL, "", time.Second, newLogger())

	// all generators null: the simulator rejects with a 400, which the
	// adapter surfaces as a submission error
	if _, err := client.SubmitJob(ctx, &model.GenerationRequest{ReadingID: "r1"}); err == nil {
		t.Fatal("expected a submission error for an empty generator set")
	}

	// unknown job id maps to a fetch error
	if _, err := client.FetchJob(ctx, "nope"); err == nil {
		t.Fatal("expected a fetch error for an unknown job")
	}
}

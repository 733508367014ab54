//go:build integration

package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"lectio-studio/internal/domain"
	"lectio-studio/internal/domain/model"
)

func TestReadingRepo_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode.")
	}

	repo := NewPostgresReadingRepo(testPool)
	ctx := context.Background()

	t.Run("create, find, and stamp a reading", func(t *testing.T) {
		cleanup(t)

		rd, err := model.NewReading("r-1", "De Bello Gallico I", "lat", "B1", "Gallia est omnis divisa in partes tres.")
		if err != nil {
			t.Fatalf("model.NewReading() failed: %v", err)
		}
		if err := repo.Create(ctx, rd); err != nil {
			t.Fatalf("Create() failed: %v", err)
		}

		found, err := repo.FindByID(ctx, "r-1")
		if err != nil {
			t.Fatalf("FindByID() failed: %v", err)
		}
		if found.Title != rd.Title || found.SourceText != rd.SourceText {
			t.Errorf("roundtrip mismatch: %+v", found)
		}
		if found.GeneratedAt != nil {
			t.Errorf("fresh reading must not carry a generated_at stamp")
		}

		stamp := time.Now().UTC().Truncate(time.Millisecond)
		if err := repo.MarkGenerated(ctx, "r-1", stamp); err != nil {
			t.Fatalf("MarkGenerated() failed: %v", err)
		}
		found, err = repo.FindByID(ctx, "r-1")
		if err != nil {
			t.Fatalf("FindByID() after stamp failed: %v", err)
		}
		if found.GeneratedAt == nil || !found.GeneratedAt.Equal(stamp) {
			t.Errorf("expected generated_at %v, got %v", stamp, found.GeneratedAt)
		}
	})

	t.Run("duplicate id maps to ErrAlreadyExists", func(t *testing.T) {
		cleanup(t)

		rd, _ := model.NewReading("r-dup", "Title", "lat", "", "text")
		if err := repo.Create(ctx, rd); err != nil {
			t.Fatalf("first Create() failed: %v", err)
		}
		if err := repo.Create(ctx, rd); !errors.Is(err, domain.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
	})

	t.Run("missing reading maps to ErrNotFound", func(t *testing.T) {
		cleanup(t)

		if _, err := repo.FindByID(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("FindByID: expected ErrNotFound, got %v", err)
		}
		if err := repo.MarkGenerated(ctx, "missing", time.Now()); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("MarkGenerated: expected ErrNotFound, got %v", err)
		}
	})
}

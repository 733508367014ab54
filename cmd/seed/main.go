// Command seed inserts a few sample Latin readings for local development.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"lectio-studio/internal/config"
	"lectio-studio/internal/domain"
	"lectio-studio/internal/domain/model"
	pg "lectio-studio/internal/infra/db/postgres"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 4)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	repo := pg.NewPostgresReadingRepo(pool)

	seed := []struct {
		ID    string
		Title string
		Level string
		Text  string
	}{
		{
			"seed-caesar-bg-1", "De Bello Gallico I.1", "B1",
			"Gallia est omnis divisa in partes tres, quarum unam incolunt Belgae, aliam Aquitani, tertiam qui ipsorum lingua Celtae, nostra Galli appellantur.",
		},
		{
			"seed-cicero-cat-1", "In Catilinam I.1", "B2",
			"Quo usque tandem abutere, Catilina, patientia nostra? Quam diu etiam furor iste tuus nos eludet?",
		},
		{
			"seed-fabula-lupus", "Lupus et Agnus", "A2",
			"Ad rivum eundem lupus et agnus venerant, siti compulsi. Superior stabat lupus, longeque inferior agnus.",
		},
	}

	created := 0
	for _, s := range seed {
		rd, err := model.NewReading(s.ID, s.Title, "lat", s.Level, s.Text)
		if err != nil {
			log.Fatalf("build reading %s: %v", s.ID, err)
		}
		switch err := repo.Create(ctx, rd); {
		case err == nil:
			created++
			fmt.Printf("  + %s (%s)\n", s.Title, s.ID)
		case errors.Is(err, domain.ErrAlreadyExists):
			fmt.Printf("  = %s already present\n", s.ID)
		default:
			log.Fatalf("create reading %s: %v", s.ID, err)
		}
	}
	fmt.Printf("%d readings created.\n", created)
}

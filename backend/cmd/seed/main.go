package main

import (
	"context"
	"flag"
	"log"

	"gamecrowd/backend/internal/app"
	"gamecrowd/backend/internal/seed"
)

func main() {
	csvPath := flag.String("csv", "backend/data/seed/games.csv", "path to the games seed CSV")
	flag.Parse()

	resources, err := app.Bootstrap()
	if err != nil {
		log.Fatalf("bootstrap failed: %v", err)
	}
	defer func() {
		if err := resources.Close(); err != nil {
			log.Printf("resource cleanup error: %v", err)
		}
	}()

	result, err := seed.ImportCSV(context.Background(), resources.DB, *csvPath)
	if err != nil {
		log.Fatalf("seed failed: %v", err)
	}

	log.Printf("Created %d games, %d categories, %d publishers (skipped %d existing games)",
		result.GamesCreated, result.CategoriesCreated, result.PublishersCreated, result.GamesSkipped)
}

package main

import (
	"log"

	"github.com/notetrackhq/notetrack/internal/infrastructure/database"
	"github.com/notetrackhq/notetrack/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	n, err := database.RunMigrations(db)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Printf("✅ Applied %d migration(s)", n)
}

// migrate_gorm.go - Run this file to test GORM migrations
// Usage: go run migrate_gorm.go

//go:build ignore

package main

import (
	"log"

	"github.com/devlaunch/academy-api/config"
	"github.com/devlaunch/academy-api/database"
)

func main() {
	log.Println("=== GORM Migration Test ===")

	if err := config.LoadENV(); err != nil {
		log.Println("Warning: no .env file found, using environment variables")
	}

	getEnv, err := config.Get()
	if err != nil {
		log.Fatal("Failed to load environment variables:", err)
	}

	store, err := database.StartGORM(getEnv)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	if err := store.HealthCheck(); err != nil {
		log.Fatal("Database health check failed:", err)
	}

	log.Println("All migrations completed successfully")
}

package app

import (
	"fmt"
	"log"
	"os"

	"github.com/devlaunch/academy-api/api"
	"github.com/devlaunch/academy-api/config"
	"github.com/devlaunch/academy-api/database"
	"github.com/devlaunch/academy-api/router"
	"github.com/devlaunch/academy-api/services/cron"
)

// SetupAndRunServer loads config, opens the database, seeds defaults, starts
// the cron jobs, and runs the HTTP server. Everything is constructed here and
// injected downward; nothing opens connections lazily.
func SetupAndRunServer() error {
	if err := config.LoadENV(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	store, err := database.StartGORM(getEnv)
	if err != nil {
		log.Println("Check whether Postgres is running and DB_* variables are set")
		return err
	}

	if err := store.Init(); err != nil {
		log.Println("Failed to run database migrations")
		return err
	}

	// Seed the admin account, the default course, and public settings
	seeder := database.NewSeeder(store.DB())
	if err := seeder.SeedAll(); err != nil {
		log.Printf("Warning: seeding failed: %v", err)
	}

	// Background jobs (default enabled)
	var cronManager *cron.CronManager
	if os.Getenv("CRON_ENABLED") != "false" {
		cronManager = cron.NewCronManager(store.DB())
		if err := cronManager.Start(); err != nil {
			log.Printf("Warning: failed to start cron jobs: %v", err)
			cronManager = nil
		}
	}

	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
		store.Close()
	}()

	server := api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT))
	app := server.GetEngine()

	router.SetupRoutes(app, store, getEnv)

	return server.Run()
}

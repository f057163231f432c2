package main

import (
	"go.uber.org/zap"

	"github.com/itxparadoxarc-wq/educoreportal/app/config"
	"github.com/itxparadoxarc-wq/educoreportal/app/database"
	"github.com/itxparadoxarc-wq/educoreportal/app/logging"
)

// Runs the schema migrations without starting the server. Useful for
// deploy pipelines that migrate before rolling the app.
func main() {
	cfg := config.Load()

	log, err := logging.Init()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(db, log); err != nil {
		log.Fatal("migrations failed", zap.Error(err))
	}

	log.Info("migrations completed")
}

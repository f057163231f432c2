package main

import (
	"errors"
	"flag"

	"go.uber.org/zap"

	"github.com/itxparadoxarc-wq/educoreportal/app/config"
	"github.com/itxparadoxarc-wq/educoreportal/app/database"
	"github.com/itxparadoxarc-wq/educoreportal/app/logging"
	"github.com/itxparadoxarc-wq/educoreportal/app/routes/auth"
)

// Creates the first master admin from the command line, for installs where
// the web bootstrap page is not reachable. Refuses to run twice.
func main() {
	email := flag.String("email", "", "admin email")
	password := flag.String("password", "", "admin password")
	fullName := flag.String("name", "Administrator", "admin full name")
	flag.Parse()

	cfg := config.Load()

	log, err := logging.Init()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if *email == "" || *password == "" {
		log.Fatal("both -email and -password are required")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(db, log); err != nil {
		log.Fatal("migrations failed", zap.Error(err))
	}

	hash, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatal("password hash failed", zap.Error(err))
	}

	user, err := database.BootstrapMasterAdmin(db, *email, hash, *fullName)
	if err != nil {
		if errors.Is(err, database.ErrAlreadyInitialized) {
			log.Fatal("a master admin already exists; use the staff API to add more")
		}
		log.Fatal("bootstrap failed", zap.Error(err))
	}

	log.Info("master admin created", zap.String("user_id", user.ID), zap.String("email", user.Email))
}

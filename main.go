package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/itxparadoxarc-wq/educoreportal/app/config"
	"github.com/itxparadoxarc-wq/educoreportal/app/database"
	"github.com/itxparadoxarc-wq/educoreportal/app/logging"
	"github.com/itxparadoxarc-wq/educoreportal/app/models"
	"github.com/itxparadoxarc-wq/educoreportal/app/routes/academics"
	"github.com/itxparadoxarc-wq/educoreportal/app/routes/attendance"
	"github.com/itxparadoxarc-wq/educoreportal/app/routes/audit"
	"github.com/itxparadoxarc-wq/educoreportal/app/routes/auth"
	"github.com/itxparadoxarc-wq/educoreportal/app/routes/classes"
	"github.com/itxparadoxarc-wq/educoreportal/app/routes/dashboard"
	"github.com/itxparadoxarc-wq/educoreportal/app/routes/fees"
	"github.com/itxparadoxarc-wq/educoreportal/app/routes/setup"
	"github.com/itxparadoxarc-wq/educoreportal/app/routes/staff"
	"github.com/itxparadoxarc-wq/educoreportal/app/routes/students"
	"github.com/itxparadoxarc-wq/educoreportal/app/services"
)

func apiErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error(), "code": code})
}

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

	registry := services.NewRegistry(database.RoleStore{DB: db}, cfg.SessionTimeout, cfg.WarningWindow, log)

	// Idle expiry lands in the audit trail so a sign-out that nobody clicked
	// is still accounted for.
	onExpire := func(snap services.Snapshot) {
		sessionID := snap.ID.String()
		entry := &models.AuditLog{
			UserID:    &snap.UserID,
			UserEmail: &snap.Email,
			Action:    models.AuditDelete,
			TableName: "sessions",
			RecordID:  &sessionID,
			OldData:   models.JSONMap{"reason": "idle_timeout"},
		}
		if err := database.InsertAuditLog(db, entry); err != nil {
			log.Warn("audit write for expired session failed", zap.Error(err))
		}
	}
	monitor := services.NewMonitor(registry, cfg.MonitorInterval, onExpire, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	monitor.Start(ctx)

	var mailer services.EmailService
	if cfg.MailBackend == "sendgrid" && cfg.SendgridKey != "" {
		mailer = services.NewSendgridMailer(cfg.SendgridKey, cfg.MailFrom, cfg.AppName)
	} else {
		mailer = services.NewConsoleMailer(log)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ErrorHandler: apiErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{AllowCredentials: true, AllowOriginsFunc: func(string) bool { return true }}))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "sessions": registry.Len()})
	})

	authH := auth.NewHandler(db, cfg, registry, mailer, log)
	auth.SetupRoutes(app, authH)
	setup.SetupRoutes(app, setup.NewHandler(db, log))
	students.SetupRoutes(app, students.NewHandler(db, log), authH)
	classes.SetupRoutes(app, classes.NewHandler(db, log), authH)
	fees.SetupRoutes(app, fees.NewHandler(db, log), authH)
	attendance.SetupRoutes(app, attendance.NewHandler(db, log), authH)
	academics.SetupRoutes(app, academics.NewHandler(db, log), authH)
	staff.SetupRoutes(app, staff.NewHandler(db, registry, log), authH)
	audit.SetupRoutes(app, audit.NewHandler(db, log), authH)
	dashboard.SetupRoutes(app, dashboard.NewHandler(db, log), authH)

	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not found")
	})

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			log.Error("shutdown failed", zap.Error(err))
		}
	}()

	log.Info("server starting",
		zap.String("addr", cfg.ListenAddr),
		zap.Duration("session_timeout", cfg.SessionTimeout))
	if err := app.Listen(cfg.ListenAddr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"kioskhr_backend/internals/configs"
	database "kioskhr_backend/internals/databases"
	scheduler "kioskhr_backend/internals/features/users/auth/scheduler"
	helper "kioskhr_backend/internals/helpers"
	middlewares "kioskhr_backend/internals/middlewares"
	routes "kioskhr_backend/internals/route"
	"kioskhr_backend/internals/seeds"
)

func main() {
	root := &cobra.Command{
		Use:   "kioskhr",
		Short: "Attendance kiosk and HR backend",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configs.LoadEnv()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP server",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runServe()
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create or update the database schema",
			RunE: func(cmd *cobra.Command, args []string) error {
				database.ConnectDB()
				defer database.Close()
				return database.Migrate(database.DB)
			},
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Insert the default HR admin and sample employees",
			RunE: func(cmd *cobra.Command, args []string) error {
				database.ConnectDB()
				defer database.Close()
				ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
				defer cancel()
				return seeds.RunAllSeeds(ctx, database.DB)
			},
		},
	)

	if err := root.Execute(); err != nil {
		// cobra already printed the error
		os.Exit(1)
	}
}

// newApp wires config, middleware and routes onto a fresh fiber app.
func newApp(db *gorm.DB) *fiber.App {
	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		ErrorHandler:            helper.ErrorHandler,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	middlewares.SetupMiddlewares(app)
	routes.SetupRoutes(app, db)
	return app
}

func runServe() error {
	// 🔌 DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()

	if configs.GetEnvBool("AUTO_MIGRATE", false) {
		if err := database.Migrate(database.DB); err != nil {
			return err
		}
	}

	// ⏱ scheduler after DB is ready
	cron, err := scheduler.Start(database.DB)
	if err != nil {
		return err
	}

	app := newApp(database.DB)

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	go func() {
		log.Printf("✅ Listening on :%s", configs.Port)
		if err := app.Listen("0.0.0.0:" + configs.Port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + close the DB pool
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("[INFO] shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	<-cron.Stop().Done()
	_ = app.ShutdownWithContext(ctx)
	database.Close()
	return nil
}

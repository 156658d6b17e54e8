package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"track-matcher/core/config"
	"track-matcher/core/loader"
	"track-matcher/core/logger"
	"track-matcher/core/middleware/auth"
	"track-matcher/core/middleware/rayid"
	"track-matcher/core/storage"
	"track-matcher/feature/matchrun"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveLibrary string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the matching HTTP server",
	Long: `Starts the HTTP server and loads the library index once at startup.

Curation CSVs uploaded to POST /match are matched against that index and the
full result is returned as JSON.

Examples:
  # Serve a local library
  track-matcher serve --library library.csv

  # Serve a library from object storage
  track-matcher serve --library s3://datasets/library.csv`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		if serveLibrary != "" {
			cfg.Server.LibraryPath = serveLibrary
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect the optional history database
		runs := openRunStore(logg, cfg, false)

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
			BodyLimit:             cfg.Server.BodyLimit(),
		})

		// 5. Initialize Storage
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}

		// 6. Initialize Feature Loader
		mgr := loader.NewManager()

		svc := matchrun.NewService(store, cfg.Matching, logg, runs)
		mgr.Register(matchrun.NewFeature(svc, cfg.Server.LibraryPath))

		// Middleware Registration
		// RayID must be first to trace everything
		app.Use(rayid.New())

		// Logging middleware (Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Auth (protect the API when a key is configured)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 7. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 8. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveLibrary, "library", "", "Library CSV to index at startup (overrides SERVER_LIBRARY_PATH)")
	RootCmd.AddCommand(serveCmd)
}

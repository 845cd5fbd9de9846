package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"sheet-sync/core/loader"
	"sheet-sync/core/logger"
	"sheet-sync/core/middleware/auth"
	"sheet-sync/core/middleware/rayid"
	"sheet-sync/core/reconcile"
	"sheet-sync/feature/syncapi"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the sync HTTP server",
	Long:  `Starts the HTTP server exposing sync and prepare endpoints for the configured table.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load configuration and logger
		rt, err := loadRuntime()
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		logg := rt.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 2. Open the table
		tbl, err := rt.openTable()
		if err != nil {
			logg.Fatal("Failed to open table", zap.Error(err))
		}

		// 3. Document store; failures are reported per request
		provider, err := rt.storeProvider()
		if err != nil {
			logg.Warn("Document store is not configured", zap.Error(err))
			provider = unavailableProvider(err)
		}
		engine := reconcile.NewEngine(provider, logg, rt.cfg.Sync.RetryPolicy())

		// 4. Features
		svc := syncapi.NewService(engine, reconcile.NewGuard(), tbl, rt.cfg.Sync.Collection, logg)
		mgr := loader.NewManager()
		mgr.Register(syncapi.NewFeature(svc, logg, rt.cfg.Server.RequestTimeout()))

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		// RayID first so every later log line carries it
		app.Use(rayid.New())

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

		app.Use(auth.New(auth.Config{ApiKey: rt.cfg.Server.ApiKey, Skip: []string{"/health"}}))

		loaded, err := mgr.LoadAll(app)
		if err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}
		logg.Info("Features loaded", zap.Strings("features", loaded), zap.String("table", tbl.Name()))

		// 5. Start server
		go func() {
			logg.Info("Starting server", zap.String("port", rt.cfg.Server.Port))
			if err := app.Listen(rt.cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 6. Graceful shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}

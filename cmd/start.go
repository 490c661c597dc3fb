package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog-reconciler/core/loader"
	"catalog-reconciler/core/logger"
	"catalog-reconciler/core/middleware/auth"
	"catalog-reconciler/core/middleware/rayid"
	"catalog-reconciler/feature/vendors"
	"catalog-reconciler/feature/vendorsync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the reconciliation server",
	Long:  `Starts the HTTP server with the sync and vendor admin features.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

		a, err := bootstrap(ctx, reg)
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		defer a.close()
		logg := a.logger
		zap.ReplaceGlobals(logg)

		schemaOK := true
		if err := a.checkSchema(); err != nil {
			logg.Warn("Sync disabled until the schema is migrated", zap.Error(err))
			schemaOK = false
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             a.cfg.Server.BodyLimit(),
		})

		mgr := loader.NewManager(logg)
		mgr.Register(vendorsync.NewFeature(vendorsync.NewService(a.runner, logg), logg, schemaOK))
		mgr.Register(vendors.NewFeature(vendors.NewService(a.registry, a.vendors), logg, schemaOK))

		// RayID must be first to trace everything.
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			start := time.Now()
			err := c.Next()
			l.Info("Request",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Int("status", c.Response().StatusCode()),
				zap.Duration("duration", time.Since(start)),
			)
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		app.Get("/health", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"status": "ok"})
		})
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

		if a.cfg.Server.ApiKey == "" {
			logg.Warn("SERVER_API_KEY is empty, the API is unauthenticated")
		}
		app.Use(auth.New(auth.Config{ApiKey: a.cfg.Server.ApiKey, Skip: []string{"/health", "/metrics"}}))

		loaded, err := mgr.LoadAll(app)
		if err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		go func() {
			logg.Info("Starting server", zap.String("port", a.cfg.Server.Port), zap.Strings("features", loaded))
			if err := app.Listen(":" + a.cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.ShutdownWithTimeout(time.Duration(a.cfg.Server.ShutdownSeconds) * time.Second)
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}

package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rapstation/config"
	"rapstation/cron"
	"rapstation/handlers"
	"rapstation/middleware"
	"rapstation/routes"
	"rapstation/utils"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var withWorker bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.AppConfig
			logger := utils.GetLogger()

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			a, err := buildApp(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close()

			monitor := utils.NewHealthMonitor(a.checks)
			monitor.Start(ctx, time.Minute)

			if withWorker && !a.inMemory() {
				go func() {
					if err := cron.RunWorker(ctx, a.redisQueueOpt(), a.booking, logger.Named("worker")); err != nil {
						logger.Sugar().Errorf("serve: embedded worker stopped: %v", err)
					}
				}()
			}

			if config.IsProduction() {
				gin.SetMode(gin.ReleaseMode)
			}
			router := gin.New()
			router.Use(utils.ErrorHandler())
			router.Use(middleware.RequestLogger(logger))
			router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))

			hb := handlers.NewHandlerBundle(handlers.NewBookingHandler(a.booking), handlers.NewAdminHandler(a.admin))
			hb.Health = monitor
			hb.JWTSecret = a.admin.JWTSecret
			hb.CORSOrigins = cfg.Origins()
			routes.RegisterRoutes(router, hb)

			port := cfg.AppPort
			if port == "" {
				port = "8080"
			}
			srv := &http.Server{
				Addr:              "0.0.0.0:" + port,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			logger.Sugar().Infof("Starting server on %s (store=%s)...", srv.Addr, cfg.StoreDriver)
			errCh := make(chan error, 1)
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}
			logger.Sugar().Info("serve: server is shutting down...")

			shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
			defer stop()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return err
			}
			logger.Sugar().Info("serve: server stopped gracefully")
			return nil
		},
	}

	cmd.Flags().BoolVar(&withWorker, "with-worker", false, "also process background tasks in this process")
	return cmd
}

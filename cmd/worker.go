package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"rapstation/config"
	"rapstation/cron"
	"rapstation/utils"

	"github.com/spf13/cobra"
)

func newWorkerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Process background tasks such as placeholder expiry",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.AppConfig
			if cfg.StoreDriver == "memory" {
				return errors.New("the worker needs a shared store, STORE_DRIVER=memory is not supported")
			}
			logger := utils.GetLogger()

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			a, err := buildApp(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close()

			return cron.RunWorker(ctx, a.redisQueueOpt(), a.booking, logger.Named("worker"))
		},
	}
}

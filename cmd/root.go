package cmd

import (
	"fmt"
	"os"

	"rapstation/config"
	"rapstation/utils"

	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rapstation",
		Short: "Hourly booking service for the RapStation gaming venue",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadConfig()
			utils.InitializeLogger(config.IsProduction(), config.AppConfig.LogLevel)
		},
		SilenceUsage: true,
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newWorkerCmd())
	root.AddCommand(newRevealCmd())
	root.AddCommand(newHashPasswordCmd())

	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

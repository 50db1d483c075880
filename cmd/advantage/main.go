package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/bepulse/advantage-backend/internal/logger"
)

func main() {
	_ = godotenv.Load()

	zl, err := logger.Init(logger.ConfigFromEnv())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer zl.Sync()

	rootCmd := &cobra.Command{
		Use:          "advantage",
		Short:        "Ferramentas operacionais de contratos e elegibilidade",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		MigrateCmd(),
		ContractsCmd(),
		EligibilityCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/bepulse/advantage-backend/internal/config"
)

func EligibilityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eligibility",
		Short: "Elegibilidade de clientes e dependentes",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "recompute <customerId>",
		Short: "Recalcula a elegibilidade e grava o flag dos dependentes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ucs, cleanup, err := buildUseCases(config.Load())
			if err != nil {
				return err
			}
			defer cleanup()

			report, err := ucs.Eligibility.Execute(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), report)
		},
	})
	return cmd
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bepulse/advantage-backend/internal/config"
	"github.com/bepulse/advantage-backend/internal/infra/database"
)

func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Aplica ou desfaz as migrations do banco",
	}
	cmd.AddCommand(migrateUpCmd(), migrateDownCmd(), migrateStatusCmd())
	return cmd
}

func migrateUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Aplica todas as migrations pendentes",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := getDB(config.Load())
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := database.MigrateUp(db.DB)
			if err != nil {
				return fmt.Errorf("falha ao aplicar migrations: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d migration(s) aplicada(s)\n", n)
			return nil
		},
	}
}

func migrateDownCmd() *cobra.Command {
	var steps int
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Desfaz migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := getDB(config.Load())
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := database.MigrateDown(db.DB, steps)
			if err != nil {
				return fmt.Errorf("falha ao desfazer migrations: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d migration(s) desfeita(s)\n", n)
			return nil
		},
	}
	cmd.Flags().IntVar(&steps, "steps", 1, "quantidade de migrations a desfazer (0 = todas)")
	return cmd
}

func migrateStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Lista migrations pendentes",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := getDB(config.Load())
			if err != nil {
				return err
			}
			defer db.Close()

			pending, err := database.PendingMigrations(db.DB)
			if err != nil {
				return err
			}
			if len(pending) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nenhuma migration pendente")
				return nil
			}
			for _, id := range pending {
				fmt.Fprintf(cmd.OutOrStdout(), "pendente: %s\n", id)
			}
			return nil
		},
	}
}

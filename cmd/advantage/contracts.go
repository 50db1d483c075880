package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bepulse/advantage-backend/internal/config"
	"github.com/bepulse/advantage-backend/internal/entity"
	"github.com/bepulse/advantage-backend/internal/usecase"
)

func ContractsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contracts",
		Short: "Operações sobre contratos",
	}
	cmd.AddCommand(resendPendingCmd())
	return cmd
}

func resendPendingCmd() *cobra.Command {
	var (
		confirm      bool
		documentType string
		returnURL    string
		operator     string
	)

	cmd := &cobra.Command{
		Use:   "resend-pending",
		Short: "Regenera o envelope de todos os contratos aguardando assinatura",
		Long:  "Sem --confirm apenas lista os contratos que seriam reenviados.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ucs, cleanup, err := buildUseCases(config.Load())
			if err != nil {
				return err
			}
			defer cleanup()

			ctx := entity.WithAudit(cmd.Context(), entity.AuditContext{UserEmail: operator})
			out, err := ucs.ResendPending.Execute(ctx, usecase.ResendPendingContractsInput{
				DocumentType: documentType,
				ReturnURL:    returnURL,
				DryRun:       !confirm,
			})
			if err != nil {
				return err
			}

			if err := printJSON(cmd.OutOrStdout(), out); err != nil {
				return err
			}
			if out.Failed > 0 {
				return fmt.Errorf("%d contrato(s) falharam no reenvio", out.Failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirm, "confirm", false, "executa o reenvio (sem a flag é dry-run)")
	cmd.Flags().StringVar(&documentType, "document-type", usecase.DefaultResendDocumentType, "tipo de documento do contrato")
	cmd.Flags().StringVar(&returnURL, "return-url", "", "URL de retorno após a assinatura")
	cmd.Flags().StringVar(&operator, "operator", "", "email do operador registrado na auditoria")
	return cmd
}

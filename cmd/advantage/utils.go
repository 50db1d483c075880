package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jmoiron/sqlx"

	"github.com/bepulse/advantage-backend/internal/app"
	"github.com/bepulse/advantage-backend/internal/config"
	"github.com/bepulse/advantage-backend/internal/infra/database"
)

func getDB(cfg *config.Config) (*sqlx.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL não definido")
	}
	return database.NewDBConnection(cfg.DatabaseURL)
}

// buildUseCases monta os casos de uso sem fila: a CLI não publica eventos.
func buildUseCases(cfg *config.Config) (*app.UseCases, func(), error) {
	db, err := getDB(cfg)
	if err != nil {
		return nil, nil, err
	}

	locker, valkeyClient := app.NewSigningLocker(cfg.ValkeyAddr, cfg.SigningLockTTL)
	cleanup := func() {
		if valkeyClient != nil {
			valkeyClient.Close()
		}
		db.Close()
	}

	return app.NewUseCases(db, cfg, app.NewDocuSignClient(cfg.DocuSign), locker, nil), cleanup, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

package database

import (
	"database/sql"
	"embed"
	"fmt"

	migrate "github.com/rubenv/sql-migrate"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func migrationSource() migrate.MigrationSource {
	return &migrate.EmbedFileSystemMigrationSource{FileSystem: migrationsFS, Root: "migrations"}
}

// MigrateUp aplica todas as migrações pendentes e devolve quantas rodaram.
func MigrateUp(db *sql.DB) (int, error) {
	n, err := migrate.Exec(db, "postgres", migrationSource(), migrate.Up)
	if err != nil {
		return n, fmt.Errorf("erro ao aplicar migrações: %w", err)
	}
	return n, nil
}

// MigrateDown desfaz as últimas `steps` migrações.
func MigrateDown(db *sql.DB, steps int) (int, error) {
	n, err := migrate.ExecMax(db, "postgres", migrationSource(), migrate.Down, steps)
	if err != nil {
		return n, fmt.Errorf("erro ao desfazer migrações: %w", err)
	}
	return n, nil
}

// PendingMigrations lista as migrações ainda não aplicadas.
func PendingMigrations(db *sql.DB) ([]string, error) {
	planned, _, err := migrate.PlanMigration(db, "postgres", migrationSource(), migrate.Up, 0)
	if err != nil {
		return nil, fmt.Errorf("erro ao planejar migrações: %w", err)
	}
	ids := make([]string, 0, len(planned))
	for _, m := range planned {
		ids = append(ids, m.Id)
	}
	return ids, nil
}

package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Migrations returns the schema migrations as a filesystem rooted at the
// migration files.
func Migrations() fs.FS {
	sub, err := fs.Sub(embedMigrations, "migrations")
	if err != nil {
		// unreachable: the directory is embedded
		panic(err)
	}
	return sub
}

// Migrate applies all pending migrations to the database behind dsn.
// goose requires *sql.DB, so a short-lived database/sql handle is opened
// through the pgx stdlib driver.
func Migrate(ctx context.Context, dsn string, log *slog.Logger) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("migrate: open: %w", err)
	}
	defer db.Close()

	return MigrateDB(ctx, db, log)
}

// MigrateDB applies all pending migrations using an open handle.
func MigrateDB(ctx context.Context, db *sql.DB, log *slog.Logger) error {
	provider, err := goose.NewProvider(goose.DialectPostgres, db, Migrations())
	if err != nil {
		return fmt.Errorf("migrate: new provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("migrate: up: %w", err)
	}

	for _, r := range results {
		log.Info("migration applied",
			slog.Int64("version", r.Source.Version),
			slog.Duration("duration", r.Duration),
		)
	}
	return nil
}

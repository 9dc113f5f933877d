package system

import (
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/julianstephens/habitkit/internal/cli"
	"github.com/julianstephens/habitkit/internal/migration"
	"github.com/julianstephens/habitkit/internal/storage/postgres"
	"github.com/julianstephens/habitkit/internal/storage/sqlite"
	"github.com/julianstephens/habitkit/migrations"
)

type MigrateCmd struct{}

// storeDialect resolves the concrete backend behind the Provider interface.
// JSON stores have no schema and cannot be migrated.
func storeDialect(ctx *cli.Context) (*sql.DB, string, error) {
	switch s := ctx.Store.(type) {
	case *sqlite.Store:
		return s.GetDB(), "sqlite", nil
	case *postgres.Store:
		return s.GetDB(), "postgres", nil
	default:
		return nil, "", fmt.Errorf("migrate command only supports SQLite and PostgreSQL storage")
	}
}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	defer ctx.Store.Close()

	db, dialect, err := storeDialect(ctx)
	if err != nil {
		return err
	}
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	subFS, err := fs.Sub(migrations.FS, dialect)
	if err != nil {
		return fmt.Errorf("failed to access %s migrations: %w", dialect, err)
	}

	runner := migration.NewRunner(db, subFS)
	count, err := runner.ApplyMigrations(func(msg string) {
		fmt.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		fmt.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}

	return nil
}

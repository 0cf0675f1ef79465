package events

import (
	"database/sql"
	"embed"
	"io/fs"

	"github.com/iov-one/piggybank/errors"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// dialects maps database/sql driver names to goose dialects.
var dialects = map[string]string{
	"sqlite": "sqlite3",
	"pgx":    "postgres",
}

func setupGoose(driver string) error {
	dialect, ok := dialects[driver]
	if !ok {
		return errors.Wrapf(errors.ErrInput, "unsupported driver %q", driver)
	}
	if err := goose.SetDialect(dialect); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	dir, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return errors.Wrap(errors.ErrHuman, err.Error())
	}
	goose.SetBaseFS(dir)
	return nil
}

// Migrate brings the events schema up to date.
func Migrate(db *sql.DB, driver string) error {
	if err := setupGoose(driver); err != nil {
		return err
	}
	if err := goose.Up(db, "."); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "migrate up: %s", err)
	}
	return nil
}

// MigrateDown rolls back the most recent migration.
func MigrateDown(db *sql.DB, driver string) error {
	if err := setupGoose(driver); err != nil {
		return err
	}
	if err := goose.Down(db, "."); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "migrate down: %s", err)
	}
	return nil
}

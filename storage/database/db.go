package database

import (
	"embed"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"

	"github.com/shkolla/portal/core"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Open opens the sqlite store with foreign keys enforced. The store is a
// single file; concurrent writers are serialized by the driver.
func Open(conf *core.Config) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite3", "file:"+conf.Database.Path+"?_foreign_keys=on")
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	if err = ping(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
func ping(db *sqlx.DB) error {
	var err error
	maxAttempts := 30
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		err = db.Ping()
		if err == nil {
			break
		}
		time.Sleep(time.Duration(attempts) * 100 * time.Millisecond)
	}

	if err != nil {
		return errors.Wrap(err, "DB ping timeout")
	}
	return nil
}

func Migrate(db *sqlx.DB) error {
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return errors.Wrap(err, "setting goose dialect")
	}
	if err := goose.Up(db.DB, "migrations"); err != nil {
		return errors.Wrap(err, "migrating database")
	}
	return nil
}

// RunMigrationCommand runs an arbitrary goose command ("up", "down-to",
// "status", ...) against the embedded migrations.
func RunMigrationCommand(db *sqlx.DB, command string, args ...string) error {
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return errors.Wrap(err, "setting goose dialect")
	}
	return goose.Run(command, db.DB, "migrations", args...)
}

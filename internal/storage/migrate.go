package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"slices"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// MigrateUp applies every up migration, oldest first.
func MigrateUp(db *sql.DB) error {
	return runMigrations(db, migrationFiles, directionUp)
}

// MigrateDown reverts every migration, newest first.
func MigrateDown(db *sql.DB) error {
	return runMigrations(db, migrationFiles, directionDown)
}

type migrationDirection int

const (
	directionUp migrationDirection = iota
	directionDown
)

func (d migrationDirection) suffix() string {
	if d == directionDown {
		return ".down.sql"
	}
	return ".up.sql"
}

// orderedMigrations lists the migration files for d in the order they must
// run. File names sort by their numeric prefix.
func orderedMigrations(fsys fs.FS, d migrationDirection) ([]string, error) {
	names, err := fs.Glob(fsys, "migrations/*"+d.suffix())
	if err != nil {
		return nil, fmt.Errorf("glob migrations: %w", err)
	}
	slices.Sort(names)
	if d == directionDown {
		slices.Reverse(names)
	}
	return names, nil
}

func runMigrations(db *sql.DB, fsys fs.FS, d migrationDirection) error {
	names, err := orderedMigrations(fsys, d)
	if err != nil {
		return err
	}
	for _, name := range names {
		body, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := db.Exec(string(body)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}
	return nil
}

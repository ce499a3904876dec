// cmd/dbtools/migrate/main.go
package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/codr1/futplan/internal/db"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var (
		dbPath  = flag.String("db", "", "Path to the session SQLite database")
		command = flag.String("command", "", "Command to run (up, down, version)")
	)
	flag.Parse()

	if *dbPath == "" || *command == "" {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(*dbPath, *command); err != nil {
		log.Fatal().Err(err).Str("db", *dbPath).Str("command", *command).Msg("Migration failed")
	}
}

func run(dbPath, command string) error {
	absDB, err := filepath.Abs(dbPath)
	if err != nil {
		return fmt.Errorf("invalid database path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(absDB), 0755); err != nil {
		return fmt.Errorf("create database directory: %w", err)
	}

	sqlDB, err := sql.Open("sqlite3", absDB)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer sqlDB.Close()

	m, err := db.Migrator(sqlDB)
	if err != nil {
		return err
	}

	switch command {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migrate up: %w", err)
		}
		log.Info().Msg("Successfully ran migrations up")
	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migrate down: %w", err)
		}
		log.Info().Msg("Successfully ran migrations down")
	case "version":
		version, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			return fmt.Errorf("get version: %w", err)
		}
		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Current migration version")
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
	return nil
}

package main

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/jihyunk/stylemate/src/config"
	"github.com/jihyunk/stylemate/src/storage"
)

// MigrateCmd manages database migrations
type MigrateCmd struct {
	Up     MigrateUpCmd     `cmd:"" help:"Run pending migrations"`
	Status MigrateStatusCmd `cmd:"" help:"Show migration status"`
}

// MigrateUpCmd runs pending migrations
type MigrateUpCmd struct {
	DBPath string `help:"Database path (defaults to config)"`
}

func (c *MigrateUpCmd) Run(ctx *kong.Context, cli *CLI) error {
	dbPath := c.DBPath
	if dbPath == "" {
		dbPath = config.GetDefaultDatabasePath()
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	fmt.Printf("Database opened: %s (migrations applied on open)\n", dbPath)
	return nil
}

// MigrateStatusCmd shows applied migrations
type MigrateStatusCmd struct {
	DBPath string `help:"Database path (defaults to config)"`
}

func (c *MigrateStatusCmd) Run(ctx *kong.Context, cli *CLI) error {
	dbPath := c.DBPath
	if dbPath == "" {
		dbPath = config.GetDefaultDatabasePath()
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	applied, err := db.AppliedMigrations()
	if err != nil {
		return err
	}
	for _, m := range applied {
		fmt.Println(m)
	}
	return nil
}

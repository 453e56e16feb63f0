package main

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/jihyunk/stylemate/src/app"
	"github.com/jihyunk/stylemate/src/storage"
)

// SeedCmd loads demo data for local development.
type SeedCmd struct{}

func (s *SeedCmd) Run(ctx *kong.Context, cli *CLI) error {
	logger := createCLILogger(cli.LogLevel)

	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}

	instance, err := app.New(cfg, logger)
	if err != nil {
		return err
	}
	defer instance.Close()

	if err := storage.SeedDemoData(context.Background(), instance.Store, cli.User); err != nil {
		return err
	}

	fmt.Printf("Demo data ready for user %d\n", cli.User)
	return nil
}

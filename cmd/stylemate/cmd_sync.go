package main

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/jihyunk/stylemate/src/app"
)

// SyncCmd re-embeds every wardrobe item into the vector index.
type SyncCmd struct{}

func (s *SyncCmd) Run(ctx *kong.Context, cli *CLI) error {
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

	indexed, err := instance.Assistant.ReindexOwner(context.Background(), cli.User)
	if err != nil {
		return err
	}

	fmt.Printf("Indexed %d wardrobe items for user %d\n", indexed, cli.User)
	return nil
}

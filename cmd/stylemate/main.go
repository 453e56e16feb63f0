package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/spf13/afero"

	"github.com/jihyunk/stylemate/src/config"
)

// CLI represents the main CLI structure
type CLI struct {
	Config   string `short:"c" help:"Config file path (defaults to XDG config dir)"`
	User     int64  `default:"1" help:"User id to act as"`
	LogLevel string `default:"info" help:"Log level"`

	Chat    ChatCmd    `cmd:"" help:"Send a single message to the assistant"`
	Repl    ReplCmd    `cmd:"" help:"Start an interactive conversation"`
	Sync    SyncCmd    `cmd:"" help:"Rebuild the vector index from the wardrobe"`
	Seed    SeedCmd    `cmd:"" help:"Load demo data for local development"`
	Migrate MigrateCmd `cmd:"" help:"Database migrations"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("stylemate"),
		kong.Description("Fashion assistant for your wardrobe"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	err := ctx.Run(&cli)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads the configuration honoring the --config flag.
func loadConfig(cli *CLI) (*config.Config, error) {
	path := cli.Config
	if path == "" {
		path = config.GetDefaultConfigPath()
	}
	loader := config.NewLoader(afero.NewOsFs())
	return loader.Load(path)
}

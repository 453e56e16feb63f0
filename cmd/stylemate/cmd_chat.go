package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/jihyunk/stylemate/src/app"
)

// ChatCmd sends one message and prints the assistant's answer.
type ChatCmd struct {
	Text []string `arg:"" help:"The message to send"`
}

func (c *ChatCmd) Run(ctx *kong.Context, cli *CLI) error {
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

	answer, err := instance.Assistant.HandleMessage(context.Background(), cli.User, strings.Join(c.Text, " "))
	if err != nil {
		return err
	}

	fmt.Println(answerStyle.Render(answer))
	return nil
}

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"

	"github.com/jihyunk/stylemate/src/app"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff87")).Bold(true)
	answerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff"))
	faintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
)

// ReplCmd runs an interactive conversation loop.
type ReplCmd struct{}

func (r *ReplCmd) Run(ctx *kong.Context, cli *CLI) error {
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

	fmt.Println(faintStyle.Render("stylemate — type a message, or /quit to exit"))

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(promptStyle.Render("you> "))
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "/quit" || line == "/exit" {
			break
		}

		answer, err := instance.Assistant.HandleMessage(context.Background(), cli.User, line)
		if err != nil {
			fmt.Println(faintStyle.Render(fmt.Sprintf("error: %v", err)))
			continue
		}
		fmt.Println(answerStyle.Render(answer))
	}
	return scanner.Err()
}

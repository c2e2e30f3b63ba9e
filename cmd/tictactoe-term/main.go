package main

import (
	"log/slog"
	"os"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-web/internal/terminal"
)

// main - plays a hot-seat game on the terminal.
func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	output := termenv.NewOutput(os.Stdout)
	session := terminal.NewSession(logger, terminal.NewRenderer(output))

	if err := session.Run(os.Stdin, os.Stdout); err != nil {
		logger.Error("terminal session failed", "error", err)
		os.Exit(1)
	}
}

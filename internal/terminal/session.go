package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

const help = "commands: <0-8> play a cell, jump <n>, history, restart, quit\n"

var (
	errUnknownCommand = errors.New("unknown command")
	errMoveRequired   = errors.New("jump needs a move number")
)

// Session is a hot-seat game driven by text commands.
type Session struct {
	logger   *slog.Logger
	renderer *Renderer
	game     *entity.Game
}

func NewSession(logger *slog.Logger, renderer *Renderer) *Session {
	return &Session{
		logger:   logger,
		renderer: renderer,
		game:     entity.NewGame(),
	}
}

func (that *Session) Game() *entity.Game {
	return that.game
}

// Run reads commands from in until quit or EOF and writes the output to out.
func (that *Session) Run(in io.Reader, out io.Writer) error {
	if _, err := io.WriteString(out, help+that.screen()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		text, quit := that.Execute(scanner.Text())
		if quit {
			return nil
		}

		if _, err := io.WriteString(out, text); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	return nil
}

// Execute applies one command line and returns the text to show.
func (that *Session) Execute(line string) (string, bool) {
	log := that.logger.With("method", "Execute")

	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return "", false
	}

	var err error

	switch fields[0] {
	case "quit", "q", "exit":
		return "", true
	case "help":
		return help, false
	case "history":
		return that.renderer.History(that.game), false
	case "restart":
		that.game = entity.NewGame()
	case "jump":
		err = that.jump(fields[1:])
	default:
		err = that.play(fields[0])
	}

	if err != nil {
		log.Debug("command rejected", "command", line, "error", err)
		return "error: " + err.Error() + "\n", false
	}

	return that.screen(), false
}

func (that *Session) play(field string) error {
	cell, err := strconv.Atoi(field)
	if err != nil {
		return errUnknownCommand
	}

	return that.game.Play(cell)
}

func (that *Session) jump(args []string) error {
	if len(args) != 1 {
		return errMoveRequired
	}

	move, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%w: %q", apperror.ErrOutOfRange, args[0])
	}

	return that.game.JumpTo(move)
}

func (that *Session) screen() string {
	return "\n" + that.renderer.Board(that.game) + that.renderer.Status(that.game)
}

package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/service"
)

const (
	promptSide   = "Choose your side (x/o): "
	promptMove   = "Your move: "
	promptReplay = "Play again? (y/n): "
	promptStart  = "Press Enter to play..."

	msgInvalidChoice = "Invalid choice"
	msgInvalidMove   = "Invalid move"

	MsgWin  = "You win!"
	MsgLoss = "You lose!"
	MsgDraw = "It's a draw!"
)

var errMalformedMove = errors.New("expected two numbers separated by a space")

// Console talks to the human over line-based text streams.
type Console struct {
	logger *slog.Logger
	lines  chan string
	out    io.Writer

	// set before lines is closed
	scanErr error

	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
}

func New(logger *slog.Logger, in io.Reader, out io.Writer) *Console {
	c := &Console{
		logger:  logger.With("component", "console"),
		lines:   make(chan string),
		out:     out,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}

	go c.scan(in)

	return c
}

// scan - feeds input lines to readLine, so a blocked read never outlives a canceled context.
func (that *Console) scan(in io.Reader) {
	defer close(that.stopped)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		select {
		case that.lines <- scanner.Text():
		case <-that.done:
			return
		}
	}

	that.scanErr = scanner.Err()
	close(that.lines)
}

// Close - stops handing out lines. A scan blocked inside the reader itself ends with the reader.
func (that *Console) Close() {
	that.closeOnce.Do(func() {
		close(that.done)
	})
}

// readLine - prints prompt and returns the next trimmed line.
func (that *Console) readLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	select {
	case <-that.done:
		return "", apperror.ErrInputClosed
	default:
	}

	that.print(prompt)

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("failed to read input: %w", ctx.Err())
	case <-that.done:
		return "", apperror.ErrInputClosed
	case line, ok := <-that.lines:
		if ok {
			return strings.TrimSpace(line), nil
		}

		if that.scanErr != nil {
			return "", fmt.Errorf("failed to read input: %w", that.scanErr)
		}

		return "", apperror.ErrInputClosed
	}
}

// ChooseSide - asks until the human types x or o.
func (that *Console) ChooseSide(ctx context.Context) (entity.Mark, error) {
	for {
		line, err := that.readLine(ctx, promptSide)
		if err != nil {
			return entity.EmptyCell, err
		}

		if mark := entity.Mark(line); mark.IsValid() {
			return mark, nil
		}

		that.println(msgInvalidChoice)
	}
}

// ShowIntro - prints the empty board and how to address cells, then waits for Enter.
func (that *Console) ShowIntro(ctx context.Context, board *entity.Board) error {
	that.ShowBoard(board)
	that.println("Rows and columns are indexed from 0 to 2. For example:")
	that.println("To select the middle left cell, type: 1 0")

	if _, err := that.readLine(ctx, promptStart); err != nil {
		return err
	}

	return nil
}

// ReadMove - asks until the line holds two integers. Bounds and occupancy are the caller's job.
func (that *Console) ReadMove(ctx context.Context) (entity.Cell, error) {
	log := that.logger.With("method", "ReadMove")

	for {
		line, err := that.readLine(ctx, promptMove)
		if err != nil {
			return entity.Cell{}, err
		}

		cell, err := ParseMove(line)
		if err == nil {
			return cell, nil
		}

		log.Debug("malformed move", "input", line, "error", err)
		that.println(msgInvalidMove)
	}
}

// RejectMove - tells the human the parsed move cannot be played.
func (that *Console) RejectMove(err error) {
	that.logger.Debug("move rejected", "error", err)
	that.println(msgInvalidMove)
}

func (that *Console) ShowBoard(board *entity.Board) {
	that.print(board.String())
}

// ShowAIMove - echoes the AI's cell and, for searched moves, the search time.
func (that *Console) ShowAIMove(turn service.BotTurn) {
	that.print("AI's move: ")
	if turn.Timed {
		that.println(fmt.Sprintf("Time: %.2fs", turn.Elapsed.Seconds()))
	}
	that.println(turn.Cell.String())
}

func (that *Console) Announce(outcome entity.Outcome) {
	that.println(OutcomeMessage(outcome))
}

// AskReplay - y starts another match, n ends the session.
func (that *Console) AskReplay(ctx context.Context) (bool, error) {
	for {
		line, err := that.readLine(ctx, promptReplay)
		if err != nil {
			return false, err
		}

		switch strings.ToLower(line) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}

		that.println(msgInvalidChoice)
	}
}

// ParseMove - parses "row col".
func ParseMove(line string) (entity.Cell, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return entity.Cell{}, errMalformedMove
	}

	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return entity.Cell{}, fmt.Errorf("%w: %w", errMalformedMove, err)
	}

	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return entity.Cell{}, fmt.Errorf("%w: %w", errMalformedMove, err)
	}

	return entity.Cell{Row: row, Col: col}, nil
}

func OutcomeMessage(outcome entity.Outcome) string {
	switch outcome {
	case entity.OutcomeWin:
		return MsgWin
	case entity.OutcomeLoss:
		return MsgLoss
	case entity.OutcomeDraw:
		return MsgDraw
	default:
		return ""
	}
}

func (that *Console) print(text string) {
	if _, err := io.WriteString(that.out, text); err != nil {
		that.logger.Error("failed to write to console", "error", err)
	}
}

func (that *Console) println(text string) {
	that.print(text + "\n")
}

package console

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/service"
)

func newConsole(input string) (*Console, *bytes.Buffer) {
	out := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return New(logger, strings.NewReader(input), out), out
}

func TestConsole_ChooseSide(t *testing.T) {
	t.Run("Re-prompts until x or o", func(t *testing.T) {
		// Given: two invalid answers before a valid one
		c, out := newConsole("X\nmaybe\no\n")

		// When: asking for a side
		mark, err := c.ChooseSide(context.Background())

		// Then: o is returned after two complaints
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerO, mark)
		assert.Equal(t, 3, strings.Count(out.String(), promptSide))
		assert.Equal(t, 2, strings.Count(out.String(), msgInvalidChoice))
	})

	t.Run("Closed input", func(t *testing.T) {
		c, _ := newConsole("")

		_, err := c.ChooseSide(context.Background())

		assert.ErrorIs(t, err, apperror.ErrInputClosed)
	})

	t.Run("Canceled context", func(t *testing.T) {
		c, _ := newConsole("x\n")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := c.ChooseSide(ctx)

		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("Cancel while waiting for input", func(t *testing.T) {
		// Given: an input stream that never delivers a line
		in, writer := io.Pipe()
		t.Cleanup(func() { _ = writer.Close() })
		c := New(slog.New(slog.NewTextHandler(io.Discard, nil)), in, io.Discard)
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		// When: the context expires during the prompt
		_, err := c.ChooseSide(ctx)

		// Then: the read gives up
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestConsole_Close(t *testing.T) {
	t.Run("Stops the reader waiting to hand out a line", func(t *testing.T) {
		// Given: a line nobody asked for yet
		c, _ := newConsole("x\ny\n")

		// When: the console is closed
		c.Close()
		c.Close()

		// Then: the reader goroutine ends and prompts report closed input
		select {
		case <-c.stopped:
		case <-time.After(time.Second):
			t.Fatal("reader goroutine still running after Close")
		}

		_, err := c.ChooseSide(context.Background())
		assert.ErrorIs(t, err, apperror.ErrInputClosed)
	})

	t.Run("Unblocks a pending prompt", func(t *testing.T) {
		in, writer := io.Pipe()
		t.Cleanup(func() { _ = writer.Close() })
		c := New(slog.New(slog.NewTextHandler(io.Discard, nil)), in, io.Discard)

		errCh := make(chan error, 1)
		go func() {
			_, err := c.ReadMove(context.Background())
			errCh <- err
		}()

		c.Close()

		select {
		case err := <-errCh:
			assert.ErrorIs(t, err, apperror.ErrInputClosed)
		case <-time.After(time.Second):
			t.Fatal("prompt still waiting after Close")
		}
	})
}

func TestConsole_ReadMove(t *testing.T) {
	t.Run("Skips malformed lines", func(t *testing.T) {
		// Given: garbage, a single number, three numbers, then a valid move
		c, out := newConsole("abc\n1\n1 2 3\n  2   0 \n")

		// When: reading a move
		cell, err := c.ReadMove(context.Background())

		// Then: the valid move is returned
		require.NoError(t, err)
		assert.Equal(t, entity.Cell{Row: 2, Col: 0}, cell)
		assert.Equal(t, 3, strings.Count(out.String(), msgInvalidMove))
	})

	t.Run("Out of range numbers still parse", func(t *testing.T) {
		c, _ := newConsole("5 -1\n")

		cell, err := c.ReadMove(context.Background())

		require.NoError(t, err)
		assert.False(t, cell.InBounds())
	})
}

func TestParseMove(t *testing.T) {
	cell, err := ParseMove("1 0")
	require.NoError(t, err)
	assert.Equal(t, entity.Cell{Row: 1, Col: 0}, cell)

	for _, line := range []string{"", "1", "a b", "1 b", "1,0", "0 1 2"} {
		_, err = ParseMove(line)
		assert.ErrorIs(t, err, errMalformedMove, "line %q", line)
	}
}

func TestConsole_Output(t *testing.T) {
	t.Run("Intro shows the board and the hint", func(t *testing.T) {
		c, out := newConsole("\n")
		var board entity.Board

		err := c.ShowIntro(context.Background(), &board)

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out.String(), " | | \n-----\n"))
		assert.Contains(t, out.String(), "To select the middle left cell, type: 1 0")
	})

	t.Run("AI move with timing", func(t *testing.T) {
		c, out := newConsole("")

		c.ShowAIMove(service.BotTurn{Cell: entity.Cell{Row: 0, Col: 2}, Elapsed: 1250 * time.Millisecond, Timed: true})

		assert.Equal(t, "AI's move: Time: 1.25s\n0 2\n", out.String())
	})

	t.Run("Opening AI move has no timing", func(t *testing.T) {
		c, out := newConsole("")

		c.ShowAIMove(service.BotTurn{Cell: entity.Cell{Row: 2, Col: 2}})

		assert.Equal(t, "AI's move: 2 2\n", out.String())
	})

	t.Run("End of match messages", func(t *testing.T) {
		assert.Equal(t, "You win!", OutcomeMessage(entity.OutcomeWin))
		assert.Equal(t, "You lose!", OutcomeMessage(entity.OutcomeLoss))
		assert.Equal(t, "It's a draw!", OutcomeMessage(entity.OutcomeDraw))

		c, out := newConsole("")
		c.Announce(entity.OutcomeDraw)
		assert.Equal(t, "It's a draw!\n", out.String())
	})

	t.Run("Rejected move", func(t *testing.T) {
		c, out := newConsole("")

		c.RejectMove(apperror.ErrCellOccupied)

		assert.Equal(t, msgInvalidMove+"\n", out.String())
	})
}

func TestConsole_AskReplay(t *testing.T) {
	c, out := newConsole("maybe\nY\nn\n")

	again, err := c.AskReplay(context.Background())
	require.NoError(t, err)
	assert.True(t, again)
	assert.Equal(t, 1, strings.Count(out.String(), msgInvalidChoice))

	again, err = c.AskReplay(context.Background())
	require.NoError(t, err)
	assert.False(t, again)
}

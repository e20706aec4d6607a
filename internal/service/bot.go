package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

var ErrNoAvailableMoves = errors.New("no available moves")

type engine interface {
	IsOpening(board *entity.Board) bool
	BestMove(board *entity.Board, sides entity.Sides) (entity.SearchResult, error)
}

// BotTurn - what the AI played and how long the search took.
type BotTurn struct {
	Cell    entity.Cell
	Score   int
	Nodes   int
	Elapsed time.Duration
	// Timed is false for the opening shortcut, which runs no search.
	Timed bool
}

type BotService interface {
	MakeTurn(match *entity.Match) (BotTurn, error)
}

type botService struct {
	logger *slog.Logger
	engine engine
}

func NewBotService(logger *slog.Logger, engine engine) BotService {
	return &botService{
		logger: logger.With("component", "bot"),
		engine: engine,
	}
}

// MakeTurn - asks the engine for the AI's move and applies it to the match.
func (that *botService) MakeTurn(match *entity.Match) (BotTurn, error) {
	log := that.logger.With("method", "MakeTurn", "match_id", match.ID)

	opening := that.engine.IsOpening(&match.Board)

	start := time.Now()
	result, err := that.engine.BestMove(&match.Board, match.Sides)
	elapsed := time.Since(start)
	if err != nil {
		return BotTurn{}, fmt.Errorf("failed to find best move: %w", err)
	}

	cell, ok := result.Move()
	if !ok {
		return BotTurn{}, ErrNoAvailableMoves
	}

	if err = tictactoe.MakeTurn(match, entity.TurnAI, cell); err != nil {
		return BotTurn{}, fmt.Errorf("bot failed to make turn: %w", err)
	}

	turn := BotTurn{
		Cell:    cell,
		Score:   result.Score,
		Nodes:   result.Nodes,
		Elapsed: elapsed,
		Timed:   !opening,
	}

	log.Debug("bot made turn", "cell", cell.String(), "score", turn.Score, "nodes", turn.Nodes,
		"elapsed", elapsed, "opening", opening)

	return turn, nil
}

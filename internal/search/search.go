// Package search picks optimal Tic-Tac-Toe moves by exhaustive game-tree search.
//
// Scores are from the AI's point of view: a win is worth the number of empty
// cells left at the terminal node plus one, a loss the negation of that, and a
// draw zero. Faster wins and slower losses therefore score higher.
//
// The board passed to a search is used as scratch space: every speculative
// mark is cleared before the call returns, so the board is unchanged afterwards.
package search

import (
	"errors"
	"fmt"
	"math"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const (
	AlgorithmMinimax   = "minimax"
	AlgorithmAlphaBeta = "alpha-beta"
)

var ErrUnknownAlgorithm = errors.New("unknown search algorithm")

// Searcher - returns the best move for the side being maximized (the AI when maximize is true).
type Searcher interface {
	Search(board *entity.Board, sides entity.Sides, maximize bool) (entity.SearchResult, error)
}

// NewSearcher - returns the searcher registered under algorithm.
func NewSearcher(algorithm string) (Searcher, error) {
	switch algorithm {
	case AlgorithmMinimax:
		return NewMinimax(), nil
	case AlgorithmAlphaBeta:
		return NewAlphaBeta(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
	}
}

// terminalScore - checked in order: human wins, AI wins, draw.
func terminalScore(board *entity.Board, sides entity.Sides) (int, bool) {
	if board.IsWin(sides.Human) {
		return -(board.CellsRemaining() + 1), true
	}

	if board.IsWin(sides.AI) {
		return board.CellsRemaining() + 1, true
	}

	if board.IsDraw() {
		return 0, true
	}

	return 0, false
}

// confirmSearchable - a search root must have a legal move and no winner.
func confirmSearchable(board *entity.Board, sides entity.Sides) error {
	if _, terminal := terminalScore(board, sides); terminal {
		return fmt.Errorf("%w: %d cells remaining", apperror.ErrInvalidSearchState, board.CellsRemaining())
	}

	return nil
}

func moverMark(sides entity.Sides, maximize bool) entity.Mark {
	if maximize {
		return sides.AI
	}

	return sides.Human
}

func worstScore(maximize bool) int {
	if maximize {
		return math.MinInt
	}

	return math.MaxInt
}

// improves - strict comparison, so the first cell in row-major order wins ties.
func improves(maximize bool, candidate, best int) bool {
	if maximize {
		return candidate > best
	}

	return candidate < best
}

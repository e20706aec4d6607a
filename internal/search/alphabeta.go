package search

import (
	"math"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

// AlphaBeta is minimax with alpha-beta pruning. It chooses the same move as Minimax.
type AlphaBeta struct{}

func NewAlphaBeta() *AlphaBeta {
	return &AlphaBeta{}
}

func (that *AlphaBeta) Search(board *entity.Board, sides entity.Sides, maximize bool) (entity.SearchResult, error) {
	if err := confirmSearchable(board, sides); err != nil {
		return entity.SearchResult{}, err
	}

	return that.alphaBeta(board, sides, math.MinInt, math.MaxInt, maximize), nil
}

// alphaBeta - alpha is the score the maximizer is already guaranteed, beta the minimizer's.
func (that *AlphaBeta) alphaBeta(board *entity.Board, sides entity.Sides, alpha, beta int, maximize bool) entity.SearchResult {
	if score, terminal := terminalScore(board, sides); terminal {
		return entity.NoMove(score)
	}

	mark := moverMark(sides, maximize)
	best := entity.SearchResult{Score: worstScore(maximize)}
	nodes := 1

	for _, cell := range board.EmptyCells() {
		board.PlaceMark(cell.Row, cell.Col, mark)
		current := that.alphaBeta(board, sides, alpha, beta, !maximize)
		board.ClearCell(cell.Row, cell.Col)

		nodes += current.Nodes
		if improves(maximize, current.Score, best.Score) {
			best = entity.MoveTo(cell, current.Score)
		}

		if maximize {
			alpha = max(alpha, best.Score)
		} else {
			beta = min(beta, best.Score)
		}

		if beta <= alpha {
			break
		}
	}

	best.Nodes = nodes

	return best
}

package search

import (
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

// Minimax explores the full game tree below the given board.
type Minimax struct{}

func NewMinimax() *Minimax {
	return &Minimax{}
}

func (that *Minimax) Search(board *entity.Board, sides entity.Sides, maximize bool) (entity.SearchResult, error) {
	if err := confirmSearchable(board, sides); err != nil {
		return entity.SearchResult{}, err
	}

	return that.minimax(board, sides, maximize), nil
}

func (that *Minimax) minimax(board *entity.Board, sides entity.Sides, maximize bool) entity.SearchResult {
	if score, terminal := terminalScore(board, sides); terminal {
		return entity.NoMove(score)
	}

	mark := moverMark(sides, maximize)
	best := entity.SearchResult{Score: worstScore(maximize)}
	nodes := 1

	for _, cell := range board.EmptyCells() {
		board.PlaceMark(cell.Row, cell.Col, mark)
		current := that.minimax(board, sides, !maximize)
		board.ClearCell(cell.Row, cell.Col)

		nodes += current.Nodes
		if improves(maximize, current.Score, best.Score) {
			best = entity.MoveTo(cell, current.Score)
		}
	}

	best.Nodes = nodes

	return best
}

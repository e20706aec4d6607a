package search

import (
	"fmt"
	"time"

	"golang.org/x/exp/rand"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

// Corners are optimal or tied-optimal first moves on an empty board.
var Corners = [4]entity.Cell{
	{Row: 0, Col: 0},
	{Row: 0, Col: 2},
	{Row: 2, Col: 0},
	{Row: 2, Col: 2},
}

// Engine wraps a Searcher with the opening-move shortcut.
type Engine struct {
	algorithm string
	searcher  Searcher
	rng       *rand.Rand
}

// New - builds an engine for algorithm. A zero seed seeds the opening RNG from the clock.
func New(algorithm string, seed uint64) (*Engine, error) {
	searcher, err := NewSearcher(algorithm)
	if err != nil {
		return nil, err
	}

	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return NewEngine(algorithm, searcher, rand.New(rand.NewSource(seed))), nil
}

func NewEngine(algorithm string, searcher Searcher, rng *rand.Rand) *Engine {
	return &Engine{
		algorithm: algorithm,
		searcher:  searcher,
		rng:       rng,
	}
}

func (that *Engine) Algorithm() string {
	return that.algorithm
}

// IsOpening - true when the board is empty and no search will run.
func (that *Engine) IsOpening(board *entity.Board) bool {
	return board.IsEmpty()
}

// OpeningMove - a uniformly random corner.
func (that *Engine) OpeningMove() entity.Cell {
	return Corners[that.rng.Intn(len(Corners))]
}

// BestMove - best move for the AI. An empty board skips the search and picks a corner.
func (that *Engine) BestMove(board *entity.Board, sides entity.Sides) (entity.SearchResult, error) {
	if that.IsOpening(board) {
		return entity.MoveTo(that.OpeningMove(), 0), nil
	}

	result, err := that.searcher.Search(board, sides, true)
	if err != nil {
		return entity.SearchResult{}, fmt.Errorf("failed to search with %s: %w", that.algorithm, err)
	}

	return result, nil
}

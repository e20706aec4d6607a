package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

// MakeTurn - applies the mover's mark to cell, then settles the match state.
func MakeTurn(match *entity.Match, turn entity.Turn, cell entity.Cell) error {
	if err := match.ConfirmAwaitingMove(); err != nil {
		return err
	}

	if err := ValidateMove(match, turn, cell); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	mark := match.MarkOf(turn)
	match.Board.PlaceMark(cell.Row, cell.Col, mark)
	updateMatchState(match, turn, mark)

	return nil
}

// ValidateMove - checks bounds, turn order and that the cell is free.
func ValidateMove(match *entity.Match, turn entity.Turn, cell entity.Cell) error {
	if !cell.InBounds() {
		return fmt.Errorf("%w: %d %d", apperror.ErrInvalidCell, cell.Row, cell.Col)
	}

	if match.Turn != turn {
		return apperror.ErrNotYourTurn
	}

	if !match.Board.IsEmptyAt(cell.Row, cell.Col) {
		return apperror.ErrCellOccupied
	}

	return nil
}

// updateMatchState - the mover's win is checked before a full board.
func updateMatchState(match *entity.Match, turn entity.Turn, mark entity.Mark) {
	switch {
	case match.Board.IsWin(mark):
		match.State = entity.StateTerminal
		match.Outcome = outcomeFor(turn)
		match.Turn = ""
	case match.Board.IsDraw():
		match.State = entity.StateTerminal
		match.Outcome = entity.OutcomeDraw
		match.Turn = ""
	default:
		match.Turn = toggleTurn(turn)
	}
}

func outcomeFor(winner entity.Turn) entity.Outcome {
	if winner == entity.TurnHuman {
		return entity.OutcomeWin
	}

	return entity.OutcomeLoss
}

func toggleTurn(current entity.Turn) entity.Turn {
	if current == entity.TurnHuman {
		return entity.TurnAI
	}

	return entity.TurnHuman
}

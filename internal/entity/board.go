package entity

import (
	"errors"
	"fmt"
	"strings"
)

type Mark string

const (
	EmptyCell Mark = ""
	PlayerX   Mark = "x"
	PlayerO   Mark = "o"
)

const (
	BoardSide = 3
	BoardSize = BoardSide * BoardSide

	dividerLine = "-----"
)

var (
	ErrInvalidMark = errors.New("invalid mark")

	WinCombos = [][3]int{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
		{0, 3, 6},
		{1, 4, 7},
		{2, 5, 8},
		{0, 4, 8},
		{2, 4, 6},
	}
)

// Opponent - returns the other side's mark.
func (that Mark) Opponent() Mark {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return EmptyCell
	}
}

func (that Mark) IsValid() bool {
	return that == PlayerX || that == PlayerO
}

// Cell is a zero-based board coordinate.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Cell) InBounds() bool {
	return that.Row >= 0 && that.Row < BoardSide && that.Col >= 0 && that.Col < BoardSide
}

func (that Cell) Index() int {
	return that.Row*BoardSide + that.Col
}

func (that Cell) String() string {
	return fmt.Sprintf("%d %d", that.Row, that.Col)
}

func CellAt(index int) Cell {
	return Cell{Row: index / BoardSide, Col: index % BoardSide}
}

// Board is the 3x3 grid stored row-major.
type Board [BoardSize]Mark

// BoardFromFlat - builds a board from nine marks in row-major order.
func BoardFromFlat(cells [BoardSize]Mark) (Board, error) {
	for i, cell := range cells {
		if cell != EmptyCell && !cell.IsValid() {
			return Board{}, fmt.Errorf("%w: %q at cell %d", ErrInvalidMark, cell, i)
		}
	}

	return Board(cells), nil
}

// Flat - returns the nine cells in row-major order.
func (that *Board) Flat() [BoardSize]Mark {
	return *that
}

func (that *Board) At(row, col int) Mark {
	return that[row*BoardSide+col]
}

func (that *Board) IsEmptyAt(row, col int) bool {
	return that.At(row, col) == EmptyCell
}

// PlaceMark - puts mark into the cell without any checks.
func (that *Board) PlaceMark(row, col int, mark Mark) {
	that[row*BoardSide+col] = mark
}

func (that *Board) ClearCell(row, col int) {
	that[row*BoardSide+col] = EmptyCell
}

func (that *Board) CellsRemaining() int {
	amount := 0
	for _, cell := range that {
		if cell == EmptyCell {
			amount++
		}
	}

	return amount
}

func (that *Board) IsEmpty() bool {
	return that.CellsRemaining() == BoardSize
}

// IsWin - reports whether mark holds any full row, column or diagonal.
func (that *Board) IsWin(mark Mark) bool {
	if mark == EmptyCell {
		return false
	}

	for _, combo := range WinCombos {
		if that[combo[0]] == mark && that[combo[1]] == mark && that[combo[2]] == mark {
			return true
		}
	}

	return false
}

// IsDraw - true when no cell is empty. A full board can also be a win, so check IsWin first.
func (that *Board) IsDraw() bool {
	return that.CellsRemaining() == 0
}

// EmptyCells - lists empty cells in row-major order.
func (that *Board) EmptyCells() []Cell {
	cells := make([]Cell, 0, BoardSize)
	for i, cell := range that {
		if cell == EmptyCell {
			cells = append(cells, CellAt(i))
		}
	}

	return cells
}

// Count - number of cells holding mark.
func (that *Board) Count(mark Mark) int {
	amount := 0
	for _, cell := range that {
		if cell == mark {
			amount++
		}
	}

	return amount
}

// String - renders rows joined by "|" with a divider line between them.
func (that *Board) String() string {
	var sb strings.Builder

	for row := range BoardSide {
		cells := make([]string, BoardSide)
		for col := range BoardSide {
			cells[col] = that.At(row, col).Symbol()
		}
		sb.WriteString(strings.Join(cells, "|"))
		sb.WriteString("\n")

		if row < BoardSide-1 {
			sb.WriteString(dividerLine)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// Symbol - how the mark is printed; empty cells are a space.
func (that Mark) Symbol() string {
	if that == EmptyCell {
		return " "
	}

	return string(that)
}

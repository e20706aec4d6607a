package entity

import (
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

type MatchState string

const (
	StateChoosingSide MatchState = "choosing_side"
	StateAwaitingMove MatchState = "awaiting_move"
	StateTerminal     MatchState = "terminal"
)

type Outcome string

const (
	OutcomeNone Outcome = ""
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
	OutcomeDraw Outcome = "draw"
)

type Turn string

const (
	TurnHuman Turn = "human"
	TurnAI    Turn = "ai"
)

// Sides - marks of both participants, fixed once the match starts.
type Sides struct {
	Human Mark `json:"human"`
	AI    Mark `json:"ai"`
}

// NewSides - assigns the remaining mark to the AI.
func NewSides(human Mark) (Sides, error) {
	if !human.IsValid() {
		return Sides{}, fmt.Errorf("%w: %q", apperror.ErrInvalidSide, human)
	}

	return Sides{Human: human, AI: human.Opponent()}, nil
}

// Match - a single game between the human and the AI, outcome is from the human's point of view.
type Match struct {
	ID      string          `json:"id"`
	Board   Board           `json:"board"`
	Sides   Sides           `json:"sides"`
	State   MatchState      `json:"state"`
	Turn    Turn            `json:"turn,omitempty"`
	Outcome Outcome         `json:"outcome,omitempty"`
	Timings []time.Duration `json:"timings,omitempty"`
}

func NewMatch(id string) *Match {
	return &Match{
		ID:    id,
		State: StateChoosingSide,
	}
}

// ChooseSide - fixes the sides and moves the match to its first turn. X always moves first.
func (that *Match) ChooseSide(human Mark) error {
	if that.State != StateChoosingSide {
		return fmt.Errorf("%w: side already chosen", apperror.ErrInvalidSide)
	}

	sides, err := NewSides(human)
	if err != nil {
		return err
	}

	that.Sides = sides
	that.State = StateAwaitingMove
	that.Turn = TurnAI
	if human == PlayerX {
		that.Turn = TurnHuman
	}

	return nil
}

// MarkOf - mark of the side whose turn it is.
func (that *Match) MarkOf(turn Turn) Mark {
	if turn == TurnHuman {
		return that.Sides.Human
	}

	return that.Sides.AI
}

func (that *Match) IsFinished() bool {
	return that.State == StateTerminal
}

func (that *Match) IsAwaitingMove() bool {
	return that.State == StateAwaitingMove
}

// ConfirmAwaitingMove - error unless a move can be applied now.
func (that *Match) ConfirmAwaitingMove() error {
	switch that.State {
	case StateAwaitingMove:
		return nil
	case StateChoosingSide:
		return apperror.ErrMatchNotStarted
	case StateTerminal:
		return apperror.ErrMatchFinished
	default:
		return fmt.Errorf("%w: unknown match state %q", apperror.ErrMatchNotStarted, that.State)
	}
}

// RecordTiming - appends one AI search duration to the timing record.
func (that *Match) RecordTiming(elapsed time.Duration) {
	that.Timings = append(that.Timings, elapsed)
}

// TimingSeconds - the timing record as floating-point seconds, in move order.
func (that *Match) TimingSeconds() []float64 {
	seconds := make([]float64, len(that.Timings))
	for i, elapsed := range that.Timings {
		seconds[i] = elapsed.Seconds()
	}

	return seconds
}

// SearchResult - best move found by a search and its score; positive favors the AI.
type SearchResult struct {
	Cell  Cell `json:"cell"`
	Found bool `json:"found"`
	Score int  `json:"score"`
	Nodes int  `json:"nodes"`
}

// NoMove - result of a terminal node.
func NoMove(score int) SearchResult {
	return SearchResult{Score: score, Nodes: 1}
}

func MoveTo(cell Cell, score int) SearchResult {
	return SearchResult{Cell: cell, Found: true, Score: score}
}

// Move - the chosen cell, false when the result came from a terminal node.
func (that SearchResult) Move() (Cell, bool) {
	return that.Cell, that.Found
}

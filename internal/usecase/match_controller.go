package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/service"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

type console interface {
	ChooseSide(ctx context.Context) (entity.Mark, error)
	ShowIntro(ctx context.Context, board *entity.Board) error
	ReadMove(ctx context.Context) (entity.Cell, error)
	RejectMove(err error)
	ShowBoard(board *entity.Board)
	ShowAIMove(turn service.BotTurn)
	Announce(outcome entity.Outcome)
	AskReplay(ctx context.Context) (bool, error)
}

type bot interface {
	MakeTurn(match *entity.Match) (service.BotTurn, error)
}

type matchRepo interface {
	CreateOrUpdate(ctx context.Context, match *entity.Match) error
	GetByID(ctx context.Context, id string) (*entity.Match, error)
	DeleteByID(ctx context.Context, id string) error
}

type reporter interface {
	Report(match *entity.Match) error
}

// MatchController runs matches between the human at the console and the AI.
type MatchController struct {
	logger    *slog.Logger
	console   console
	bot       bot
	matchRepo matchRepo
	reporter  reporter

	currentID string
}

func NewMatchController(logger *slog.Logger, console console, bot bot, matchRepo matchRepo, reporter reporter) *MatchController {
	return &MatchController{
		logger:    logger.With("component", "match_controller"),
		console:   console,
		bot:       bot,
		matchRepo: matchRepo,
		reporter:  reporter,
	}
}

// Run - plays matches until the human declines another one.
func (that *MatchController) Run(ctx context.Context) error {
	for {
		match, err := that.Play(ctx)
		if err != nil {
			return err
		}

		if err = that.reporter.Report(match); err != nil {
			that.logger.Error("failed to report timings", "match_id", match.ID, "error", err)
		}

		again, err := that.console.AskReplay(ctx)
		if err != nil {
			return err
		}

		if !again {
			return nil
		}
	}
}

// Play - runs a single match from side choice to the final announcement.
func (that *MatchController) Play(ctx context.Context) (*entity.Match, error) {
	log := that.logger.With("method", "Play")

	match, err := that.newMatch(ctx)
	if err != nil {
		return nil, err
	}

	log = log.With("match_id", match.ID)

	human, err := that.console.ChooseSide(ctx)
	if err != nil {
		return nil, err
	}

	if err = match.ChooseSide(human); err != nil {
		return nil, fmt.Errorf("failed to choose side: %w", err)
	}

	if err = that.updateMatch(ctx, match); err != nil {
		return nil, err
	}

	log.Info("match started", "human", match.Sides.Human, "ai", match.Sides.AI)

	if err = that.console.ShowIntro(ctx, &match.Board); err != nil {
		return nil, err
	}

	for !match.IsFinished() {
		if match.Turn == entity.TurnHuman {
			err = that.humanTurn(ctx, match)
		} else {
			err = that.aiTurn(match)
		}

		if err != nil {
			return nil, err
		}

		if err = that.updateMatch(ctx, match); err != nil {
			return nil, err
		}
	}

	that.console.Announce(match.Outcome)
	log.Info("match finished", "outcome", match.Outcome, "timed_moves", len(match.Timings))

	return match, nil
}

// humanTurn - re-prompts until the human names a free cell on the board.
func (that *MatchController) humanTurn(ctx context.Context, match *entity.Match) error {
	for {
		cell, err := that.console.ReadMove(ctx)
		if err != nil {
			return err
		}

		err = tictactoe.MakeTurn(match, entity.TurnHuman, cell)
		if err == nil {
			break
		}

		if !errors.Is(err, apperror.ErrInvalidCell) && !errors.Is(err, apperror.ErrCellOccupied) {
			return fmt.Errorf("failed to make human turn: %w", err)
		}

		that.console.RejectMove(err)
	}

	that.console.ShowBoard(&match.Board)

	return nil
}

func (that *MatchController) aiTurn(match *entity.Match) error {
	turn, err := that.bot.MakeTurn(match)
	if err != nil {
		return fmt.Errorf("failed to make ai turn: %w", err)
	}

	if turn.Timed {
		match.RecordTiming(turn.Elapsed)
	}

	that.console.ShowAIMove(turn)
	that.console.ShowBoard(&match.Board)

	return nil
}

// newMatch - drops the previous match, so the store holds at most the current one.
func (that *MatchController) newMatch(ctx context.Context) (*entity.Match, error) {
	if that.currentID != "" {
		that.deleteMatch(ctx, that.currentID)
	}

	match := entity.NewMatch(uuid.NewString())
	if err := that.updateMatch(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	that.currentID = match.ID

	return match, nil
}

func (that *MatchController) updateMatch(ctx context.Context, match *entity.Match) error {
	if err := that.matchRepo.CreateOrUpdate(ctx, match); err != nil {
		return fmt.Errorf("failed to update match: %w", err)
	}

	return nil
}

func (that *MatchController) deleteMatch(ctx context.Context, id string) {
	log := that.logger.With("method", "deleteMatch", "match_id", id)

	if err := that.matchRepo.DeleteByID(ctx, id); err != nil {
		if !errors.Is(err, apperror.ErrMatchNotFound) {
			log.Error("failed to delete match", "error", err)
		}

		return
	}

	log.Debug("match deleted")
}

// CurrentMatch - the stored state of the match being played, if any.
func (that *MatchController) CurrentMatch(ctx context.Context) (*entity.Match, error) {
	if that.currentID == "" {
		return nil, apperror.ErrMatchNotFound
	}

	match, err := that.matchRepo.GetByID(ctx, that.currentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	return match, nil
}

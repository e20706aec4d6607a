package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/config"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/report"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/search"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/service"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/transport/console"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/usecase"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	matchRepo, closeRepo, err := newMatchRepository(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err = closeRepo(); err != nil {
			log.Error("could not close match storage", "error", err)
		}
	}()

	engine, err := search.New(conf.Algorithm, conf.Seed)
	if err != nil {
		return fmt.Errorf("could not create search engine: %w", err)
	}

	bot := service.NewBotService(logger, engine)
	cons := console.New(logger, os.Stdin, os.Stdout)
	defer cons.Close()
	reporter := report.NewReporter(logger, os.Stdout, engine.Algorithm(), conf.Timings.CSVPath, conf.Timings.ShowChart())
	controller := usecase.NewMatchController(logger, cons, bot, matchRepo, reporter)

	log.Info("Starting session", "algorithm", engine.Algorithm(), "storage", conf.Storage.Driver)

	runErr := controller.Run(ctx)
	switch {
	case runErr == nil:
		return nil
	case errors.Is(runErr, apperror.ErrInputClosed):
		log.Info("Input closed, shutting down")
		return nil
	case errors.Is(runErr, context.Canceled):
		log.Info("Application context canceled, shutting down")
		return nil
	default:
		return fmt.Errorf("session failed: %w", runErr)
	}
}

// newMatchRepository - picks the match store configured for the session.
func newMatchRepository(ctx context.Context, conf *config.Config) (repository.MatchRepository, func() error, error) {
	switch conf.Storage.Driver {
	case config.StorageRedis:
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return nil, nil, ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return repository.NewMatchRepository(redisStorage.Connection), redisStorage.Close, nil
	default:
		return repository.NewMemoryMatchRepository(), func() error { return nil }, nil
	}
}

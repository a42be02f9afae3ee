package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cardstackgames/president-client/internal/config"
	"github.com/cardstackgames/president-client/internal/pkg"
	"github.com/cardstackgames/president-client/internal/repository"
	"github.com/cardstackgames/president-client/internal/repository/storage"
	"github.com/cardstackgames/president-client/internal/transport/rest"
	"github.com/cardstackgames/president-client/internal/usecase"
	"github.com/cardstackgames/president-client/internal/view"
)

// RunApp - wires one game session together and runs it until the game
// finishes, the player quits or a signal arrives.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("received signal, shutting down", "signal", sig)
		cancel()
	}()

	gameID := conf.Game.ID
	playerID := conf.Game.PlayerID

	var sessionRepo repository.SessionRepository

	if addr := conf.Redis.GetRedisAddr(); addr != "" {
		redisStorage, err := storage.NewRedisStorage(ctx, addr)
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		sessionRepo = repository.NewSessionRepository(redisStorage.Connection)

		// resume the seat held before a restart
		record, err := sessionRepo.GetByGameID(ctx, gameID)
		switch {
		case err == nil && playerID == "":
			playerID = record.PlayerID
			log.Info("resuming session", "game_id", gameID, "player_id", playerID)
		case err != nil && !errors.Is(err, repository.ErrSessionNotFound):
			return fmt.Errorf("could not load saved session: %w", err)
		}
	}

	if playerID == "" {
		playerID = pkg.GeneratePlayerID()
		log.Info("generated player id", "player_id", playerID)
	}

	apiClient := rest.NewClient(conf.Server.BaseURL)

	synchronizer := usecase.NewSynchronizer(logger, apiClient, gameID, conf.Game.PollInterval)
	roster := usecase.NewRosterResolver(logger, apiClient, gameID)
	mover := usecase.NewMoveSubmitter(apiClient, synchronizer, gameID, playerID)
	console := view.NewConsole(os.Stdout, playerID)

	session := usecase.NewSession(logger, apiClient, synchronizer, roster, mover, sessionRepo, console, gameID, playerID)

	log.Info("starting session", "game_id", gameID, "player_id", playerID, "server", conf.Server.BaseURL)

	if err := session.Run(ctx, os.Stdin); err != nil {
		return fmt.Errorf("session ended with error: %w", err)
	}

	return nil
}

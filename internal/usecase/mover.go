package usecase

import (
	"context"
	"fmt"

	"github.com/cardstackgames/president-client/internal/apperror"
	"github.com/cardstackgames/president-client/internal/entity"
	"github.com/cardstackgames/president-client/internal/game"
)

type moveSubmitAPI interface {
	SubmitMove(ctx context.Context, gameID string, move entity.MoveRequest) (*entity.GameSnapshot, error)
}

type snapshotStore interface {
	Current() *entity.GameSnapshot
	Apply(snapshot *entity.GameSnapshot)
}

// MoveSubmitter gates player moves and forwards accepted ones to the server.
// A gated-out move never touches the network; a failed submission leaves the
// current snapshot untouched.
type MoveSubmitter struct {
	api      moveSubmitAPI
	store    snapshotStore
	gameID   string
	playerID string
}

func NewMoveSubmitter(api moveSubmitAPI, store snapshotStore, gameID, playerID string) *MoveSubmitter {
	return &MoveSubmitter{
		api:      api,
		store:    store,
		gameID:   gameID,
		playerID: playerID,
	}
}

// PlayCard submits a PLAY move for the given card. The gate reads the
// snapshot as it is right now, so a background poll racing this call cannot
// leave a stale verdict in place.
func (that *MoveSubmitter) PlayCard(ctx context.Context, card entity.Card) error {
	snapshot := that.store.Current()

	if !game.IsMyTurn(snapshot, that.playerID) {
		return apperror.ErrNotYourTurn
	}

	if !game.CanPlay(snapshot, that.playerID, card) {
		return apperror.ErrCardNotPlayable
	}

	return that.submit(ctx, entity.MoveRequest{
		Move:      entity.MovePlay,
		CardValue: card.Value,
		PlayerID:  that.playerID,
	})
}

// Pass submits a PASS move. The placeholder card carries no identity and is
// never run through the playable gate.
func (that *MoveSubmitter) Pass(ctx context.Context) error {
	if !game.IsMyTurn(that.store.Current(), that.playerID) {
		return apperror.ErrNotYourTurn
	}

	return that.submit(ctx, entity.MoveRequest{
		Move:      entity.MovePass,
		CardValue: entity.PassCard().Value,
		PlayerID:  that.playerID,
	})
}

func (that *MoveSubmitter) submit(ctx context.Context, move entity.MoveRequest) error {
	snapshot, err := that.api.SubmitMove(ctx, that.gameID, move)
	if err != nil {
		return fmt.Errorf("failed to submit move: %w", err)
	}

	that.store.Apply(snapshot)

	return nil
}

package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/cardstackgames/president-client/internal/entity"
)

type playerFetcher interface {
	GetPlayer(ctx context.Context, gameID, playerID string) (*entity.PlayerSummary, error)
}

// RosterResolver keeps the derived per-player summary list. The cache is
// rebuilt wholesale; no partial invalidation.
type RosterResolver struct {
	logger *slog.Logger
	api    playerFetcher
	gameID string

	mu      sync.RWMutex
	players []*entity.PlayerSummary
	lastKey string
}

func NewRosterResolver(logger *slog.Logger, api playerFetcher, gameID string) *RosterResolver {
	return &RosterResolver{
		logger: logger.With("component", "roster"),
		api:    api,
		gameID: gameID,
	}
}

// Refresh re-fetches every player summary when the roster value or the turn
// counter changed since the last applied cycle. An unchanged fingerprint is a
// no-op, so polling an unchanged game does not fan out. A failure in any one
// fetch discards the whole cycle and keeps the previous roster.
func (that *RosterResolver) Refresh(ctx context.Context, snapshot *entity.GameSnapshot) error {
	key := snapshot.RosterKey()

	that.mu.RLock()
	unchanged := key == that.lastKey && that.players != nil
	that.mu.RUnlock()

	if unchanged {
		return nil
	}

	players, err := that.fetchAll(ctx, snapshot.PlayerIDs)
	if err != nil {
		return fmt.Errorf("roster cycle discarded: %w", err)
	}

	sort.SliceStable(players, func(i, j int) bool {
		return players[i].SeatIndex < players[j].SeatIndex
	})

	that.mu.Lock()
	that.players = players
	that.lastKey = key
	that.mu.Unlock()

	that.logger.Debug("roster refreshed", "players", len(players), "key", key)

	return nil
}

// fetchAll fans out one request per player id and joins all of them before
// anything is applied.
func (that *RosterResolver) fetchAll(ctx context.Context, ids []string) ([]*entity.PlayerSummary, error) {
	players := make([]*entity.PlayerSummary, len(ids))
	errs := make([]error, len(ids))

	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)

		go func(i int, id string) {
			defer wg.Done()
			players[i], errs[i] = that.api.GetPlayer(ctx, that.gameID, id)
		}(i, id)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return players, nil
}

// Players returns the cached roster ordered by seat index ascending.
func (that *RosterResolver) Players() []*entity.PlayerSummary {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.players
}

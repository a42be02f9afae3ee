package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardstackgames/president-client/internal/apperror"
	"github.com/cardstackgames/president-client/internal/entity"
)

type fakeSessionAPI struct {
	mu sync.Mutex

	game    *entity.GameSnapshot
	players map[string]*entity.PlayerSummary

	startCalls int
	joinCalls  int
	joined     []string
}

func (that *fakeSessionAPI) GetGame(_ context.Context, _ string) (*entity.GameSnapshot, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.game, nil
}

func (that *fakeSessionAPI) GetPlayer(_ context.Context, _, playerID string) (*entity.PlayerSummary, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if player, ok := that.players[playerID]; ok {
		// hand out a fresh value per fetch, like the wire would
		copied := *player
		return &copied, nil
	}

	return &entity.PlayerSummary{ID: playerID}, nil
}

func (that *fakeSessionAPI) StartGame(_ context.Context, _ string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.startCalls++

	return nil
}

func (that *fakeSessionAPI) JoinGame(_ context.Context, _, playerID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.joinCalls++
	that.joined = append(that.joined, playerID)

	return nil
}

type nopRenderer struct{}

func (nopRenderer) Render(_ *entity.GameSnapshot, _ []*entity.PlayerSummary, _ *entity.PlayerSummary) {
}

type recordingStore struct {
	saved   []*entity.SessionRecord
	deleted []string
}

func (that *recordingStore) Save(_ context.Context, record *entity.SessionRecord) error {
	that.saved = append(that.saved, record)
	return nil
}

func (that *recordingStore) DeleteByGameID(_ context.Context, gameID string) error {
	that.deleted = append(that.deleted, gameID)
	return nil
}

func newTestSession(api *fakeSessionAPI, store sessionRepo) *Session {
	logger := discardLogger()
	synchronizer := NewSynchronizer(logger, api, "g1", time.Second)
	roster := NewRosterResolver(logger, api, "g1")
	mover := NewMoveSubmitter(&fakeMoveAPI{}, synchronizer, "g1", "alice")

	return NewSession(logger, api, synchronizer, roster, mover, store, nopRenderer{}, "g1", "alice")
}

func TestSession_StartGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Disabled with fewer than two waiting players", func(t *testing.T) {
		// Given: a waiting room with only alice in it
		snapshot := &entity.GameSnapshot{Status: entity.StatusWaiting, WaitingPlayerIDs: []string{"alice"}}

		api := &fakeSessionAPI{game: snapshot}
		session := newTestSession(api, nil)
		session.sync.Apply(snapshot)
		session.advancePhase(snapshot)

		// Then: the start action is unavailable and no request goes out
		assert.False(t, session.CanStartGame())
		require.ErrorIs(t, session.StartGame(ctx), apperror.ErrNotEnoughPlayers)
		assert.Zero(t, api.startCalls)
	})

	t.Run("Enabled with two waiting players and issues exactly one request", func(t *testing.T) {
		// Given: alice and bob both waiting
		snapshot := &entity.GameSnapshot{Status: entity.StatusWaiting, WaitingPlayerIDs: []string{"alice", "bob"}}

		api := &fakeSessionAPI{game: snapshot}
		session := newTestSession(api, nil)
		session.sync.Apply(snapshot)
		session.advancePhase(snapshot)

		require.True(t, session.CanStartGame())

		// When: invoking start, then trying again
		require.NoError(t, session.StartGame(ctx))
		err := session.StartGame(ctx)

		// Then: only the first invocation reached the server
		require.ErrorIs(t, err, apperror.ErrGameAlreadyStarted)
		assert.Equal(t, 1, api.startCalls)
	})

	t.Run("Rejected once the game is in progress", func(t *testing.T) {
		snapshot := &entity.GameSnapshot{Status: entity.StatusInProgress, CurrentPlayerID: "alice", PlayerIDs: []string{"alice", "bob"}}

		api := &fakeSessionAPI{game: snapshot}
		session := newTestSession(api, nil)
		session.sync.Apply(snapshot)
		session.advancePhase(snapshot)

		require.ErrorIs(t, session.StartGame(ctx), apperror.ErrGameAlreadyStarted)
		assert.Zero(t, api.startCalls)
	})
}

func TestSession_advancePhase(t *testing.T) {
	t.Run("Follows the authoritative status forward", func(t *testing.T) {
		// Given: a fresh session
		session := newTestSession(&fakeSessionAPI{}, nil)
		require.Equal(t, PhaseLoading, session.phase)

		// When: waiting, then in-progress snapshots arrive
		session.advancePhase(&entity.GameSnapshot{Status: entity.StatusWaiting})
		assert.Equal(t, PhaseWaiting, session.phase)

		session.advancePhase(&entity.GameSnapshot{Status: entity.StatusInProgress})
		assert.Equal(t, PhaseInProgress, session.phase)

		session.advancePhase(&entity.GameSnapshot{Status: entity.StatusFinished})
		assert.Equal(t, PhaseFinished, session.phase)
	})

	t.Run("Never walks backwards on a stale snapshot", func(t *testing.T) {
		// Given: a session already in progress
		session := newTestSession(&fakeSessionAPI{}, nil)
		session.advancePhase(&entity.GameSnapshot{Status: entity.StatusInProgress})

		// When: a slow poll response still reporting waiting lands
		session.advancePhase(&entity.GameSnapshot{Status: entity.StatusWaiting})

		// Then: the lifecycle holds its ground
		assert.Equal(t, PhaseInProgress, session.phase)
	})

	t.Run("Unknown status is ignored", func(t *testing.T) {
		session := newTestSession(&fakeSessionAPI{}, nil)
		session.advancePhase(&entity.GameSnapshot{Status: entity.StatusWaiting})

		session.advancePhase(&entity.GameSnapshot{Status: "corrupted"})

		assert.Equal(t, PhaseWaiting, session.phase)
	})
}

func TestSession_ensureJoined(t *testing.T) {
	ctx := context.Background()

	t.Run("Already seated players do not re-join", func(t *testing.T) {
		// Given: alice already in the waiting room
		api := &fakeSessionAPI{game: &entity.GameSnapshot{Status: entity.StatusWaiting, WaitingPlayerIDs: []string{"alice"}}}
		session := newTestSession(api, nil)

		require.NoError(t, session.ensureJoined(ctx))
		assert.Zero(t, api.joinCalls)
	})

	t.Run("Joins a waiting game once", func(t *testing.T) {
		// Given: a waiting game without alice
		api := &fakeSessionAPI{game: &entity.GameSnapshot{Status: entity.StatusWaiting, WaitingPlayerIDs: []string{"bob"}}}
		session := newTestSession(api, nil)

		require.NoError(t, session.ensureJoined(ctx))
		assert.Equal(t, []string{"alice"}, api.joined)
	})

	t.Run("Refuses to join a game already in progress", func(t *testing.T) {
		api := &fakeSessionAPI{game: &entity.GameSnapshot{Status: entity.StatusInProgress, PlayerIDs: []string{"bob", "carol"}, CurrentPlayerID: "bob"}}
		session := newTestSession(api, nil)

		require.ErrorIs(t, session.ensureJoined(ctx), apperror.ErrGameAlreadyStarted)
		assert.Zero(t, api.joinCalls)
	})
}

func TestSession_handleSnapshot(t *testing.T) {
	ctx := context.Background()

	t.Run("Persists applied snapshots and deletes the record when finished", func(t *testing.T) {
		// Given: a session with a recording store
		api := &fakeSessionAPI{players: map[string]*entity.PlayerSummary{
			"alice": {ID: "alice", SeatIndex: 0},
			"bob":   {ID: "bob", SeatIndex: 1},
		}}
		store := &recordingStore{}
		session := newTestSession(api, store)

		// When: an in-progress snapshot is handled
		inProgress := &entity.GameSnapshot{
			Status:          entity.StatusInProgress,
			TurnNumber:      2,
			CurrentPlayerID: "alice",
			PlayerIDs:       []string{"alice", "bob"},
		}
		session.handleSnapshot(ctx, inProgress)

		// Then: the seat was saved with the snapshot
		require.Len(t, store.saved, 1)
		assert.Equal(t, "g1", store.saved[0].GameID)
		assert.Equal(t, "alice", store.saved[0].PlayerID)
		assert.Same(t, inProgress, store.saved[0].Snapshot)

		// When: the game finishes
		session.handleSnapshot(ctx, &entity.GameSnapshot{Status: entity.StatusFinished, PlayerIDs: []string{"alice", "bob"}})

		// Then: the saved session is gone
		assert.Equal(t, []string{"g1"}, store.deleted)
		assert.Equal(t, PhaseFinished, session.phase)
	})

	t.Run("Refreshes the local hand when the turn advances", func(t *testing.T) {
		// Given: a hand document for alice
		api := &fakeSessionAPI{players: map[string]*entity.PlayerSummary{
			"alice": {ID: "alice", Hand: []entity.Card{{Value: 7, Playable: true}}},
		}}
		session := newTestSession(api, nil)

		// When: handling two snapshots on the same turn
		snapshot := &entity.GameSnapshot{Status: entity.StatusInProgress, TurnNumber: 2, CurrentPlayerID: "alice", PlayerIDs: []string{"alice"}}
		session.handleSnapshot(ctx, snapshot)

		require.NotNil(t, session.you)
		firstFetch := session.you

		session.handleSnapshot(ctx, snapshot)

		// Then: the hand was fetched once, not per poll
		assert.Same(t, firstFetch, session.you)

		// When: the turn advances
		session.handleSnapshot(ctx, &entity.GameSnapshot{Status: entity.StatusInProgress, TurnNumber: 3, CurrentPlayerID: "alice", PlayerIDs: []string{"alice"}})

		// Then: a fresh hand document was fetched
		assert.NotSame(t, firstFetch, session.you)
	})
}

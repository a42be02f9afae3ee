package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cardstackgames/president-client/internal/entity"
)

func TestIsMyTurn(t *testing.T) {
	t.Run("True when the snapshot names the player", func(t *testing.T) {
		// Given: an in-progress game where alice moves next
		snapshot := &entity.GameSnapshot{Status: entity.StatusInProgress, CurrentPlayerID: "alice"}

		assert.True(t, IsMyTurn(snapshot, "alice"))
	})

	t.Run("False for any other player", func(t *testing.T) {
		snapshot := &entity.GameSnapshot{Status: entity.StatusInProgress, CurrentPlayerID: "alice"}

		assert.False(t, IsMyTurn(snapshot, "bob"))
	})

	t.Run("False while the game is waiting", func(t *testing.T) {
		// Given: a waiting game with no current player
		snapshot := &entity.GameSnapshot{Status: entity.StatusWaiting}

		// Then: nobody's turn, even for an empty local id
		assert.False(t, IsMyTurn(snapshot, "alice"))
		assert.False(t, IsMyTurn(snapshot, ""))
	})
}

func TestCanPlay(t *testing.T) {
	t.Run("True only on own turn with a playable card", func(t *testing.T) {
		snapshot := &entity.GameSnapshot{Status: entity.StatusInProgress, CurrentPlayerID: "alice"}
		card := entity.Card{Value: 7, Playable: true}

		assert.True(t, CanPlay(snapshot, "alice", card))
	})

	t.Run("False when the server flagged the card unplayable", func(t *testing.T) {
		snapshot := &entity.GameSnapshot{Status: entity.StatusInProgress, CurrentPlayerID: "alice"}
		card := entity.Card{Value: 7, Playable: false}

		assert.False(t, CanPlay(snapshot, "alice", card))
	})

	t.Run("False out of turn regardless of the playable flag", func(t *testing.T) {
		// Given: bob holds a playable card on alice's turn
		snapshot := &entity.GameSnapshot{Status: entity.StatusInProgress, CurrentPlayerID: "alice"}
		card := entity.Card{Value: 7, Playable: true}

		assert.False(t, CanPlay(snapshot, "bob", card))
	})
}

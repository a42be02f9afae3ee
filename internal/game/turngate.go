// Package game holds the client-side turn gate. These predicates exist to
// avoid firing obviously-illegal requests; every deeper legality rule lives
// on the server and is reflected back through the playable flag on the hand.
package game

import "github.com/cardstackgames/president-client/internal/entity"

// IsMyTurn reports whether playerID may move on the given snapshot. While the
// game is waiting there is no current player, so it is nobody's turn.
func IsMyTurn(snapshot *entity.GameSnapshot, playerID string) bool {
	return snapshot.IsInProgress() && snapshot.CurrentPlayerID == playerID
}

// CanPlay reports whether playerID may attempt to play the given card.
func CanPlay(snapshot *entity.GameSnapshot, playerID string, card entity.Card) bool {
	return IsMyTurn(snapshot, playerID) && card.Playable
}

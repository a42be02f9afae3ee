package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotYourTurn        = errors.New("it's not your turn")
	ErrCardNotPlayable    = errors.New("card is not playable")
	ErrNotEnoughPlayers   = errors.New("not enough players to start the game")
	ErrGameAlreadyStarted = errors.New("game is already started")
)

// RejectedError carries the error document the game server returns with a
// non-2xx status. The transport layer parses the body into this error before
// anything above it sees the response.
type RejectedError struct {
	StatusCode int
	Messages   []string
}

func (that *RejectedError) Error() string {
	if len(that.Messages) == 0 {
		return fmt.Sprintf("request rejected with status %d", that.StatusCode)
	}

	return that.Messages[0]
}

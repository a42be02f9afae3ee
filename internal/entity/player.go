package entity

const (
	PlayerActive   = "ACTIVE"
	PlayerPassed   = "PASSED"
	PlayerFinished = "FINISHED"
)

// StatusToPlay is the display status of the player whose turn it is.
const StatusToPlay = "TO PLAY"

// PlayerSummary is the per-player document fetched from the server: the hand
// (with server-computed playable flags for the querying player), the raw game
// status and the seat used to order display.
type PlayerSummary struct {
	ID        string `json:"id"`
	Hand      []Card `json:"hand"`
	Status    string `json:"status"`
	SeatIndex int    `json:"seat_index"`
}

// DisplayStatus derives what to render next to the player: "TO PLAY" for the
// current player, the raw status when it is anything but ACTIVE, and nothing
// for the common in-game case.
func (that *PlayerSummary) DisplayStatus(currentPlayerID string) string {
	if that.ID == currentPlayerID {
		return StatusToPlay
	}

	if that.Status != PlayerActive {
		return that.Status
	}

	return ""
}

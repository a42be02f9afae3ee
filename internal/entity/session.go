package entity

// SessionRecord is what survives a client restart: which seat is held in
// which game, plus the last snapshot that was applied.
type SessionRecord struct {
	GameID   string        `json:"game_id"`
	PlayerID string        `json:"player_id"`
	Snapshot *GameSnapshot `json:"snapshot,omitempty"`
}

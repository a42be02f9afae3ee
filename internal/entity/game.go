package entity

import (
	"fmt"
	"strings"
)

const (
	// StatusLoading exists only client-side, before the first successful fetch.
	StatusLoading    = "loading"
	StatusWaiting    = "waiting"
	StatusInProgress = "in_progress"
	StatusFinished   = "finished"
)

const (
	MovePlay = "PLAY"
	MovePass = "PASS"
)

// GameSnapshot is the authoritative server-reported state of one game
// instance at a point in time. It is replaced wholesale on every successful
// poll or move submission, never patched in place.
type GameSnapshot struct {
	Status           string   `json:"status"`
	TurnNumber       int      `json:"turn_no"`
	CurrentPlayerID  string   `json:"current_player_id,omitempty"`
	PlayerIDs        []string `json:"player_ids"`
	WaitingPlayerIDs []string `json:"waiting_player_ids,omitempty"`
	TopCard          *Card    `json:"top_card,omitempty"`
}

// NewLoadingSnapshot is the sentinel snapshot held before the first fetch.
func NewLoadingSnapshot() *GameSnapshot {
	return &GameSnapshot{Status: StatusLoading}
}

func (that *GameSnapshot) IsLoading() bool {
	return that.Status == StatusLoading
}

func (that *GameSnapshot) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *GameSnapshot) IsInProgress() bool {
	return that.Status == StatusInProgress
}

func (that *GameSnapshot) IsFinished() bool {
	return that.Status == StatusFinished
}

// RosterKey is a content-derived fingerprint of the roster and turn counter.
// Two snapshots with the same player ids in the same order on the same turn
// yield the same key, even though every poll delivers a fresh value, so
// comparing keys avoids re-fetching an unchanged roster.
func (that *GameSnapshot) RosterKey() string {
	return fmt.Sprintf("%s|%d", strings.Join(that.PlayerIDs, ","), that.TurnNumber)
}

// HasPlayer reports whether the id already holds a seat, joined or waiting.
func (that *GameSnapshot) HasPlayer(id string) bool {
	for _, playerID := range that.PlayerIDs {
		if playerID == id {
			return true
		}
	}

	for _, playerID := range that.WaitingPlayerIDs {
		if playerID == id {
			return true
		}
	}

	return false
}

// MoveRequest is the wire document submitted for one turn.
type MoveRequest struct {
	Move      string `json:"move"`
	CardValue int    `json:"card_value"`
	PlayerID  string `json:"player_id"`
}

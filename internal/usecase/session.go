package usecase

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/cardstackgames/president-client/internal/apperror"
	"github.com/cardstackgames/president-client/internal/entity"
)

const minPlayersToStart = 2

// Phase is the client-side lifecycle of one game session. Transitions only
// move forward; a snapshot regression never walks the phase backwards.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseWaiting
	PhaseInProgress
	PhaseFinished
)

func (that Phase) String() string {
	switch that {
	case PhaseWaiting:
		return "waiting"
	case PhaseInProgress:
		return "in_progress"
	case PhaseFinished:
		return "finished"
	default:
		return "loading"
	}
}

func phaseForStatus(status string) (Phase, bool) {
	switch status {
	case entity.StatusLoading:
		return PhaseLoading, true
	case entity.StatusWaiting:
		return PhaseWaiting, true
	case entity.StatusInProgress:
		return PhaseInProgress, true
	case entity.StatusFinished:
		return PhaseFinished, true
	default:
		return PhaseLoading, false
	}
}

type sessionAPI interface {
	GetGame(ctx context.Context, gameID string) (*entity.GameSnapshot, error)
	GetPlayer(ctx context.Context, gameID, playerID string) (*entity.PlayerSummary, error)
	StartGame(ctx context.Context, gameID string) error
	JoinGame(ctx context.Context, gameID, playerID string) error
}

type sessionRepo interface {
	Save(ctx context.Context, record *entity.SessionRecord) error
	DeleteByGameID(ctx context.Context, gameID string) error
}

type renderer interface {
	Render(snapshot *entity.GameSnapshot, players []*entity.PlayerSummary, you *entity.PlayerSummary)
}

// Session is the top-level lifecycle of one joined game: it drives the
// synchronizer, feeds applied snapshots into the roster resolver and the
// phase machine, and turns player commands into gated moves.
type Session struct {
	logger *slog.Logger
	api    sessionAPI
	sync   *Synchronizer
	roster *RosterResolver
	mover  *MoveSubmitter
	store  sessionRepo
	view   renderer

	gameID   string
	playerID string

	phase    Phase
	started  bool
	you      *entity.PlayerSummary
	lastTurn int
}

func NewSession(
	logger *slog.Logger,
	api sessionAPI,
	sync *Synchronizer,
	roster *RosterResolver,
	mover *MoveSubmitter,
	store sessionRepo,
	view renderer,
	gameID, playerID string,
) *Session {
	return &Session{
		logger: logger.With("component", "session"),
		api:    api,
		sync:   sync,
		roster: roster,
		mover:  mover,
		store:  store,
		view:   view,

		gameID:   gameID,
		playerID: playerID,

		phase: PhaseLoading,
	}
}

// Run joins the game if needed, starts polling and loops over snapshot
// updates and player commands until the game finishes, the command stream
// ends or the context is canceled. Polling is torn down on every exit path.
func (that *Session) Run(ctx context.Context, commands io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer that.sync.Cancel()

	if err := that.ensureJoined(ctx); err != nil {
		return fmt.Errorf("could not join game %s: %w", that.gameID, err)
	}

	go that.sync.Run(ctx)

	lines := make(chan string)
	go readCommands(ctx, commands, lines)

	for {
		select {
		case <-ctx.Done():
			return nil
		case snapshot := <-that.sync.Updates():
			that.handleSnapshot(ctx, snapshot)

			if that.phase == PhaseFinished {
				that.logger.Info("game finished", "game_id", that.gameID)
				return nil
			}
		case line, ok := <-lines:
			if !ok {
				return nil
			}

			if quit := that.handleCommand(ctx, line); quit {
				return nil
			}
		}
	}
}

// ensureJoined claims a seat when this player is not in the game yet. Joining
// is only possible while the game is still waiting.
func (that *Session) ensureJoined(ctx context.Context) error {
	snapshot, err := that.api.GetGame(ctx, that.gameID)
	if err != nil {
		return fmt.Errorf("failed to fetch game: %w", err)
	}

	if snapshot.HasPlayer(that.playerID) {
		return nil
	}

	if !snapshot.IsWaiting() {
		return apperror.ErrGameAlreadyStarted
	}

	if err = that.api.JoinGame(ctx, that.gameID, that.playerID); err != nil {
		return fmt.Errorf("failed to join game: %w", err)
	}

	that.logger.Info("joined game", "game_id", that.gameID, "player_id", that.playerID)

	return nil
}

func (that *Session) handleSnapshot(ctx context.Context, snapshot *entity.GameSnapshot) {
	that.advancePhase(snapshot)

	if err := that.roster.Refresh(ctx, snapshot); err != nil {
		that.logger.Error("could not refresh roster", "error", err)
	}

	that.refreshYou(ctx, snapshot)
	that.persist(ctx, snapshot)

	that.view.Render(snapshot, that.roster.Players(), that.you)
}

// advancePhase applies the authoritative status, clamped forward: receipt
// order can briefly regress the snapshot, but the lifecycle never reverses.
func (that *Session) advancePhase(snapshot *entity.GameSnapshot) {
	next, ok := phaseForStatus(snapshot.Status)
	if !ok {
		that.logger.Error("unknown game status", "status", snapshot.Status)
		return
	}

	if next > that.phase {
		that.logger.Info("session phase changed", "from", that.phase.String(), "to", next.String())
		that.phase = next
	}
}

// refreshYou re-fetches the local player's summary when the turn advances,
// so the hand's playable flags always match the current turn.
func (that *Session) refreshYou(ctx context.Context, snapshot *entity.GameSnapshot) {
	if !snapshot.IsInProgress() {
		return
	}

	if that.you != nil && snapshot.TurnNumber == that.lastTurn {
		return
	}

	you, err := that.api.GetPlayer(ctx, that.gameID, that.playerID)
	if err != nil {
		that.logger.Error("could not refresh own hand", "error", err)
		return
	}

	that.you = you
	that.lastTurn = snapshot.TurnNumber
}

func (that *Session) persist(ctx context.Context, snapshot *entity.GameSnapshot) {
	if that.store == nil {
		return
	}

	if snapshot.IsFinished() {
		if err := that.store.DeleteByGameID(ctx, that.gameID); err != nil {
			that.logger.Error("could not delete saved session", "error", err)
		}
		return
	}

	record := &entity.SessionRecord{
		GameID:   that.gameID,
		PlayerID: that.playerID,
		Snapshot: snapshot,
	}

	if err := that.store.Save(ctx, record); err != nil {
		that.logger.Error("could not persist session", "error", err)
	}
}

// CanStartGame reports whether the start action is available: the game is
// still waiting, start was not already requested, and at least two players
// have joined.
func (that *Session) CanStartGame() bool {
	if that.phase != PhaseWaiting || that.started {
		return false
	}

	return len(that.sync.Current().WaitingPlayerIDs) >= minPlayersToStart
}

// StartGame issues a single start request. Its response is not applied; the
// next poll naturally reflects the new status.
func (that *Session) StartGame(ctx context.Context) error {
	if that.phase != PhaseWaiting || that.started {
		return apperror.ErrGameAlreadyStarted
	}

	if len(that.sync.Current().WaitingPlayerIDs) < minPlayersToStart {
		return apperror.ErrNotEnoughPlayers
	}

	if err := that.api.StartGame(ctx, that.gameID); err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	that.started = true

	return nil
}

func (that *Session) handleCommand(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	switch fields[0] {
	case "quit", "exit":
		return true
	case "start":
		if err := that.StartGame(ctx); err != nil {
			that.logger.Error("start rejected", "error", err)
		}
	case "pass":
		if err := that.mover.Pass(ctx); err != nil {
			that.reportMoveError(err)
		}
	case "play":
		that.handlePlay(ctx, fields)
	default:
		that.logger.Info("unknown command", "command", fields[0])
	}

	return false
}

func (that *Session) handlePlay(ctx context.Context, fields []string) {
	if len(fields) < 2 {
		that.logger.Info("usage: play <card value>")
		return
	}

	value, err := strconv.Atoi(fields[1])
	if err != nil {
		that.logger.Info("card value must be a number", "input", fields[1])
		return
	}

	card, ok := that.cardInHand(value)
	if !ok {
		that.logger.Info("no such card in hand", "value", value)
		return
	}

	if err = that.mover.PlayCard(ctx, card); err != nil {
		that.reportMoveError(err)
	}
}

// reportMoveError surfaces the first server message of a rejection; the
// snapshot is untouched either way and the session stays interactive.
func (that *Session) reportMoveError(err error) {
	var rejected *apperror.RejectedError
	if errors.As(err, &rejected) && len(rejected.Messages) > 0 {
		that.logger.Error("move rejected by server", "reason", rejected.Messages[0])
		return
	}

	that.logger.Error("move failed", "error", err)
}

func (that *Session) cardInHand(value int) (entity.Card, bool) {
	if that.you == nil {
		return entity.Card{}, false
	}

	for _, card := range that.you.Hand {
		if card.Value == value {
			return card, true
		}
	}

	return entity.Card{}, false
}

func readCommands(ctx context.Context, r io.Reader, lines chan<- string) {
	defer close(lines)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-ctx.Done():
			return
		}
	}
}

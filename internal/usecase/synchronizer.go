package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cardstackgames/president-client/internal/entity"
)

type gameFetcher interface {
	GetGame(ctx context.Context, gameID string) (*entity.GameSnapshot, error)
}

// Synchronizer owns the local copy of the authoritative game snapshot. It is
// the single writer; consumers read whole-value replacements and may safely
// hold a stale snapshot until their next read.
type Synchronizer struct {
	logger   *slog.Logger
	api      gameFetcher
	gameID   string
	interval time.Duration

	mu       sync.RWMutex
	snapshot *entity.GameSnapshot

	updates chan *entity.GameSnapshot

	done      chan struct{}
	closeOnce sync.Once
}

func NewSynchronizer(logger *slog.Logger, api gameFetcher, gameID string, interval time.Duration) *Synchronizer {
	return &Synchronizer{
		logger:   logger.With("component", "synchronizer"),
		api:      api,
		gameID:   gameID,
		interval: interval,
		snapshot: entity.NewLoadingSnapshot(),
		updates:  make(chan *entity.GameSnapshot, 1),
		done:     make(chan struct{}),
	}
}

// Run fetches the snapshot immediately and then on a fixed cadence until the
// context is canceled or Cancel is called. Ticks are serialized: a fetch
// completes before the next tick is observed, so a hung request delays
// polling instead of piling up overlapping fetches.
func (that *Synchronizer) Run(ctx context.Context) {
	ticker := time.NewTicker(that.interval)
	defer ticker.Stop()

	that.refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-that.done:
			return
		case <-ticker.C:
			that.refresh(ctx)
		}
	}
}

// refresh keeps the last-known-good snapshot on failure; polling stays on
// cadence through transient errors.
func (that *Synchronizer) refresh(ctx context.Context) {
	snapshot, err := that.api.GetGame(ctx, that.gameID)
	if err != nil {
		that.logger.Error("could not refresh game snapshot", "error", err)
		return
	}

	that.Apply(snapshot)
}

// Apply replaces the current snapshot unconditionally. Responses land in
// receipt order: a slow poll result may briefly roll the snapshot back to an
// older turn, and re-applying an equivalent value is harmless.
func (that *Synchronizer) Apply(snapshot *entity.GameSnapshot) {
	that.mu.Lock()
	that.snapshot = snapshot
	that.mu.Unlock()

	that.notify(snapshot)
}

// Current returns the latest applied snapshot, or the loading sentinel before
// the first successful fetch.
func (that *Synchronizer) Current() *entity.GameSnapshot {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.snapshot
}

// Updates delivers the latest applied snapshot. A pending value is dropped
// when a newer one arrives before the consumer reads it.
func (that *Synchronizer) Updates() <-chan *entity.GameSnapshot {
	return that.updates
}

func (that *Synchronizer) notify(snapshot *entity.GameSnapshot) {
	for {
		select {
		case that.updates <- snapshot:
			return
		default:
			select {
			case <-that.updates:
			default:
			}
		}
	}
}

// Cancel stops future polling. Safe to call repeatedly and after Run has
// already returned.
func (that *Synchronizer) Cancel() {
	that.closeOnce.Do(func() {
		close(that.done)
	})
}

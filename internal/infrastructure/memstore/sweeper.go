package memstore

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper periodically evicts expired records from a VerificationStore.
// It is owned by the caller: construct it once at startup and run it in a
// goroutine under a context cancelled on shutdown.
type Sweeper struct {
	store    *VerificationStore
	interval time.Duration
}

func NewSweeper(store *VerificationStore, interval time.Duration) *Sweeper {
	return &Sweeper{store: store, interval: interval}
}

// Run sweeps on every tick until ctx is cancelled.
func (sw *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(sw.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			slog.Info("verification sweeper stopped")
			return
		case now := <-ticker.C:
			sw.store.Sweep(now)
		}
	}
}

package main

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/erazemk/fundbuero/internal/store"
)

const revocationPurgeInterval = time.Hour

// purgeRevocations removes revocation records of expired sessions every
// interval until ctx is done.
func purgeRevocations(ctx context.Context, db *sql.DB, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := store.PurgeRevocations(ctx, db, now)
			if err != nil {
				slog.Error("failed to purge session revocations", "error", err)
				continue
			}
			if n > 0 {
				slog.Info("purged session revocations", "count", n)
			}
		}
	}
}

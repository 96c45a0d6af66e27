// Package jobs holds the background maintenance loops that run alongside
// the HTTP server.
package jobs

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"commerce-core/internal/interfaces"
)

// SweepInterval is how often the notification sweeper wakes up.
const SweepInterval = time.Hour

// RetentionAge is how long a read notification is kept before the sweeper
// removes it. Unread notifications are never swept.
const RetentionAge = 30 * 24 * time.Hour

// NotificationSweeper periodically deletes read notifications that passed
// their retention age.
type NotificationSweeper struct {
	pool     interfaces.PgxPoolIface
	interval time.Duration
}

func NewNotificationSweeper(pool interfaces.PgxPoolIface) *NotificationSweeper {
	return &NotificationSweeper{
		pool:     pool,
		interval: SweepInterval,
	}
}

// Run blocks until the context is cancelled, sweeping once per interval.
// Callers start it in its own goroutine.
func (sweeper *NotificationSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(sweeper.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("Notification sweeper stopped")
			return
		case <-ticker.C:
			sweeper.sweep(ctx)
		}
	}
}

func (sweeper *NotificationSweeper) sweep(ctx context.Context) {
	sweepCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	cutoff := time.Now().Add(-RetentionAge)
	queryString := "DELETE FROM notifications WHERE not_status = 'read' AND created_at < $1"
	tag, err := sweeper.pool.Exec(sweepCtx, queryString, cutoff)
	if err != nil {
		log.Error("Notification sweep failed: ", err)
		return
	}

	if tag.RowsAffected() > 0 {
		log.Info("Notification sweep removed ", tag.RowsAffected(), " rows")
	}
}

package service

import (
	"context"
	"time"

	"securebank/internal/common/constants"
	"securebank/internal/common/logger"
)

// StartSessionCleanup purges expired sessions on an interval until ctx is
// cancelled. Run it as a goroutine next to the server.
func StartSessionCleanup(ctx context.Context, sessions *SessionManager, log *logger.Logger) {
	ticker := time.NewTicker(constants.SessionCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Infof("session cleanup stopped")
			return
		case <-ticker.C:
			if purged := sessions.PurgeExpired(); purged > 0 {
				log.Infof("purged %d expired sessions", purged)
			}
		}
	}
}

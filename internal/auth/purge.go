package auth

import (
	"context"
	"time"

	"github.com/EmpoweredVote/roster-backend/internal/logutil"
)

// PurgeLoop deletes expired database sessions every interval until ctx is
// done.
func (s *DBSessionStore) PurgeLoop(ctx context.Context, interval time.Duration) {
	log := logutil.GetOrDefault(ctx)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := s.PurgeExpired(ctx, now)
			if err != nil {
				log.Error().Err(err).Msg("purge expired sessions")
				continue
			}
			if n > 0 {
				log.Debug().Int64("sessions.purged", n).Msg("expired sessions purged")
			}
		}
	}
}

package auth

import (
	"context"

	"github.com/EmpoweredVote/roster-backend/internal/utils"
)

// SessionInfo lets the session middleware resolve cookies through the same
// lookup as Service.CurrentIdentity.
type SessionInfo struct {
	Service *Service
}

func (si SessionInfo) FindSessionByID(ctx context.Context, id string) (utils.SessionData, error) {
	session, err := si.Service.Identify(ctx, id)
	if err != nil {
		return utils.SessionData{}, err
	}

	return utils.SessionData{
		UserID:    session.UserID,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

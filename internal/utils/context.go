package utils

import (
	"context"
)

type contextKey string

const ContextUserIDKey contextKey = "userID"

func WithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, ContextUserIDKey, userID)
}

func GetUserIDFromContext(ctx context.Context) (uint, bool) {
	userID, ok := ctx.Value(ContextUserIDKey).(uint)
	return userID, ok && userID != 0
}

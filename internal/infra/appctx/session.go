package appctx

import (
	"context"

	"github.com/elliottsj/botbot-web/internal/domain/models"
	"github.com/elliottsj/botbot-web/internal/domain/runtime"
)

type ctxKey string

const (
	sessionKey ctxKey = "session"
	userKey    ctxKey = "user"
)

// WithSession stores the visitor's session in the context.
func WithSession(ctx context.Context, s *runtime.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// Session extracts the visitor's session from the context.
func Session(ctx context.Context) (*runtime.Session, bool) {
	s, ok := ctx.Value(sessionKey).(*runtime.Session)
	return s, ok
}

// WithUser stores the authenticated user in the context.
func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// User extracts the authenticated user from the context.
func User(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(userKey).(*models.User)
	return u, ok
}

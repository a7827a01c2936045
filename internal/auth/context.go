package auth

import (
	"context"
	"errors"
)

type ctxKey int

const (
	ctxUserID ctxKey = iota
	ctxRole
)

var ErrNoIdentity = errors.New("auth: no identity in context")

func WithIdentity(ctx context.Context, userID, role string) context.Context {
	ctx = context.WithValue(ctx, ctxUserID, userID)
	ctx = context.WithValue(ctx, ctxRole, role)
	return ctx
}

func UserID(ctx context.Context) (string, error) {
	if v, ok := ctx.Value(ctxUserID).(string); ok && v != "" {
		return v, nil
	}
	return "", ErrNoIdentity
}

func Role(ctx context.Context) (string, error) {
	if v, ok := ctx.Value(ctxRole).(string); ok && v != "" {
		return v, nil
	}
	return "", ErrNoIdentity
}

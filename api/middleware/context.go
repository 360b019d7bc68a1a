package middleware

import (
	"context"

	"github.com/google/uuid"
)

type ctxKeyType string

const (
	ctxAdminID    ctxKeyType = "admin_id"
	ctxAdminEmail ctxKeyType = "admin_email"
)

// AdminIDFrom returns the authenticated admin's id, if any.
func AdminIDFrom(ctx context.Context) (uuid.UUID, bool) {
	raw, ok := ctx.Value(ctxAdminID).(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// AdminEmailFrom returns the authenticated admin's email, if any.
func AdminEmailFrom(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(ctxAdminEmail).(string)
	return email, ok
}

package session

import (
	"context"
	"strings"
)

type ctxKey string

const (
	userIDKey ctxKey = "session_user_id"
	roleKey   ctxKey = "session_role"
)

// ContextWithUser stores the authenticated subject in the context.
func ContextWithUser(ctx context.Context, userID, role string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, strings.TrimSpace(userID))
	return context.WithValue(ctx, roleKey, normalizeRole(role))
}

// UserIDFromContext extracts the authenticated subject from context.
func UserIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(userIDKey).(string)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

// RoleFromContext returns the normalized role stored in context.
func RoleFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(roleKey).(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// HasRole checks whether the context carries the specified role.
func HasRole(ctx context.Context, role string) bool {
	got, ok := RoleFromContext(ctx)
	if !ok {
		return false
	}
	return got == strings.TrimSpace(strings.ToLower(role))
}

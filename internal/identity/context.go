package identity

import "context"

type contextKey int

const (
	tokenKey contextKey = iota
	tabKey
)

// WithToken attaches a raw bearer token to ctx.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// TokenFromContext returns the bearer token, or "" when none was attached.
func TokenFromContext(ctx context.Context) string {
	v, _ := ctx.Value(tokenKey).(string)
	return v
}

// WithTab attaches the caller's tab id to ctx.
func WithTab(ctx context.Context, tabID string) context.Context {
	return context.WithValue(ctx, tabKey, tabID)
}

// TabFromContext returns the tab id, or "" when none was attached.
func TabFromContext(ctx context.Context) string {
	v, _ := ctx.Value(tabKey).(string)
	return v
}

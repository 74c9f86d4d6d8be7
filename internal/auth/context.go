package auth

import "context"

type contextKey struct{}

// Principal identifies the authenticated owner a request acts as.
// Every resource operation is scoped to this identity.
type Principal struct {
	UserID int64
	Email  string
}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(contextKey{}).(Principal)
	return p, ok
}

func UserID(ctx context.Context) int64 {
	p, ok := FromContext(ctx)
	if !ok {
		return 0
	}
	return p.UserID
}

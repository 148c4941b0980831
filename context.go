package prayerkit

import "context"

type skipAuthContextKey struct{}
type requestIDContextKey struct{}

// WithoutAuthorization marks a request context as deliberately anonymous.
// The transport skips the bearer stamp for it instead of failing fast with
// [ErrUnauthorized]; the login exchange itself is the canonical user.
func WithoutAuthorization(ctx context.Context) context.Context {
	return context.WithValue(ctx, skipAuthContextKey{}, true)
}

// WithRequestID attaches a correlation id to ctx. The transport forwards it
// as the X-Request-ID header.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDContextKey{}, id)
}

func skipAuthFromContext(ctx context.Context) bool {
	if ctx == nil {
		return false
	}

	skip, _ := ctx.Value(skipAuthContextKey{}).(bool)
	return skip
}

func requestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	id, _ := ctx.Value(requestIDContextKey{}).(string)
	return id
}

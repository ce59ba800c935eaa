package agent

import "context"

type ctxKey int

const (
	sessionKey ctxKey = iota
	requestKey
)

// WithSession tags ctx with the id of the conversation a request belongs to,
// e.g. a Telegram chat id.
func WithSession(ctx context.Context, session string) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// SessionFrom returns the session id stored in ctx, if any.
func SessionFrom(ctx context.Context) string {
	s, _ := ctx.Value(sessionKey).(string)
	return s
}

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestKey, id)
}

func requestIDFrom(ctx context.Context) string {
	s, _ := ctx.Value(requestKey).(string)
	return s
}

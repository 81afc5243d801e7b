package llm

import "context"

type contextKey string

const (
	purposeKey contextKey = "llm_purpose"
	userKey    contextKey = "llm_user"
)

// WithPurpose labels the request for the generation log.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok {
		return v
	}
	return "unknown"
}

// WithUser attributes the request to a user for the generation log.
func WithUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userKey, userID)
}

func UserFrom(ctx context.Context) string {
	v, _ := ctx.Value(userKey).(string)
	return v
}

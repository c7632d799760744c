package auth

import "context"

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// ownerKey is the context key for the authenticated owner's user ID.
const ownerKey contextKey = "owner_id"

// ContextWithOwner adds the authenticated owner's user ID to the context.
func ContextWithOwner(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ownerKey, userID)
}

// OwnerFromContext retrieves the authenticated owner's user ID.
// Returns empty string if the request is not authenticated.
func OwnerFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ownerKey).(string)
	return id
}

// Package identity holds the verified caller identity established by the
// authentication gate.
package identity

import "context"

// UserID is an opaque, verified reference to a user. Two identities are the
// same caller only when they are equal; nothing else about the value is
// interpreted.
type UserID string

// Anonymous is the zero identity carried by unauthenticated calls.
const Anonymous UserID = ""

// IsAnonymous reports whether no verified identity is present.
func (id UserID) IsAnonymous() bool {
	return id == Anonymous
}

func (id UserID) String() string {
	return string(id)
}

type contextKey struct{}

// WithUserID attaches a verified identity to ctx.
func WithUserID(ctx context.Context, id UserID) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the identity attached by WithUserID.
func FromContext(ctx context.Context) (UserID, bool) {
	id, ok := ctx.Value(contextKey{}).(UserID)
	if !ok || id.IsAnonymous() {
		return Anonymous, false
	}
	return id, true
}

// Package identity talks to the external OAuth-like session service that
// performs the actual user authentication. This API never sees credentials;
// it only exchanges an opaque session ID for the user's verified identity.
package identity

import (
	"context"
	"errors"
)

var (
	ErrInvalidSession = errors.New("identity provider rejected the session")
	ErrUnavailable    = errors.New("identity provider unavailable")
)

// SessionData is the verified identity returned by the provider.
type SessionData struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

type Client interface {
	// ResolveSession exchanges an external session ID for the identity it
	// belongs to. Returns ErrInvalidSession for unknown or expired sessions.
	ResolveSession(ctx context.Context, sessionID string) (*SessionData, error)
}

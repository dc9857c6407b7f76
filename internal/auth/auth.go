package auth

import (
	"context"

	"github.com/google/uuid"
)

// Identity is the auth-provider account a bearer token resolves to.
type Identity struct {
	ID    uuid.UUID
	Email string
}

// Tokens is the provider token pair handed back on a successful login.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// IdentityVerifier checks a bearer token against the auth provider.
// Verification happens on every request; no session state is kept here.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// AdminAuthorizer decides whether a verified identity carries the admin
// flag. A false result with a nil error means "known lookup, not admin".
type AdminAuthorizer interface {
	IsAdmin(ctx context.Context, id uuid.UUID) (bool, error)
}

// PasswordSignIn exchanges email/password credentials for provider tokens.
type PasswordSignIn interface {
	SignIn(ctx context.Context, email, password string) (*Identity, *Tokens, error)
}

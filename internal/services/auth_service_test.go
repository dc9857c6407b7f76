package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/AUXLE/clavedeoroBackend/internal/auth"
	"github.com/AUXLE/clavedeoroBackend/internal/utils"
)

type fakeSignIn struct {
	identity *auth.Identity
	tokens   *auth.Tokens
	err      error
}

func (f *fakeSignIn) SignIn(_ context.Context, _, _ string) (*auth.Identity, *auth.Tokens, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.identity, f.tokens, nil
}

type fakeAdminCheck struct {
	isAdmin bool
	err     error
}

func (f *fakeAdminCheck) IsAdmin(_ context.Context, _ uuid.UUID) (bool, error) {
	return f.isAdmin, f.err
}

func TestAuthServiceLogin(t *testing.T) {
	signIn := &fakeSignIn{
		identity: &auth.Identity{ID: uuid.New(), Email: "admin@example.com"},
		tokens:   &auth.Tokens{AccessToken: "access", RefreshToken: "refresh", ExpiresIn: 3600},
	}
	svc := NewAuthService(signIn, &fakeAdminCheck{isAdmin: true})

	resp, err := svc.Login(context.Background(), "admin@example.com", "secret")

	require.NoError(t, err)
	require.Equal(t, "access", resp.AccessToken)
	require.Equal(t, "refresh", resp.RefreshToken)
	require.Equal(t, 3600, resp.ExpiresIn)
}

func TestAuthServiceLoginBadCredentials(t *testing.T) {
	signIn := &fakeSignIn{err: errors.New("invalid grant")}
	svc := NewAuthService(signIn, &fakeAdminCheck{isAdmin: true})

	_, err := svc.Login(context.Background(), "admin@example.com", "wrong")
	require.ErrorIs(t, err, utils.ErrInvalidCredentials)
}

func TestAuthServiceLoginNonAdmin(t *testing.T) {
	signIn := &fakeSignIn{
		identity: &auth.Identity{ID: uuid.New(), Email: "user@example.com"},
		tokens:   &auth.Tokens{AccessToken: "access"},
	}
	svc := NewAuthService(signIn, &fakeAdminCheck{isAdmin: false})

	// valid credentials without the admin flag never leak tokens
	resp, err := svc.Login(context.Background(), "user@example.com", "secret")
	require.ErrorIs(t, err, utils.ErrForbidden)
	require.Nil(t, resp)
}

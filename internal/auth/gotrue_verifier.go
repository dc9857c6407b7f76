package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/supabase-community/gotrue-go"
)

// GoTrueVerifier delegates token verification and password sign-in to the
// Supabase GoTrue endpoint. The service key is only used as the API key
// header; user-facing calls always carry the caller's own token.
type GoTrueVerifier struct {
	client gotrue.Client
}

func NewGoTrueVerifier(supabaseURL, serviceKey string) *GoTrueVerifier {
	base := strings.TrimRight(supabaseURL, "/")
	client := gotrue.New("clavedeoro", serviceKey).
		WithCustomGoTrueURL(base + "/auth/v1")
	return &GoTrueVerifier{client: client}
}

func (v *GoTrueVerifier) Verify(_ context.Context, token string) (*Identity, error) {
	user, err := v.client.WithToken(token).GetUser()
	if err != nil {
		return nil, fmt.Errorf("gotrue rejected token: %w", err)
	}
	return &Identity{ID: user.ID, Email: user.Email}, nil
}

func (v *GoTrueVerifier) SignIn(_ context.Context, email, password string) (*Identity, *Tokens, error) {
	resp, err := v.client.SignInWithEmailPassword(email, password)
	if err != nil {
		return nil, nil, fmt.Errorf("gotrue sign-in failed: %w", err)
	}
	identity := &Identity{ID: resp.User.ID, Email: resp.User.Email}
	tokens := &Tokens{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
	}
	return identity, tokens, nil
}

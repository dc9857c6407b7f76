package services

import (
	"context"
	"fmt"

	"github.com/AUXLE/clavedeoroBackend/internal/auth"
	"github.com/AUXLE/clavedeoroBackend/internal/dtos"
	"github.com/AUXLE/clavedeoroBackend/internal/utils"
)

type AuthService interface {
	// Login exchanges credentials for provider tokens, but only hands them
	// out when the identity carries the admin flag.
	Login(ctx context.Context, email, password string) (*dtos.LoginResponse, error)
}

type authService struct {
	signIn     auth.PasswordSignIn
	authorizer auth.AdminAuthorizer
}

func NewAuthService(signIn auth.PasswordSignIn, authorizer auth.AdminAuthorizer) AuthService {
	return &authService{signIn: signIn, authorizer: authorizer}
}

func (s *authService) Login(ctx context.Context, email, password string) (*dtos.LoginResponse, error) {
	identity, tokens, err := s.signIn.SignIn(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrInvalidCredentials, err)
	}

	isAdmin, err := s.authorizer.IsAdmin(ctx, identity.ID)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		return nil, utils.ErrForbidden
	}

	return &dtos.LoginResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
	}, nil
}

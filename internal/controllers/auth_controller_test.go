package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AUXLE/clavedeoroBackend/internal/dtos"
	"github.com/AUXLE/clavedeoroBackend/internal/utils"
)

type fakeAuthService struct {
	resp *dtos.LoginResponse
	err  error
}

func (f *fakeAuthService) Login(context.Context, string, string) (*dtos.LoginResponse, error) {
	return f.resp, f.err
}

func TestLoginAdmin(t *testing.T) {
	svc := &fakeAuthService{resp: &dtos.LoginResponse{AccessToken: "access", RefreshToken: "refresh"}}
	ctl := NewAuthController(svc)

	rec := httptest.NewRecorder()
	ctl.LoginAdmin(rec, jsonRequest(http.MethodPost, "/admin/login", map[string]string{
		"email":    "admin@example.com",
		"password": "secret",
	}))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp dtos.LoginResponse
	require.NoError(t, jsonDecode(rec, &resp))
	require.Equal(t, "access", resp.AccessToken)
}

func TestLoginAdminMissingPassword(t *testing.T) {
	ctl := NewAuthController(&fakeAuthService{})

	rec := httptest.NewRecorder()
	ctl.LoginAdmin(rec, jsonRequest(http.MethodPost, "/admin/login", map[string]string{
		"email": "admin@example.com",
	}))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, utils.ErrCodeValidation, decodeError(t, rec).Code)
}

func TestLoginAdminBadCredentials(t *testing.T) {
	ctl := NewAuthController(&fakeAuthService{err: utils.ErrInvalidCredentials})

	rec := httptest.NewRecorder()
	ctl.LoginAdmin(rec, jsonRequest(http.MethodPost, "/admin/login", map[string]string{
		"email":    "admin@example.com",
		"password": "wrong",
	}))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, utils.ErrCodeInvalidToken, decodeError(t, rec).Code)
}

func TestLoginAdminNonAdmin(t *testing.T) {
	ctl := NewAuthController(&fakeAuthService{err: utils.ErrForbidden})

	rec := httptest.NewRecorder()
	ctl.LoginAdmin(rec, jsonRequest(http.MethodPost, "/admin/login", map[string]string{
		"email":    "user@example.com",
		"password": "secret",
	}))

	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, utils.ErrCodeForbidden, decodeError(t, rec).Code)
}

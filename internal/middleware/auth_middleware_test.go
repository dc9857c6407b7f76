package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/AUXLE/clavedeoroBackend/internal/auth"
)

// -----------------------------------------------------------------------------
// Fakes
// -----------------------------------------------------------------------------

type fakeVerifier struct {
	identity *auth.Identity
	err      error
	calls    int
}

func (f *fakeVerifier) Verify(_ context.Context, _ string) (*auth.Identity, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.identity, nil
}

type fakeAuthorizer struct {
	isAdmin bool
	err     error
	calls   int
}

func (f *fakeAuthorizer) IsAdmin(_ context.Context, _ uuid.UUID) (bool, error) {
	f.calls++
	return f.isAdmin, f.err
}

func gateRequest(t *testing.T, verifier auth.IdentityVerifier, authorizer auth.AdminAuthorizer, authHeader string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	reached := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		require.NotNil(t, IdentityFromContext(r.Context()))
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/admin/properties", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()

	RequireAdmin(verifier, authorizer)(next).ServeHTTP(rec, req)
	return rec, reached
}

// -----------------------------------------------------------------------------
// Tests
// -----------------------------------------------------------------------------

func TestRequireAdminMissingToken(t *testing.T) {
	verifier := &fakeVerifier{}
	authorizer := &fakeAuthorizer{}

	for name, header := range map[string]string{
		"no header":    "",
		"not bearer":   "Basic abc123",
		"empty bearer": "Bearer ",
	} {
		t.Run(name, func(t *testing.T) {
			rec, reached := gateRequest(t, verifier, authorizer, header)
			require.Equal(t, http.StatusForbidden, rec.Code)
			require.False(t, reached)
		})
	}

	// neither stage may run without a token
	require.Zero(t, verifier.calls)
	require.Zero(t, authorizer.calls)
}

func TestRequireAdminInvalidToken(t *testing.T) {
	verifier := &fakeVerifier{err: errors.New("token expired")}
	authorizer := &fakeAuthorizer{isAdmin: true}

	rec, reached := gateRequest(t, verifier, authorizer, "Bearer bad-token")

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, reached)
	// a rejected token never reaches the admin-flag lookup
	require.Zero(t, authorizer.calls)
}

func TestRequireAdminNonAdminIdentity(t *testing.T) {
	verifier := &fakeVerifier{identity: &auth.Identity{ID: uuid.New(), Email: "user@example.com"}}
	authorizer := &fakeAuthorizer{isAdmin: false}

	rec, reached := gateRequest(t, verifier, authorizer, "Bearer valid-token")

	// verified but unprivileged is 403, never 401
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.False(t, reached)
	require.Equal(t, 1, verifier.calls)
	require.Equal(t, 1, authorizer.calls)
}

func TestRequireAdminLookupFailure(t *testing.T) {
	verifier := &fakeVerifier{identity: &auth.Identity{ID: uuid.New()}}
	authorizer := &fakeAuthorizer{err: errors.New("connection refused")}

	rec, reached := gateRequest(t, verifier, authorizer, "Bearer valid-token")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.False(t, reached)
}

func TestRequireAdminHappyPath(t *testing.T) {
	id := uuid.New()
	verifier := &fakeVerifier{identity: &auth.Identity{ID: id, Email: "admin@example.com"}}
	authorizer := &fakeAuthorizer{isAdmin: true}

	rec, reached := gateRequest(t, verifier, authorizer, "Bearer valid-token")

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, reached)
}

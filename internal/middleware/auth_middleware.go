package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/AUXLE/clavedeoroBackend/internal/auth"
	"github.com/AUXLE/clavedeoroBackend/internal/utils"
)

type contextKey string

// ContextKeyIdentity holds the *auth.Identity attached after a successful
// pass through RequireAdmin.
const ContextKeyIdentity = contextKey("identity")

// IdentityFromContext returns the verified identity, or nil when the
// request never went through the admin gate.
func IdentityFromContext(ctx context.Context) *auth.Identity {
	id, _ := ctx.Value(ContextKeyIdentity).(*auth.Identity)
	return id
}

// RequireAdmin chains the two capability checks every admin route needs,
// in order: bearer-token verification against the auth provider, then the
// admin-flag lookup. A missing token is 403, a rejected token 401, a
// known-but-unprivileged identity 403. The checks are interfaces so each
// can be faked independently in tests.
func RequireAdmin(verifier auth.IdentityVerifier, authorizer auth.AdminAuthorizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := extractBearerToken(r)
			if err != nil {
				utils.RespondErrorWithCode(
					w, http.StatusForbidden, utils.ErrCodeUnauthenticated, "Missing bearer token", err,
				)
				return
			}

			identity, err := verifier.Verify(r.Context(), token)
			if err != nil {
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeInvalidToken, "Invalid or expired token", err,
				)
				return
			}

			isAdmin, err := authorizer.IsAdmin(r.Context(), identity.ID)
			if err != nil {
				utils.RespondErrorWithCode(
					w, http.StatusInternalServerError, utils.ErrCodeInternal, "Admin lookup failed", err,
				)
				return
			}
			if !isAdmin {
				utils.RespondErrorWithCode(
					w, http.StatusForbidden, utils.ErrCodeForbidden, "Admin privileges required",
				)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyIdentity, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) (string, error) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", errors.New("missing Authorization header")
	}
	if !strings.HasPrefix(h, "Bearer ") {
		return "", errors.New("Authorization header is not a bearer token")
	}
	token := strings.TrimPrefix(h, "Bearer ")
	if token == "" {
		return "", errors.New("empty bearer token")
	}
	return token, nil
}

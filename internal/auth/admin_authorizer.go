package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/AUXLE/clavedeoroBackend/internal/repositories"
)

// RepoAdminAuthorizer answers the admin-flag lookup from the admin_users
// table. The flag is re-read on every request.
type RepoAdminAuthorizer struct {
	repo repositories.AdminUserRepository
}

func NewRepoAdminAuthorizer(repo repositories.AdminUserRepository) *RepoAdminAuthorizer {
	return &RepoAdminAuthorizer{repo: repo}
}

func (a *RepoAdminAuthorizer) IsAdmin(ctx context.Context, id uuid.UUID) (bool, error) {
	row, err := a.repo.GetByAuthUserID(ctx, id)
	if err != nil {
		return false, err
	}
	if row == nil {
		return false, nil
	}
	return row.IsAdmin, nil
}

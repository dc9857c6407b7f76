package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/AUXLE/clavedeoroBackend/internal/models"
)

// AdminUserRepository reads and writes the admin-flag rows. GetByAuthUserID
// returns (nil, nil) when no row exists so callers can distinguish "not
// admin" from a lookup failure.
type AdminUserRepository interface {
	GetByAuthUserID(ctx context.Context, authUserID uuid.UUID) (*models.AdminUser, error)
	Upsert(ctx context.Context, authUserID uuid.UUID, isAdmin bool) error
}

type adminUserRepo struct {
	db DB
}

func NewAdminUserRepository(db DB) AdminUserRepository {
	return &adminUserRepo{db: db}
}

func (r *adminUserRepo) GetByAuthUserID(ctx context.Context, authUserID uuid.UUID) (*models.AdminUser, error) {
	row := r.db.QueryRow(ctx, `
        SELECT auth_user_id, is_admin, created_at
        FROM admin_users
        WHERE auth_user_id=$1
    `, authUserID)

	var au models.AdminUser
	err := row.Scan(&au.AuthUserID, &au.IsAdmin, &au.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &au, nil
}

func (r *adminUserRepo) Upsert(ctx context.Context, authUserID uuid.UUID, isAdmin bool) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO admin_users (auth_user_id, is_admin, created_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (auth_user_id) DO UPDATE SET is_admin=EXCLUDED.is_admin
    `, authUserID, isAdmin)
	return err
}

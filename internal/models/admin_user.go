package models

import (
	"time"

	"github.com/google/uuid"
)

// AdminUser associates an auth-provider identity with the admin flag.
// At most one row exists per identity; no row means "not admin".
type AdminUser struct {
	AuthUserID uuid.UUID `json:"auth_user_id"`
	IsAdmin    bool      `json:"is_admin"`
	CreatedAt  time.Time `json:"created_at"`
}

package dtos

// LoginRequest is the admin login payload; credentials are checked against
// the auth provider, never locally.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the provider token pair for a privileged identity.
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

type HealthCheckResponse struct {
	Status string `json:"status"`
}

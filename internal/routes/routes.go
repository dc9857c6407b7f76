package routes

const (
	// Health
	Root   = "/"
	Health = "/health"

	// Public reads
	Properties   = "/properties"
	PropertyByID = "/properties/{id}"
	Reviews      = "/reviews"
	ReviewByID   = "/reviews/{id}"

	// Public writes
	ContactForm = "/contactform"
	AdminLogin  = "/admin/login"

	// Admin (behind the auth gate)
	AdminProperties          = "/properties"
	AdminPropertyByID        = "/properties/{id}"
	AdminPropertyImages      = "/properties/{id}/upload-images"
	AdminPropertyImageDetach = "/properties/{id}/images"
	AdminReviews             = "/reviews"
	AdminReviewByID          = "/reviews/{id}"
	AdminReviewImageUpload   = "/reviews/upload-image"
)

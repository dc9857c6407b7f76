package utils

import "errors"

// Domain-level errors used by the service layer to provide
// fine-grained failure reasons.
var (
	ErrNotFound              = errors.New("not_found")
	ErrForbidden             = errors.New("forbidden")
	ErrInvalidCredentials    = errors.New("invalid_credentials")
	ErrImageNotAttached      = errors.New("image_not_attached")
	ErrUnrecognizedReference = errors.New("unrecognized_object_reference")
	ErrUpload                = errors.New("upload_failed")
	ErrRemoval               = errors.New("removal_failed")
	ErrDelivery              = errors.New("delivery_failed")

	// For concurrency conflicts
	ErrRowVersionConflict = errors.New("row_version_conflict")
)

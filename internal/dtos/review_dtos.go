package dtos

type CreateReviewRequest struct {
	CustomerName string `json:"customerName" validate:"required"`
	Ratings      *int   `json:"ratings" validate:"required,min=1,max=5"`
	Review       string `json:"review"`
	Image        string `json:"image"`
}

// UpdateReviewRequest is a partial update: nil fields are left unchanged.
type UpdateReviewRequest struct {
	CustomerName *string `json:"customerName"`
	Ratings      *int    `json:"ratings" validate:"omitempty,min=1,max=5"`
	Review       *string `json:"review"`
	Image        *string `json:"image"`
}

// UploadImageResponse returns only the public URL; callers reference it in
// a subsequent create/update call.
type UploadImageResponse struct {
	URL string `json:"url"`
}

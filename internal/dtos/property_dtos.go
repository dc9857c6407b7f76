package dtos

// CreatePropertyRequest carries every field a new listing needs. Price and
// Area are pointers so "missing" and "zero" stay distinguishable for the
// required check.
type CreatePropertyRequest struct {
	Name         string   `json:"name" validate:"required"`
	Owner        string   `json:"owner" validate:"required"`
	Price        *float64 `json:"price" validate:"required"`
	Area         *float64 `json:"area" validate:"required"`
	Description  string   `json:"description"`
	ExactAddress string   `json:"exactAddress" validate:"required"`
	BHKType      string   `json:"bhkType" validate:"required"`
	Amenities    string   `json:"amenities"`
	Ratings      float64  `json:"ratings"`
	Reviews      string   `json:"reviews"`
	Location     string   `json:"location" validate:"required"`
}

// UpdatePropertyRequest is a partial update: nil fields are left unchanged.
type UpdatePropertyRequest struct {
	Name         *string  `json:"name"`
	Owner        *string  `json:"owner"`
	Price        *float64 `json:"price"`
	Area         *float64 `json:"area"`
	Description  *string  `json:"description"`
	ExactAddress *string  `json:"exactAddress"`
	BHKType      *string  `json:"bhkType"`
	Amenities    *string  `json:"amenities"`
	Ratings      *float64 `json:"ratings"`
	Reviews      *string  `json:"reviews"`
	Location     *string  `json:"location"`
}

// DetachImageRequest names the stored public URL to remove from a listing.
type DetachImageRequest struct {
	URL string `json:"url" validate:"required"`
}

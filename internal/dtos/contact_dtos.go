package dtos

type ContactFormRequest struct {
	Name        string `json:"name" validate:"required"`
	Phone       string `json:"phone" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Subject     string `json:"subject"`
	CountryCode string `json:"countryCode"`
	Message     string `json:"message"`
}

type ContactFormResponse struct {
	Message string `json:"message"`
}

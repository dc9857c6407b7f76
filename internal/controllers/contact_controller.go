package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/AUXLE/clavedeoroBackend/internal/dtos"
	"github.com/AUXLE/clavedeoroBackend/internal/services"
	"github.com/AUXLE/clavedeoroBackend/internal/utils"
)

type ContactController struct {
	svc services.ContactService
}

func NewContactController(svc services.ContactService) *ContactController {
	return &ContactController{svc: svc}
}

var contactValidate = validator.New()

// POST /contactform
func (c *ContactController) SubmitContactForm(w http.ResponseWriter, r *http.Request) {
	var req dtos.ContactFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", err)
		return
	}
	if err := contactValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Name, phone and email are required", err)
		return
	}

	if err := c.svc.Submit(r.Context(), req); err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.ContactFormResponse{
		Message: "Thanks for reaching out – we will get back to you shortly!",
	})
}

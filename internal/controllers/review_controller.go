package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/AUXLE/clavedeoroBackend/internal/dtos"
	"github.com/AUXLE/clavedeoroBackend/internal/middleware"
	"github.com/AUXLE/clavedeoroBackend/internal/services"
	"github.com/AUXLE/clavedeoroBackend/internal/utils"
)

type ReviewController struct {
	svc services.ReviewService
}

func NewReviewController(svc services.ReviewService) *ReviewController {
	return &ReviewController{svc: svc}
}

var reviewValidate = validator.New()

// GET /reviews
func (c *ReviewController) ListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := c.svc.List(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, reviews)
}

// GET /reviews/{id}
func (c *ReviewController) GetReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	rev, err := c.svc.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, rev)
}

// POST /admin/reviews
func (c *ReviewController) CreateReview(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		utils.RespondErrorWithCode(w, http.StatusForbidden, utils.ErrCodeForbidden, "No identity in context")
		return
	}

	var req dtos.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", err)
		return
	}
	if err := reviewValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", err)
		return
	}

	rev, err := c.svc.Create(r.Context(), req, identity.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, rev)
}

// PUT /admin/reviews/{id}
func (c *ReviewController) UpdateReview(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		utils.RespondErrorWithCode(w, http.StatusForbidden, utils.ErrCodeForbidden, "No identity in context")
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req dtos.UpdateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", err)
		return
	}
	if err := reviewValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", err)
		return
	}

	rev, err := c.svc.Update(r.Context(), id, req, identity.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, rev)
}

// DELETE /admin/reviews/{id}
func (c *ReviewController) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := c.svc.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Review deleted"})
}

// POST /admin/reviews/upload-image  (multipart field "file", single)
func (c *ReviewController) UploadImage(w http.ResponseWriter, r *http.Request) {
	files, err := readMultipartFiles(r, "file", 1)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid upload request", err)
		return
	}

	url, err := c.svc.UploadImage(r.Context(), files[0])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.UploadImageResponse{URL: url})
}

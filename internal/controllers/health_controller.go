package controllers

import (
	"net/http"

	"github.com/AUXLE/clavedeoroBackend/internal/dtos"
	"github.com/AUXLE/clavedeoroBackend/internal/utils"
)

type HealthController struct{}

func NewHealthController() *HealthController {
	return &HealthController{}
}

// GET / and GET /health
func (c *HealthController) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, dtos.HealthCheckResponse{Status: "OK"})
}

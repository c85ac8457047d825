package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recharge-service/internal/usecase/catalog"
)

// PlanHandler handles the public storefront plan listing.
type PlanHandler struct {
	uc  catalog.Usecase
	log *zap.Logger
}

// NewPlanHandler creates a new PlanHandler instance.
func NewPlanHandler(uc catalog.Usecase, log *zap.Logger) *PlanHandler {
	return &PlanHandler{
		uc:  uc,
		log: log,
	}
}

// ListPlans handles GET /api/plans. Only active plans are returned here.
func (h *PlanHandler) ListPlans(c *gin.Context) {
	plans, err := h.uc.ListPlans(c.Request.Context(), true)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toPlanResponses(plans))
}

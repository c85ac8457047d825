package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recharge-service/internal/usecase/catalog"
)

// AdminHandler handles the admin surface: full plan CRUD and user moderation.
// All routes behind it require an admin token.
type AdminHandler struct {
	uc  catalog.Usecase
	log *zap.Logger
}

// NewAdminHandler creates a new AdminHandler instance.
func NewAdminHandler(uc catalog.Usecase, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		uc:  uc,
		log: log,
	}
}

// CreatePlanRequest represents the HTTP request body for creating a plan.
type CreatePlanRequest struct {
	Operator    string `json:"operator"`
	Amount      int64  `json:"amount" binding:"required,gt=0"`
	Validity    string `json:"validity" binding:"required"`
	Data        string `json:"data" binding:"required"`
	Description string `json:"description" binding:"required"`
	IsActive    *bool  `json:"isActive"`
}

// UpdatePlanRequest represents a partial plan update. Absent fields are left
// unchanged.
type UpdatePlanRequest struct {
	Operator    *string `json:"operator"`
	Amount      *int64  `json:"amount" binding:"omitempty,gt=0"`
	Validity    *string `json:"validity"`
	Data        *string `json:"data"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

// OKResponse acknowledges an idempotent delete.
type OKResponse struct {
	OK bool `json:"ok"`
}

// ListPlans handles GET /api/admin/plans. Inactive plans are included.
func (h *AdminHandler) ListPlans(c *gin.Context) {
	plans, err := h.uc.ListPlans(c.Request.Context(), false)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toPlanResponses(plans))
}

// CreatePlan handles POST /api/admin/plans
func (h *AdminHandler) CreatePlan(c *gin.Context) {
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid create plan request", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	plan, err := h.uc.CreatePlan(c.Request.Context(), catalog.CreatePlanRequest{
		Operator:    req.Operator,
		Amount:      req.Amount,
		Validity:    req.Validity,
		Data:        req.Data,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, toPlanResponse(*plan))
}

// UpdatePlan handles PUT /api/admin/plans/:id
func (h *AdminHandler) UpdatePlan(c *gin.Context) {
	id := c.Param("id")

	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid update plan request", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	plan, err := h.uc.UpdatePlan(c.Request.Context(), id, catalog.UpdatePlanRequest{
		Operator:    req.Operator,
		Amount:      req.Amount,
		Validity:    req.Validity,
		Data:        req.Data,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toPlanResponse(*plan))
}

// DeletePlan handles DELETE /api/admin/plans/:id
func (h *AdminHandler) DeletePlan(c *gin.Context) {
	if err := h.uc.DeletePlan(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, OKResponse{OK: true})
}

// ListUsers handles GET /api/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.uc.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	out := make([]UserResponse, len(users))
	for i, u := range users {
		out[i] = UserResponse{
			ID:          u.ID,
			Name:        u.Name,
			Email:       u.Email,
			PhoneNumber: u.PhoneNumber,
			Role:        u.Role,
			CreatedAt:   u.CreatedAt,
		}
	}

	c.JSON(http.StatusOK, out)
}

// DeleteUser handles DELETE /api/admin/users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.uc.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, OKResponse{OK: true})
}

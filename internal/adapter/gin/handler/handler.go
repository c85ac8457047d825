package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recharge-service/internal/usecase/catalog"
	errs "recharge-service/pkg/errors"
)

// ErrorResponse is the single error envelope used by every route.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// PlanResponse is the JSON shape of a catalog plan.
type PlanResponse struct {
	ID          string    `json:"id"`
	Operator    string    `json:"operator"`
	Amount      int64     `json:"amount"`
	Validity    string    `json:"validity"`
	Data        string    `json:"data"`
	Description string    `json:"description"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UserResponse is the JSON shape of an account in admin listings.
// It never carries password material.
type UserResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toPlanResponse(p catalog.Plan) PlanResponse {
	return PlanResponse{
		ID:          p.ID,
		Operator:    p.Operator,
		Amount:      p.Amount,
		Validity:    p.Validity,
		Data:        p.Data,
		Description: p.Description,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
	}
}

func toPlanResponses(plans []catalog.Plan) []PlanResponse {
	out := make([]PlanResponse, len(plans))
	for i, p := range plans {
		out[i] = toPlanResponse(p)
	}
	return out
}

// respondError converts usecase errors to HTTP responses using the typed
// errors' status mapping; anything else is a 500 with no details leaked.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	var httpErr errs.HTTPStatuser
	if errors.As(err, &httpErr) {
		c.JSON(httpErr.HTTPStatus(), ErrorResponse{
			Error:   httpErr.Code(),
			Message: httpErr.Error(),
		})
		return
	}

	log.Error("unhandled error", zap.Error(err))
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}

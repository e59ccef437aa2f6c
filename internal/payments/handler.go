package payments

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"humanizer-backend/internal/profiles"
	"humanizer-backend/internal/shared/server/middleware"
	"humanizer-backend/internal/shared/server/respond"
)

// Handler exposes checkout and payment history.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments", h.checkout)
	rg.GET("/payments", h.history)
}

func (h *Handler) checkout(c *gin.Context) {
	var req Checkout
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid json body", nil)
		return
	}

	rec, profile, err := h.Svc.Checkout(c.Request.Context(), middleware.UserIDFromContext(c), req)
	if err != nil {
		var cardErr *CardError
		switch {
		case errors.As(err, &cardErr):
			respond.Error(c, http.StatusBadRequest, "validation_error", cardErr.Error(), cardErr.Fields)
		case errors.Is(err, profiles.ErrUnknownPlan):
			respond.Error(c, http.StatusBadRequest, "validation_error", "unknown plan", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "An error occurred during payment processing.", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, gin.H{
		"payment": rec,
		"usage":   profiles.UsageOf(profile),
	})
}

func (h *Handler) history(c *gin.Context) {
	recs, err := h.Svc.History(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch payments", nil)
		return
	}
	respond.OK(c, gin.H{"items": recs})
}

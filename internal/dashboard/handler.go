package dashboard

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"humanizer-backend/internal/shared/server/middleware"
	"humanizer-backend/internal/shared/server/respond"
	"humanizer-backend/internal/shared/telemetry"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.get)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	summary, err := h.Svc.Load(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "authentication required", nil)
			return
		}
		telemetry.Error("dashboard.load_failed", map[string]any{
			"request_id": middleware.RequestIDFromContext(c),
			"user_id":    userID,
			"error":      err,
		})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load dashboard", nil)
		return
	}
	c.JSON(http.StatusOK, summary)
}

package contact

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"humanizer-backend/internal/shared/server/middleware"
	"humanizer-backend/internal/shared/server/respond"
)

// Handler exposes the contact form.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterPublicRoutes attaches the submit route, which accepts anonymous senders.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/contact", h.submit)
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/contact", h.list)
}

type submitRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (h *Handler) submit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid json body", nil)
		return
	}
	msg, err := h.Svc.Submit(c.Request.Context(), middleware.UserIDFromContext(c), req.Name, req.Email, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields), errors.Is(err, ErrInvalidEmail):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to send message", nil)
		}
		return
	}
	respond.JSON(c, http.StatusCreated, gin.H{"message": msg})
}

func (h *Handler) list(c *gin.Context) {
	msgs, err := h.Svc.ListByUser(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch messages", nil)
		return
	}
	respond.OK(c, gin.H{"items": msgs})
}

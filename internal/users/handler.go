package users

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"humanizer-backend/internal/profiles"
	"humanizer-backend/internal/shared/server/middleware"
	"humanizer-backend/internal/shared/server/respond"
)

// ProfileReader loads the caller's credit profile for /me.
type ProfileReader interface {
	Get(ctx context.Context, userID string) (profiles.Profile, error)
}

type Handler struct {
	Svc      *Service
	Profiles ProfileReader
}

func NewHandler(svc *Service, profiles ProfileReader) *Handler {
	return &Handler{Svc: svc, Profiles: profiles}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", h.me)
}

func (h *Handler) me(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}
	userID := middleware.UserIDFromContext(c)
	user, err := h.Svc.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load user", nil)
		return
	}

	body := gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"fullName":   user.FullName,
		"pictureUrl": user.PictureURL,
	}
	if h.Profiles != nil {
		p, err := h.Profiles.Get(c.Request.Context(), userID)
		if err != nil {
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load profile", nil)
			return
		}
		body["username"] = p.Username
		body["usage"] = profiles.UsageOf(p)
	}
	respond.JSON(c, http.StatusOK, body)
}

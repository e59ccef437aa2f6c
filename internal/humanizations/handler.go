package humanizations

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"humanizer-backend/internal/humanize"
	"humanizer-backend/internal/profiles"
	"humanizer-backend/internal/shared/server/middleware"
	"humanizer-backend/internal/shared/server/respond"
)

// Handler exposes the orchestrator and history endpoints.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/humanizations", h.create)
	rg.GET("/humanizations", h.list)
}

type createRequest struct {
	Text        string          `json:"text"`
	Readability string          `json:"readability"`
	Purpose     string          `json:"purpose"`
	Strength    json.RawMessage `json:"strength"`
}

type createResponse struct {
	HumanizedText string         `json:"humanizedText"`
	Strategy      string         `json:"strategy"`
	Humanization  *Record        `json:"humanization,omitempty"`
	Usage         profiles.Usage `json:"usage"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid json body", nil)
		return
	}

	out, err := h.Svc.Humanize(c.Request.Context(), middleware.UserIDFromContext(c), humanize.Request{
		Text: req.Text,
		Options: humanize.Options{
			Readability: humanize.ParseReadability(req.Readability),
			Purpose:     humanize.ParsePurpose(req.Purpose),
			Strength:    humanize.ParseStrength(req.Strength),
		},
	})
	if err != nil {
		var rewriteErr *RewriteError
		switch {
		case humanize.IsValidation(err):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrUnauthenticated):
			respond.Error(c, http.StatusUnauthorized, "unauthorized", err.Error(), nil)
		case errors.Is(err, ErrNoCredits):
			respond.Error(c, http.StatusTooManyRequests, "limit_reached", err.Error(), nil)
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			respond.Error(c, http.StatusRequestTimeout, "timeout", "request canceled", nil)
		case errors.As(err, &rewriteErr):
			respond.Error(c, http.StatusBadGateway, "humanize_failed", rewriteErr.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to humanize text", nil)
		}
		return
	}

	if out.Record != nil {
		c.Set(middleware.HumanizationIDKey, out.Record.ID)
	}
	c.Set(middleware.StrategyKey, out.Strategy)
	respond.OK(c, createResponse{
		HumanizedText: out.HumanizedText,
		Strategy:      out.Strategy,
		Humanization:  out.Record,
		Usage:         out.Usage,
	})
}

func (h *Handler) list(c *gin.Context) {
	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			offset = parsed
		}
	}

	recs, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c), limit, offset)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnauthenticated):
			respond.Error(c, http.StatusUnauthorized, "unauthorized", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list humanizations", nil)
		}
		return
	}
	respond.OK(c, gin.H{"items": recs, "limit": limit, "offset": offset})
}

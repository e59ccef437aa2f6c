package humanize

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"humanizer-backend/internal/shared/server/middleware"
)

const (
	FunctionPath   = "/functions/v1/humanize-text"
	maxRequestBody = 1 << 20
)

// FunctionRequest is the public function payload. Strength may be a number or a
// numeric string.
type FunctionRequest struct {
	Text        json.RawMessage `json:"text"`
	Readability json.RawMessage `json:"readability,omitempty"`
	Purpose     json.RawMessage `json:"purpose,omitempty"`
	Strength    json.RawMessage `json:"strength,omitempty"`
}

// FunctionResponse is returned for both success and failure.
type FunctionResponse struct {
	HumanizedText string `json:"humanizedText,omitempty"`
	Success       bool   `json:"success"`
	Error         string `json:"error,omitempty"`
}

// FunctionHandler exposes a Humanizer as the browser-callable rewrite function.
type FunctionHandler struct {
	humanizer Humanizer
}

func NewFunctionHandler(h Humanizer) *FunctionHandler {
	return &FunctionHandler{humanizer: h}
}

// RegisterRoutes attaches the function endpoint and its preflight.
func (h *FunctionHandler) RegisterRoutes(r gin.IRoutes) {
	r.OPTIONS(FunctionPath, h.preflight)
	r.POST(FunctionPath, h.invoke)
}

func setFunctionCORS(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Headers", middleware.PublicAllowHeaders)
}

func (h *FunctionHandler) preflight(c *gin.Context) {
	setFunctionCORS(c)
	c.Status(http.StatusOK)
}

func (h *FunctionHandler) invoke(c *gin.Context) {
	setFunctionCORS(c)

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBody)
	var body FunctionRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&body); err != nil {
		fail(c, http.StatusBadRequest, "Request body must be valid JSON")
		return
	}

	req, err := body.ToRequest()
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	out, err := h.humanizer.Humanize(c.Request.Context(), req)
	if err != nil {
		if IsValidation(err) {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}
		msg := err.Error()
		if errors.Is(err, ErrAllStrategiesFailed) {
			msg = "Failed to humanize text"
		}
		fail(c, http.StatusInternalServerError, msg)
		return
	}

	c.Set(middleware.StrategyKey, out.Strategy)
	c.JSON(http.StatusOK, FunctionResponse{HumanizedText: out.HumanizedText, Success: true})
}

// ToRequest decodes the loosely typed payload. A missing or non-string text is a
// validation error; unknown options fall back to defaults.
func (b FunctionRequest) ToRequest() (Request, error) {
	var text string
	if len(b.Text) == 0 || json.Unmarshal(b.Text, &text) != nil || text == "" {
		return Request{}, &ValidationError{Message: MsgTextRequired}
	}
	return Request{
		Text: text,
		Options: Options{
			Readability: ParseReadability(rawString(b.Readability)),
			Purpose:     ParsePurpose(rawString(b.Purpose)),
			Strength:    ParseStrength(b.Strength),
		},
	}, nil
}

func rawString(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

func fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, FunctionResponse{Success: false, Error: msg})
}

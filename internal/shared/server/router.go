package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	googleauth "humanizer-backend/internal/auth"
	"humanizer-backend/internal/contact"
	"humanizer-backend/internal/dashboard"
	"humanizer-backend/internal/documents"
	"humanizer-backend/internal/humanizations"
	"humanizer-backend/internal/humanize"
	"humanizer-backend/internal/payments"
	"humanizer-backend/internal/profiles"
	"humanizer-backend/internal/services/health"
	"humanizer-backend/internal/shared/config"
	"humanizer-backend/internal/shared/metrics"
	"humanizer-backend/internal/shared/server/middleware"
	"humanizer-backend/internal/users"
)

const (
	functionsPrefix  = "/functions/"
	rateGroupRewrite = "REWRITE"
)

// RouterDeps carries the handlers mounted by NewRouter. Nil handlers are skipped.
type RouterDeps struct {
	Config               config.Config
	FunctionHandler      *humanize.FunctionHandler
	HumanizationsHandler *humanizations.Handler
	ProfilesHandler      *profiles.Handler
	PaymentsHandler      *payments.Handler
	ContactHandler       *contact.Handler
	DocumentHandler      *documents.Handler
	DashboardHandler     *dashboard.Handler
	UserHandler          *users.Handler
	GoogleAuth           *googleauth.GoogleService
	Health               *health.Service
	// FilesDir serves local uploads under /files when set.
	FilesDir string
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	cfg := deps.Config
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logging(),
		metrics.Middleware(),
		middleware.CORS(middleware.CORSConfig{
			AllowOrigins:   cfg.CORSAllowOrigin,
			PublicPrefixes: []string{functionsPrefix},
		}),
		middleware.Auth(functionsPrefix),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				rateGroupRewrite: {Rate: cfg.RateLimit.HumanizeRate, Burst: cfg.RateLimit.HumanizeBurst},
				"DEFAULT":        {Rate: cfg.RateLimit.DefaultRate, Burst: cfg.RateLimit.DefaultBurst},
			},
			GroupFor: rateGroup,
		}),
	)

	r.GET("/metrics", metrics.Handler())
	if deps.FilesDir != "" {
		r.Static("/files", deps.FilesDir)
	}
	if deps.FunctionHandler != nil {
		deps.FunctionHandler.RegisterRoutes(r)
	}

	api := r.Group("/api/v1")
	if deps.Health != nil {
		deps.Health.RegisterRoutes(api)
	}
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.ProfilesHandler != nil {
		deps.ProfilesHandler.RegisterPublicRoutes(api)
	}
	if deps.ContactHandler != nil {
		deps.ContactHandler.RegisterPublicRoutes(api)
	}
	// The orchestrator answers anonymous callers itself with a sign-in message.
	if deps.HumanizationsHandler != nil {
		deps.HumanizationsHandler.RegisterRoutes(api)
	}

	authed := api.Group("")
	authed.Use(middleware.RequireUser())
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(authed)
	}
	if deps.ProfilesHandler != nil {
		deps.ProfilesHandler.RegisterRoutes(authed)
	}
	if deps.PaymentsHandler != nil {
		deps.PaymentsHandler.RegisterRoutes(authed)
	}
	if deps.ContactHandler != nil {
		deps.ContactHandler.RegisterRoutes(authed)
	}
	if deps.DocumentHandler != nil {
		deps.DocumentHandler.RegisterRoutes(authed)
	}
	if deps.DashboardHandler != nil {
		deps.DashboardHandler.RegisterRoutes(authed)
	}

	if config.IsDevLike(cfg.Env) && deps.ProfilesHandler != nil {
		deps.ProfilesHandler.RegisterDevRoutes(authed.Group("/dev"))
	}

	return r
}

// rateGroup puts rewrite traffic in its own, tighter bucket.
func rateGroup(c *gin.Context) string {
	path := c.Request.URL.Path
	if strings.HasPrefix(path, functionsPrefix) {
		return rateGroupRewrite
	}
	if c.Request.Method == http.MethodPost && path == "/api/v1/humanizations" {
		return rateGroupRewrite
	}
	return "DEFAULT"
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}

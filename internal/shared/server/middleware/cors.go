package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// PublicAllowHeaders are the headers browsers may send to public function endpoints.
const PublicAllowHeaders = "authorization, x-client-info, apikey, content-type"

// CORSConfig configures cross-origin handling. Paths under PublicPrefixes are open to
// any origin; everything else is restricted to AllowOrigins.
type CORSConfig struct {
	AllowOrigins   []string
	PublicPrefixes []string
}

// CORS sets CORS headers and handles preflight requests.
func CORS(cfg CORSConfig) gin.HandlerFunc {
	origins := make(map[string]struct{})
	for _, o := range cfg.AllowOrigins {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			origins[trimmed] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		h := c.Writer.Header()
		if isPublicPath(c.Request.URL.Path, cfg.PublicPrefixes) {
			h.Set("Access-Control-Allow-Origin", "*")
			h.Set("Access-Control-Allow-Headers", PublicAllowHeaders)
			h.Set("Access-Control-Allow-Methods", "POST,OPTIONS")
			if c.Request.Method == http.MethodOptions {
				c.AbortWithStatus(http.StatusOK)
				return
			}
			c.Next()
			return
		}

		origin := c.GetHeader("Origin")
		if origin != "" {
			if _, ok := origins[origin]; ok {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Vary", "Origin")
				h.Set("Access-Control-Allow-Credentials", "true")
				h.Set("Access-Control-Allow-Methods", "GET,POST,PUT,PATCH,DELETE,OPTIONS")
				h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-Id")
				h.Set("Access-Control-Expose-Headers", "X-Request-Id")
				h.Set("Access-Control-Max-Age", "600")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}

		c.Next()
	}
}

func isPublicPath(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"humanizer-backend/internal/profiles"
	"humanizer-backend/internal/shared/config"
)

func newTestRouter(env string, rl config.RateLimitConfig) *gin.Engine {
	return NewRouter(RouterDeps{
		Config:          config.Config{Env: env, RateLimit: rl},
		ProfilesHandler: profiles.NewHandler(profiles.NewMemoryService()),
	})
}

func TestDevRoutesAreGatedByEnv(t *testing.T) {
	for _, tc := range []struct {
		env    string
		status int
	}{
		{env: "dev", status: http.StatusUnauthorized},
		{env: "local", status: http.StatusUnauthorized},
		{env: "staging", status: http.StatusNotFound},
		{env: "production", status: http.StatusNotFound},
	} {
		t.Run(tc.env, func(t *testing.T) {
			router := newTestRouter(tc.env, config.RateLimitConfig{})
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/dev/profile/reset", nil))
			if resp.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, resp.Code)
			}
		})
	}
}

func TestPlansArePublicAndRateLimited(t *testing.T) {
	router := newTestRouter("dev", config.RateLimitConfig{DefaultRate: 1, DefaultBurst: 2})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/plans", nil)
		req.RemoteAddr = "203.0.113.7:1234"
		router.ServeHTTP(resp, req)
		codes = append(codes, resp.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected status sequence %v", codes)
	}
}

func TestRateGroup(t *testing.T) {
	gin.SetMode(gin.TestMode)
	for _, tc := range []struct {
		method, path, want string
	}{
		{http.MethodPost, "/functions/v1/humanize-text", rateGroupRewrite},
		{http.MethodPost, "/api/v1/humanizations", rateGroupRewrite},
		{http.MethodGet, "/api/v1/humanizations", "DEFAULT"},
		{http.MethodGet, "/api/v1/plans", "DEFAULT"},
	} {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(tc.method, tc.path, nil)
		if got := rateGroup(c); got != tc.want {
			t.Fatalf("%s %s: expected %s, got %s", tc.method, tc.path, tc.want, got)
		}
	}
}

func TestAddr(t *testing.T) {
	for in, want := range map[string]string{"": ":8080", "9000": ":9000", ":7000": ":7000"} {
		if got := Addr(in); got != want {
			t.Fatalf("Addr(%q) = %q, want %q", in, got, want)
		}
	}
}

package contact

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestSubmitHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewHandler(NewService(NewMemoryRepo()))
	h.RegisterPublicRoutes(router.Group("/api/v1"))

	cases := []struct {
		body   string
		status int
	}{
		{`{"name":"Ada","email":"ada@example.com","message":"Hi there"}`, http.StatusCreated},
		{`{"name":"Ada","email":"ada@example.com"}`, http.StatusBadRequest},
		{`{"name":`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", strings.NewReader(tc.body))
		req.Header.Set("Content-Type", "application/json")
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != tc.status {
			t.Fatalf("body %s: expected %d, got %d", tc.body, tc.status, resp.Code)
		}
	}
}

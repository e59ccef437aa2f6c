package users

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"humanizer-backend/internal/profiles"
)

func TestUpsertFromAuthEnsuresProfile(t *testing.T) {
	profileSvc := profiles.NewMemoryService()
	svc := NewService(NewMemoryRepo(), profileSvc)
	ctx := context.Background()

	user := User{ID: "google:1", Email: "ada@example.com", FullName: "Ada Lovelace"}
	if err := svc.UpsertFromAuth(ctx, user); err != nil {
		t.Fatalf("UpsertFromAuth: %v", err)
	}
	p, err := profileSvc.Get(ctx, "google:1")
	if err != nil {
		t.Fatalf("Get profile: %v", err)
	}
	if p.Username != "ada" || p.CreditsTotal != 10 {
		t.Fatalf("unexpected profile %+v", p)
	}

	if err := svc.UpsertFromAuth(ctx, User{ID: "google:2"}); err == nil {
		t.Fatalf("expected missing email to be rejected")
	}
}

func TestMeIncludesUsage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	profileSvc := profiles.NewMemoryService()
	svc := NewService(NewMemoryRepo(), profileSvc)
	if err := svc.UpsertFromAuth(context.Background(), User{ID: "google:1", Email: "ada@example.com"}); err != nil {
		t.Fatalf("UpsertFromAuth: %v", err)
	}

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userId", "google:1")
		c.Next()
	})
	NewHandler(svc, profileSvc).RegisterRoutes(router.Group("/api/v1"))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/me", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body struct {
		Email string         `json:"email"`
		Usage profiles.Usage `json:"usage"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Email != "ada@example.com" || body.Usage.CreditsRemaining != 10 {
		t.Fatalf("unexpected body %+v", body)
	}
}

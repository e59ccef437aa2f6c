package humanizations

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"humanizer-backend/internal/humanize"
)

func newRouter(svc *Service, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set("userId", userID)
		}
		c.Next()
	})
	NewHandler(svc).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func post(router http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/humanizations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func errorCode(t *testing.T, resp *httptest.ResponseRecorder) (string, string) {
	t.Helper()
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return body.Error.Code, body.Error.Message
}

func TestCreateHumanizationStatuses(t *testing.T) {
	body := `{"text":"` + paragraph + `","strength":"0.4"}`
	cases := []struct {
		name     string
		userID   string
		used     int
		rw       *fakeRewriter
		body     string
		status   int
		wantCode string
		wantMsg  string
	}{
		{"short", "user-1", 0, &fakeRewriter{}, `{"text":"hi"}`, http.StatusBadRequest, "validation_error", humanize.MsgTextTooShort},
		{"anonymous", "", 0, &fakeRewriter{}, body, http.StatusUnauthorized, "unauthorized", ErrUnauthenticated.Error()},
		{"no credits", "user-1", 10, &fakeRewriter{}, body, http.StatusTooManyRequests, "limit_reached", ErrNoCredits.Error()},
		{"rewrite failed", "user-1", 0, &fakeRewriter{err: errors.New("Failed to humanize text")}, body, http.StatusBadGateway, "humanize_failed", "Failed to humanize text"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, credits := newFixture(t, tc.used, 10)
			router := newRouter(NewService(tc.rw, credits, NewMemoryRepo()), tc.userID)
			resp := post(router, tc.body)
			if resp.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, resp.Code, resp.Body.String())
			}
			code, msg := errorCode(t, resp)
			if code != tc.wantCode || msg != tc.wantMsg {
				t.Fatalf("expected %s/%q, got %s/%q", tc.wantCode, tc.wantMsg, code, msg)
			}
		})
	}
}

func TestCreateAndListHumanizations(t *testing.T) {
	_, credits := newFixture(t, 0, 10)
	rw := &fakeRewriter{out: humanize.Output{HumanizedText: "Rewritten paragraph.", Strategy: "fallback"}}
	router := newRouter(NewService(rw, credits, NewMemoryRepo()), "user-1")

	resp := post(router, `{"text":"`+paragraph+`","purpose":"Technical","strength":0.4}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var created createResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.HumanizedText != "Rewritten paragraph." || created.Usage.CreditsUsed != 1 || created.Humanization == nil {
		t.Fatalf("unexpected response %+v", created)
	}
	if rw.last.Options.Strength != 0.4 || rw.last.Options.Purpose != humanize.PurposeTechnical {
		t.Fatalf("unexpected options %+v", rw.last.Options)
	}

	listResp := httptest.NewRecorder()
	router.ServeHTTP(listResp, httptest.NewRequest(http.MethodGet, "/api/v1/humanizations?limit=5", nil))
	var list struct {
		Items []Record `json:"items"`
	}
	if err := json.Unmarshal(listResp.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list.Items) != 1 || list.Items[0].ID != created.Humanization.ID {
		t.Fatalf("unexpected list %+v", list.Items)
	}
}

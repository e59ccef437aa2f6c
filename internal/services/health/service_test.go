package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
)

func TestStatusWithoutDatabase(t *testing.T) {
	svc := NewService(nil, "local", []string{"fallback"})
	st := svc.Status(context.Background())
	if !st.OK || st.Database != "memory" || st.Storage != "local" {
		t.Fatalf("unexpected status %+v", st)
	}
}

func TestStatusPingsDatabase(t *testing.T) {
	for _, tc := range []struct {
		name    string
		pingErr error
		want    string
	}{
		{name: "up", want: "up"},
		{name: "down", pingErr: errors.New("connection refused"), want: "down"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
			if err != nil {
				t.Fatalf("sqlmock: %v", err)
			}
			defer db.Close()
			mock.ExpectPing().WillReturnError(tc.pingErr)

			st := NewService(db, "s3", nil).Status(context.Background())
			if st.Database != tc.want || !st.OK {
				t.Fatalf("expected database %q, got %+v", tc.want, st)
			}
		})
	}
}

func TestHealthRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewService(nil, "local", []string{"chat", "fallback"}).RegisterRoutes(router.Group("/api/v1"))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var st Status
	if err := json.Unmarshal(resp.Body.Bytes(), &st); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(st.Rewriter) != 2 || st.Rewriter[1] != "fallback" {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}
}

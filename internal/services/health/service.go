package health

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"humanizer-backend/internal/shared/server/respond"
)

const pingTimeout = 2 * time.Second

// Status is the liveness payload.
type Status struct {
	OK       bool     `json:"ok"`
	Database string   `json:"database"`
	Storage  string   `json:"storage"`
	Rewriter []string `json:"rewriter,omitempty"`
}

// Service encapsulates health-related checks.
type Service struct {
	DB       *sql.DB
	Storage  string
	Rewriter []string
}

// NewService constructs a new health service. db may be nil when running on
// in-memory repositories.
func NewService(db *sql.DB, storage string, rewriter []string) *Service {
	return &Service{DB: db, Storage: storage, Rewriter: rewriter}
}

// Status reports "memory" for the database when no pool is configured and "down"
// when the ping fails. A failed ping does not flip OK; the process is still live.
func (s *Service) Status(ctx context.Context) Status {
	st := Status{OK: true, Database: "memory", Storage: s.Storage, Rewriter: s.Rewriter}
	if s.DB == nil {
		return st
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := s.DB.PingContext(ctx); err != nil {
		st.Database = "down"
		return st
	}
	st.Database = "up"
	return st
}

func (s *Service) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, s.Status(c.Request.Context()))
	})
}

package dashboard

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/sync/errgroup"

	"humanizer-backend/internal/documents"
	"humanizer-backend/internal/humanizations"
	"humanizer-backend/internal/profiles"
)

// RecentLimit caps each recent-activity list.
const RecentLimit = 5

var ErrUnauthenticated = errors.New("authentication required")

type ProfileReader interface {
	Get(ctx context.Context, userID string) (profiles.Profile, error)
}

type HumanizationLister interface {
	List(ctx context.Context, userID string, limit, offset int) ([]humanizations.Record, error)
}

type DocumentLister interface {
	List(ctx context.Context, userId string, limit, offset int) ([]documents.Document, error)
}

// Summary is everything the dashboard page renders in one round trip.
type Summary struct {
	Usage         profiles.Usage               `json:"usage"`
	Humanizations []humanizations.Record       `json:"recentHumanizations"`
	Documents     []documents.DocumentResponse `json:"recentDocuments"`
}

type Service struct {
	Profiles      ProfileReader
	Humanizations HumanizationLister
	Documents     DocumentLister
}

func NewService(p ProfileReader, h HumanizationLister, d DocumentLister) *Service {
	return &Service{Profiles: p, Humanizations: h, Documents: d}
}

// Load fans out to the three sources. Any failure cancels the others.
func (s *Service) Load(ctx context.Context, userID string) (Summary, error) {
	if strings.TrimSpace(userID) == "" {
		return Summary{}, ErrUnauthenticated
	}

	var (
		profile profiles.Profile
		recs    []humanizations.Record
		docs    []documents.Document
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profile, err = s.Profiles.Get(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		recs, err = s.Humanizations.List(gctx, userID, RecentLimit, 0)
		return err
	})
	if s.Documents != nil {
		g.Go(func() error {
			var err error
			docs, err = s.Documents.List(gctx, userID, RecentLimit, 0)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	out := Summary{
		Usage:         profiles.UsageOf(profile),
		Humanizations: recs,
		Documents:     make([]documents.DocumentResponse, 0, len(docs)),
	}
	if out.Humanizations == nil {
		out.Humanizations = []humanizations.Record{}
	}
	for _, d := range docs {
		out.Documents = append(out.Documents, documents.ToResponse(d, false))
	}
	return out, nil
}

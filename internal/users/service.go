package users

import (
	"context"
	"errors"
	"strings"

	"humanizer-backend/internal/profiles"
)

// ProfileEnsurer creates the signup profile for a new user.
type ProfileEnsurer interface {
	Ensure(ctx context.Context, userID, username string) (profiles.Profile, error)
}

type Service struct {
	Repo     Repo
	Profiles ProfileEnsurer
}

func NewService(repo Repo, profiles ProfileEnsurer) *Service {
	return &Service{Repo: repo, Profiles: profiles}
}

// UpsertFromAuth persists the user identity from OAuth and makes sure the user has
// a credit profile.
func (s *Service) UpsertFromAuth(ctx context.Context, user User) error {
	if s == nil || s.Repo == nil {
		return errors.New("users service not configured")
	}
	if strings.TrimSpace(user.ID) == "" || strings.TrimSpace(user.Email) == "" {
		return errors.New("user id and email are required")
	}
	if err := s.Repo.Upsert(ctx, user); err != nil {
		return err
	}
	if s.Profiles == nil {
		return nil
	}
	_, err := s.Profiles.Ensure(ctx, user.ID, Username(user))
	return err
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return User{}, errors.New("user id is required")
	}
	return s.Repo.GetByID(ctx, userID)
}

// Username is the email local part, or the full name when the email is unusable.
func Username(u User) string {
	if at := strings.IndexByte(u.Email, '@'); at > 0 {
		return u.Email[:at]
	}
	return strings.TrimSpace(u.FullName)
}

package contact

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"humanizer-backend/internal/shared/telemetry"
)

// Service stores contact messages.
type Service struct {
	repo Repo
	now  func() time.Time
}

func NewService(repo Repo) *Service {
	return &Service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

// Submit validates and stores a message. userID may be empty.
func (s *Service) Submit(ctx context.Context, userID, name, email, message string) (Message, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	message = strings.TrimSpace(message)
	if name == "" || email == "" || message == "" {
		return Message{}, ErrMissingFields
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return Message{}, ErrInvalidEmail
	}

	msg := Message{
		ID:        uuid.NewString(),
		UserID:    strings.TrimSpace(userID),
		Name:      name,
		Email:     email,
		Message:   message,
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return Message{}, err
	}
	telemetry.Info("contact.received", map[string]any{
		"message_id": msg.ID,
		"user_id":    msg.UserID,
		"length":     len(msg.Message),
	})
	return msg, nil
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Message, error) {
	return s.repo.ListByUser(ctx, userID)
}

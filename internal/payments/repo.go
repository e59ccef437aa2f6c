package payments

import "context"

// Repo persists payment history.
type Repo interface {
	Create(ctx context.Context, rec Record) error
	ListByUser(ctx context.Context, userID string) ([]Record, error)
}

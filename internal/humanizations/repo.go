package humanizations

import "context"

// Repo persists humanization records.
type Repo interface {
	Create(ctx context.Context, rec Record) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Record, error)
}

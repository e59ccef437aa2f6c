package profiles

import "context"

// Store persists profiles. Consume must be atomic: two concurrent calls against
// one remaining credit may not both succeed.
type Store interface {
	Ensure(ctx context.Context, userID, username string) (Profile, error)
	Get(ctx context.Context, userID string) (Profile, error)
	Consume(ctx context.Context, userID string) (Profile, error)
	SetPlan(ctx context.Context, userID string, plan Plan) (Profile, error)
	ResetUsed(ctx context.Context, userID string) (Profile, error)
}

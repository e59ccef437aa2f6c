package profiles

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]Profile
	now  func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]Profile),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *MemoryStore) Ensure(ctx context.Context, userID, username string) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.data[userID]
	if !ok {
		p = newProfile(userID, username, s.now())
		s.data[userID] = p
	}
	return p, nil
}

func (s *MemoryStore) Get(ctx context.Context, userID string) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.data[userID]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return p, nil
}

func (s *MemoryStore) Consume(ctx context.Context, userID string) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.data[userID]
	if !ok {
		return Profile{}, ErrNotFound
	}
	if p.Exhausted() {
		return Profile{}, ErrLimitReached
	}
	p.CreditsUsed++
	p.UpdatedAt = s.now()
	s.data[userID] = p
	return p, nil
}

func (s *MemoryStore) SetPlan(ctx context.Context, userID string, plan Plan) (Profile, error) {
	return s.update(ctx, userID, func(p *Profile) {
		p.Plan = plan.ID
		p.CreditsTotal = plan.Credits
		p.CreditsUsed = 0
	})
}

func (s *MemoryStore) ResetUsed(ctx context.Context, userID string) (Profile, error) {
	return s.update(ctx, userID, func(p *Profile) { p.CreditsUsed = 0 })
}

// Put replaces a profile wholesale; used to seed fixtures.
func (s *MemoryStore) Put(p Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[p.ID] = p
}

func (s *MemoryStore) update(ctx context.Context, userID string, fn func(*Profile)) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.data[userID]
	if !ok {
		return Profile{}, ErrNotFound
	}
	fn(&p)
	p.UpdatedAt = s.now()
	s.data[userID] = p
	return p, nil
}

var _ Store = (*MemoryStore)(nil)

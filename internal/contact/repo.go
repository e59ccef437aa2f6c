package contact

import (
	"context"
	"database/sql"
	"sort"
	"sync"
)

// Repo persists contact messages.
type Repo interface {
	Create(ctx context.Context, msg Message) error
	ListByUser(ctx context.Context, userID string) ([]Message, error)
}

// MemoryRepo is an in-memory Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	msgs []Message
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (r *MemoryRepo) Create(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
	return nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Message{}
	for _, m := range r.msgs {
		if userID != "" && m.UserID == userID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// PGRepo implements Repo over contact_messages.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, msg Message) error {
	const query = `
INSERT INTO contact_messages (id, user_id, name, email, message, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	var userID sql.NullString
	if msg.UserID != "" {
		userID = sql.NullString{String: msg.UserID, Valid: true}
	}
	_, err := r.DB.ExecContext(ctx, query, msg.ID, userID, msg.Name, msg.Email, msg.Message, msg.CreatedAt)
	return err
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Message, error) {
	const query = `
SELECT id, user_id, name, email, message, created_at
FROM contact_messages
WHERE user_id = $1
ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Message{}
	for rows.Next() {
		var m Message
		var uid sql.NullString
		if err := rows.Scan(&m.ID, &uid, &m.Name, &m.Email, &m.Message, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.UserID = uid.String
		out = append(out, m)
	}
	return out, rows.Err()
}

var (
	_ Repo = (*MemoryRepo)(nil)
	_ Repo = (*PGRepo)(nil)
)

package documents

import (
	"context"
	"time"
)

// DocumentsRepo defines persistence operations for documents.
type DocumentsRepo interface {
	Create(ctx context.Context, doc Document) error
	GetByID(ctx context.Context, userId, documentID string) (Document, error)
	ListByUser(ctx context.Context, userId string, limit, offset int) ([]Document, error)
	// UpdateExtraction stores text only if none is stored yet.
	UpdateExtraction(ctx context.Context, userId, documentID, text string, extractedAt time.Time) error
}

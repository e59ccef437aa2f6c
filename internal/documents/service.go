package documents

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"humanizer-backend/internal/extract"
	"humanizer-backend/internal/queue"
	"humanizer-backend/internal/shared/metrics"
	"humanizer-backend/internal/shared/storage/object"
	"humanizer-backend/internal/shared/telemetry"
)

var allowedExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".docx": true,
	".pdf":  true,
}

type requestIDKey struct{}

// WithRequestID attaches a request ID that is forwarded on queued jobs.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func requestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Service contains business logic for documents.
type Service struct {
	Store object.ObjectStore
	Repo  DocumentsRepo
	// Queue receives an extraction job per upload when set.
	Queue queue.Client
}

// Upload saves the file to object storage and records the document.
func (s *Service) Upload(ctx context.Context, userId, fileName string, r io.Reader) (Document, error) {
	fileName = strings.TrimSpace(fileName)
	if fileName == "" || userId == "" {
		return Document{}, ErrInvalidInput
	}
	if !allowedExtensions[strings.ToLower(filepath.Ext(fileName))] {
		return Document{}, ErrUnsupportedType
	}

	storageKey, size, mimeType, err := s.Store.Save(ctx, userId, fileName, r)
	if err != nil {
		return Document{}, err
	}

	doc := Document{
		ID:              uuid.NewString(),
		UserID:          userId,
		FileName:        fileName,
		FileType:        extract.FileType(mimeType, fileName, nil),
		FileURL:         s.Store.PublicURL(storageKey),
		SizeBytes:       size,
		StorageProvider: s.Store.Provider(),
		StorageKey:      storageKey,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, doc); err != nil {
		return Document{}, err
	}

	if s.Queue != nil {
		msg := queue.Message{
			DocumentID: doc.ID,
			UserID:     userId,
			RequestID:  requestIDFromContext(ctx),
			EnqueuedAt: doc.CreatedAt.Format(time.RFC3339),
			Version:    queue.MessageVersion,
		}
		if err := s.Queue.Send(ctx, msg); err != nil {
			telemetry.Error("document.enqueue_failed", map[string]any{
				"document_id": doc.ID,
				"user_id":     userId,
				"error":       err,
			})
		}
	}
	return doc, nil
}

func (s *Service) Get(ctx context.Context, userId, documentID string) (Document, error) {
	if userId == "" || documentID == "" {
		return Document{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userId, documentID)
}

func (s *Service) List(ctx context.Context, userId string, limit, offset int) ([]Document, error) {
	if userId == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userId, limit, offset)
}

// Extract pulls text out of the stored file and caches it on the document.
// Already-extracted documents are returned as is.
func (s *Service) Extract(ctx context.Context, userId, documentID string) (Document, error) {
	doc, err := s.Get(ctx, userId, documentID)
	if err != nil {
		return Document{}, err
	}
	if doc.Extracted() {
		metrics.IncExtractionJob("cached")
		return doc, nil
	}

	start := time.Now()
	text, err := extract.ExtractText(ctx, s.Store, doc.StorageKey, doc.FileType, doc.FileName)
	if err != nil {
		result := "failed"
		if errors.Is(err, extract.ErrUnsupported) {
			result = "unsupported"
		}
		metrics.IncExtractionJob(result)
		return Document{}, fmt.Errorf("extract document %s: %w", doc.ID, err)
	}

	if err := s.Repo.UpdateExtraction(ctx, userId, doc.ID, text, time.Now().UTC()); err != nil {
		metrics.IncExtractionJob("failed")
		return Document{}, err
	}
	metrics.IncExtractionJob("success")
	telemetry.Info("document.extracted", map[string]any{
		"document_id": doc.ID,
		"user_id":     userId,
		"file_type":   doc.FileType,
		"chars":       len([]rune(text)),
		"duration_ms": float64(time.Since(start).Microseconds()) / 1000.0,
	})
	return s.Repo.GetByID(ctx, userId, doc.ID)
}

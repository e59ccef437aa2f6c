package object

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"humanizer-backend/internal/shared/util"
)

// ObjectStore defines the contract for saving and retrieving uploaded files.
type ObjectStore interface {
	Save(ctx context.Context, userId string, fileName string, r io.Reader) (storageKey string, sizeBytes int64, mimeType string, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
	// PublicURL returns the URL clients use to download storageKey.
	PublicURL(storageKey string) string
	// Provider names the backend ("local", "s3") for persistence.
	Provider() string
}

// NewKey builds the storage key for an upload: <hashed user>/<random>.<ext>.
func NewKey(userId, fileName string) (string, error) {
	sanitized, err := util.SanitizeFileName(fileName)
	if err != nil {
		return "", fmt.Errorf("sanitize file name: %w", err)
	}
	name := RandomID()
	if ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(sanitized), ".")); ext != "" {
		name += "." + ext
	}
	return path.Join(util.HashUserKey(userId), name), nil
}

// RandomID returns 32 hex characters, falling back to the clock if crypto/rand fails.
func RandomID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}

// JoinURL appends a slash-separated key to base.
func JoinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(filepath.ToSlash(key), "/")
}

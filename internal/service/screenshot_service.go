package service

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"time"

	"github.com/google/uuid"

	"gotrack/internal/errors"
	"gotrack/internal/model"
	"gotrack/internal/platform/supabase"
	"gotrack/internal/repository"
)

// ObjectStore is the storage surface the screenshot flow depends on.
// *supabase.Client satisfies it.
type ObjectStore interface {
	UploadObject(ctx context.Context, bucket, path string, data []byte, contentType string) error
	RemoveObject(ctx context.Context, bucket, path string) error
	PublicObjectURL(bucket, path string) string
	SignObjectURL(ctx context.Context, bucket, path string, expiresIn int) (string, error)
}

// ScreenshotService handles screenshot upload and metadata recording.
type ScreenshotService interface {
	UploadAndRecord(ctx context.Context, callerID string, raw []byte, contentTypeHint string, capturedAt *time.Time) (string, *model.Screenshot, error)
	RecordOnly(ctx context.Context, callerID, imageURL string, capturedAt *time.Time) (*model.Screenshot, error)
}

type screenshotService struct {
	shots        repository.ScreenshotRepository
	store        ObjectStore
	bucket       string
	bucketPublic bool
}

// NewScreenshotService creates a new screenshot service.
func NewScreenshotService(shots repository.ScreenshotRepository, store ObjectStore, bucket string, bucketPublic bool) ScreenshotService {
	return &screenshotService{
		shots:        shots,
		store:        store,
		bucket:       bucket,
		bucketPublic: bucketPublic,
	}
}

// UploadAndRecord validates the image bytes, writes them to object storage,
// and inserts the metadata row. The storage write always precedes the
// insert; when the insert fails the just-uploaded object is deleted
// best-effort so metadata never references a write that was rolled back.
func (s *screenshotService) UploadAndRecord(ctx context.Context, callerID string, raw []byte, contentTypeHint string, capturedAt *time.Time) (string, *model.Screenshot, error) {
	ext, err := sniffImage(raw)
	if err != nil {
		return "", nil, err
	}

	captured := time.Now().UTC()
	if capturedAt != nil {
		captured = capturedAt.UTC()
	}

	path := objectPath(callerID, captured, ext)

	contentType := contentTypeHint
	if contentType == "" {
		contentType = "image/" + ext
	}

	if err := s.store.UploadObject(ctx, s.bucket, path, raw, contentType); err != nil {
		return "", nil, fmt.Errorf("%w: upload: %v", errors.ErrStorage, err)
	}

	url := s.resolveURL(ctx, path)

	record, err := s.shots.Create(ctx, &model.Screenshot{
		UserID:     callerID,
		ImageURL:   url,
		CapturedAt: captured.Format(time.RFC3339),
	})
	if err != nil {
		// Compensating delete; its own failure is logged, never escalated.
		if rmErr := s.store.RemoveObject(ctx, s.bucket, path); rmErr != nil {
			log.Printf("compensating delete of %s failed: %v", path, rmErr)
		}
		return "", nil, err
	}

	return url, record, nil
}

// RecordOnly inserts a metadata row for an already-hosted URL. The URL is
// not checked for reachability and duplicates are not deduplicated.
func (s *screenshotService) RecordOnly(ctx context.Context, callerID, imageURL string, capturedAt *time.Time) (*model.Screenshot, error) {
	captured := time.Now().UTC()
	if capturedAt != nil {
		captured = capturedAt.UTC()
	}

	record, err := s.shots.Create(ctx, &model.Screenshot{
		UserID:     callerID,
		ImageURL:   imageURL,
		CapturedAt: captured.Format(time.RFC3339),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrBadRequest, err)
	}
	return record, nil
}

// resolveURL returns a stable public URL for public buckets, or a signed
// URL for private ones. When signing fails the bare object path is stored
// instead so the row still locates the object.
func (s *screenshotService) resolveURL(ctx context.Context, path string) string {
	if s.bucketPublic {
		return s.store.PublicObjectURL(s.bucket, path)
	}
	url, err := s.store.SignObjectURL(ctx, s.bucket, path, supabase.DefaultSignedURLExpiry)
	if err != nil {
		log.Printf("sign url for %s failed: %v", path, err)
		return path
	}
	return url
}

// objectPath builds the storage key: user_id/YYYY/MM/DD/<random hex>.<ext>.
// The random suffix guarantees an existing object is never overwritten.
func objectPath(userID string, captured time.Time, ext string) string {
	u := uuid.New()
	return fmt.Sprintf("%s/%04d/%02d/%02d/%s.%s",
		userID, captured.Year(), int(captured.Month()), captured.Day(), hex.EncodeToString(u[:]), ext)
}

// sniffImage decodes the image header and returns the file extension.
// Only PNG and JPEG are accepted; anything else, including corrupt or
// unrecognized data, is an unsupported media type.
func sniffImage(raw []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return "", errors.ErrUnsupportedImage
	}
	switch format {
	case "png":
		return "png", nil
	case "jpeg":
		return "jpg", nil
	}
	return "", fmt.Errorf("%w: unsupported image type: %s", errors.ErrUnsupportedImage, format)
}

package media

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
)

var (
	ErrValidation  = errors.New("validation error")
	ErrFileTooBig  = errors.New("file exceeds size limit")
	ErrInvalidType = errors.New("unsupported file type")
	ErrUnknownSlot = errors.New("unknown document slot")
	ErrNoObject    = errors.New("nothing uploaded for this slot")
)

var logoContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

var documentContentTypes = map[string]string{
	"application/pdf":    ".pdf",
	"application/msword": ".doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

// documentSlots are the named attachments a startup profile carries.
var documentSlots = map[string]struct{}{
	"pitchDeck":                {},
	"businessModelCanvas":      {},
	"financialSummary":         {},
	"incorporationCertificate": {},
	"gstCertificate":           {},
}

type Store interface {
	SetLogoKey(ctx context.Context, id, objectKey string) error
	SetDocumentKey(ctx context.Context, id, slot, objectKey string) error
}

type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

type Service struct {
	store      Store
	storage    ObjectStorage
	maxBytes   int64
	presignTTL time.Duration
}

type Upload struct {
	ObjectKey string
	URL       string
}

func NewService(store Store, storage ObjectStorage, maxBytes int64, presignTTL time.Duration) *Service {
	if maxBytes <= 0 {
		maxBytes = 5 << 20
	}
	if presignTTL <= 0 {
		presignTTL = 15 * time.Minute
	}

	return &Service{
		store:      store,
		storage:    storage,
		maxBytes:   maxBytes,
		presignTTL: presignTTL,
	}
}

// UploadLogo stores a startup's logo image and records its object key on
// the profile. The previous logo object, if any, is left for bucket
// lifecycle rules to reap.
func (s *Service) UploadLogo(ctx context.Context, startupID, fileName, contentType string, body io.Reader, size int64) (Upload, error) {
	if startupID == "" || body == nil || size <= 0 {
		return Upload{}, ErrValidation
	}
	if size > s.maxBytes {
		return Upload{}, ErrFileTooBig
	}
	ext, ok := logoContentTypes[normalizeContentType(contentType)]
	if !ok {
		return Upload{}, ErrInvalidType
	}
	if s.store == nil || s.storage == nil {
		return Upload{}, fmt.Errorf("media dependencies are not configured")
	}

	if err := s.storage.EnsureBucket(ctx); err != nil {
		return Upload{}, fmt.Errorf("ensure bucket: %w", err)
	}

	objectKey, err := buildObjectKey(startupID, "logo", fileName, ext)
	if err != nil {
		return Upload{}, fmt.Errorf("build object key: %w", err)
	}

	if err := s.storage.Put(ctx, objectKey, body, size, normalizeContentType(contentType)); err != nil {
		return Upload{}, fmt.Errorf("put object: %w", err)
	}

	if err := s.store.SetLogoKey(ctx, startupID, objectKey); err != nil {
		_ = s.storage.Delete(ctx, objectKey)
		return Upload{}, err
	}

	url, err := s.storage.PresignGet(ctx, objectKey, s.presignTTL)
	if err != nil {
		return Upload{}, fmt.Errorf("presign logo url: %w", err)
	}

	return Upload{ObjectKey: objectKey, URL: url}, nil
}

// UploadDocument stores a document under one of the profile's named
// slots, replacing whatever key the slot held before.
func (s *Service) UploadDocument(ctx context.Context, startupID, slot, fileName, contentType string, body io.Reader, size int64) (Upload, error) {
	if startupID == "" || body == nil || size <= 0 {
		return Upload{}, ErrValidation
	}
	if _, ok := documentSlots[slot]; !ok {
		return Upload{}, ErrUnknownSlot
	}
	if size > s.maxBytes {
		return Upload{}, ErrFileTooBig
	}
	ext, ok := documentContentTypes[normalizeContentType(contentType)]
	if !ok {
		return Upload{}, ErrInvalidType
	}
	if s.store == nil || s.storage == nil {
		return Upload{}, fmt.Errorf("media dependencies are not configured")
	}

	if err := s.storage.EnsureBucket(ctx); err != nil {
		return Upload{}, fmt.Errorf("ensure bucket: %w", err)
	}

	objectKey, err := buildObjectKey(startupID, "documents/"+slot, fileName, ext)
	if err != nil {
		return Upload{}, fmt.Errorf("build object key: %w", err)
	}

	if err := s.storage.Put(ctx, objectKey, body, size, normalizeContentType(contentType)); err != nil {
		return Upload{}, fmt.Errorf("put object: %w", err)
	}

	if err := s.store.SetDocumentKey(ctx, startupID, slot, objectKey); err != nil {
		_ = s.storage.Delete(ctx, objectKey)
		return Upload{}, err
	}

	url, err := s.storage.PresignGet(ctx, objectKey, s.presignTTL)
	if err != nil {
		return Upload{}, fmt.Errorf("presign document url: %w", err)
	}

	return Upload{ObjectKey: objectKey, URL: url}, nil
}

// PresignObject returns a short-lived download URL for a stored key.
func (s *Service) PresignObject(ctx context.Context, objectKey string) (string, error) {
	if objectKey == "" {
		return "", ErrNoObject
	}
	if s.storage == nil {
		return "", fmt.Errorf("media dependencies are not configured")
	}

	url, err := s.storage.PresignGet(ctx, objectKey, s.presignTTL)
	if err != nil {
		return "", fmt.Errorf("presign object url: %w", err)
	}
	return url, nil
}

func DocumentSlots() []string {
	slots := make([]string, 0, len(documentSlots))
	for slot := range documentSlots {
		slots = append(slots, slot)
	}
	return slots
}

func buildObjectKey(startupID, prefix, fileName, fallbackExt string) (string, error) {
	rnd := make([]byte, 8)
	if _, err := rand.Read(rnd); err != nil {
		return "", err
	}

	ext := strings.ToLower(path.Ext(strings.TrimSpace(fileName)))
	if ext == "" {
		ext = fallbackExt
	}

	stamp := time.Now().UTC().Format("20060102T150405")
	return fmt.Sprintf("startups/%s/%s/%s_%s%s", startupID, prefix, stamp, hex.EncodeToString(rnd), ext), nil
}

func normalizeContentType(contentType string) string {
	ct := strings.TrimSpace(strings.ToLower(contentType))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	if ct == "image/jpg" {
		ct = "image/jpeg"
	}
	return ct
}

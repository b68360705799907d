package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/portfolio/internal/common"
	"github.com/dmitrijs2005/portfolio/internal/server/storage"
)

const uploadPrefix = "uploads/"

// Upload describes a stored image. URL is the public path that redirects to
// the object store.
type Upload struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalname"`
	URL          string `json:"url"`
	Size         int64  `json:"size"`
}

// UploadService stores admin-uploaded images in the object store.
type UploadService struct {
	store      storage.ObjectStore
	maxSize    int64
	presignTTL time.Duration
	newName    func() string
}

func NewUploadService(store storage.ObjectStore, maxSize int64, presignTTL time.Duration) *UploadService {
	return &UploadService{
		store:      store,
		maxSize:    maxSize,
		presignTTL: presignTTL,
		newName:    func() string { return "image-" + uuid.NewString() },
	}
}

func (s *UploadService) MaxSize() int64 {
	return s.maxSize
}

// Save sniffs body and stores it when it is an image within the size limit.
// The declared content type of the client is ignored.
func (s *UploadService) Save(ctx context.Context, originalName string, body []byte) (*Upload, error) {
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: No file uploaded", common.ErrorValidation)
	}
	if int64(len(body)) > s.maxSize {
		return nil, common.ErrorTooLarge
	}

	// SVG can carry script and would be served from the bucket origin as is.
	mt := mimetype.Detect(body)
	if !strings.HasPrefix(mt.String(), "image/") || mt.Is("image/svg+xml") {
		return nil, common.ErrorUnsupportedMedia
	}

	filename := s.newName() + mt.Extension()
	if err := s.store.Put(ctx, uploadPrefix+filename, body, mt.String()); err != nil {
		return nil, fmt.Errorf("error storing upload: %w", err)
	}

	return &Upload{
		Filename:     filename,
		OriginalName: path.Base(originalName),
		URL:          "/" + uploadPrefix + filename,
		Size:         int64(len(body)),
	}, nil
}

// Delete removes a stored image; unknown names yield common.ErrorNotFound.
func (s *UploadService) Delete(ctx context.Context, filename string) error {
	key, err := s.key(ctx, filename)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("error deleting upload: %w", err)
	}
	return nil
}

// SignedURL returns a short-lived direct link to the stored image.
func (s *UploadService) SignedURL(ctx context.Context, filename string) (string, error) {
	key, err := s.key(ctx, filename)
	if err != nil {
		return "", err
	}
	return s.store.PresignGet(ctx, key, s.presignTTL)
}

func (s *UploadService) key(ctx context.Context, filename string) (string, error) {
	if filename == "" || filename != path.Base(filename) || strings.HasPrefix(filename, ".") {
		return "", common.ErrorNotFound
	}

	key := uploadPrefix + filename
	ok, err := s.store.Exists(ctx, key)
	if err != nil {
		return "", fmt.Errorf("error checking upload: %w", err)
	}
	if !ok {
		return "", common.ErrorNotFound
	}
	return key, nil
}

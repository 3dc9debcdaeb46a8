package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/themirzaalibaig/server-ecommerce/pkg/storage"
)

// MaxImageBytes caps a single upload at 5 MB.
const MaxImageBytes = 5 << 20

var (
	ErrImageTooLarge   = errors.New("image exceeds the 5 MB limit")
	ErrImageBadType    = errors.New("unsupported image type")
	ErrImageMissingKey = errors.New("image key is required")
)

var imageExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// UploadedImage is returned by Upload for the response body.
type UploadedImage struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type ImageService struct {
	disk storage.Disk
}

func NewImageService(disk storage.Disk) *ImageService {
	return &ImageService{disk: disk}
}

// Upload validates the file and stores it under a random key grouped by
// month: uploads/2026/09/<hex>.jpg. The content type is sniffed from the
// first bytes rather than trusted from the client header.
func (s *ImageService) Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*UploadedImage, error) {
	if header.Size > MaxImageBytes {
		return nil, ErrImageTooLarge
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("services: read image header: %w", err)
	}
	head = head[:n]

	contentType := http.DetectContentType(head)
	ext, ok := imageExt[contentType]
	if !ok {
		return nil, ErrImageBadType
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("services: rewind image: %w", err)
	}

	key, err := imageKey(ext)
	if err != nil {
		return nil, err
	}

	if err := s.disk.Put(ctx, key, io.LimitReader(file, MaxImageBytes)); err != nil {
		return nil, fmt.Errorf("services: store image: %w", err)
	}

	return &UploadedImage{Key: key, URL: s.disk.URL(key)}, nil
}

// Delete removes a stored image by its key. Keys outside uploads/ are
// rejected so the endpoint cannot be pointed at arbitrary objects.
func (s *ImageService) Delete(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrImageMissingKey
	}
	if !strings.HasPrefix(key, "uploads/") || strings.Contains(key, "..") {
		return ErrImageMissingKey
	}
	if err := s.disk.Delete(ctx, key); err != nil {
		return fmt.Errorf("services: delete image: %w", err)
	}
	return nil
}

func imageKey(ext string) (string, error) {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("services: image key: %w", err)
	}
	now := time.Now().UTC()
	return fmt.Sprintf("uploads/%04d/%02d/%s%s", now.Year(), now.Month(), hex.EncodeToString(buf[:]), ext), nil
}

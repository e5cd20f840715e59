package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/url"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/khaynem/WasteWise-Backend/internal/config"
	"github.com/khaynem/WasteWise-Backend/pkg/logger"
)

// CloudinaryService wraps the image host. All report images, challenge
// proofs and listing photos go through here; the stored value is always the
// returned secure URL.
type CloudinaryService struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryService(cfg *config.Config) (*CloudinaryService, error) {
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return nil, fmt.Errorf("cloudinary configuration is missing")
	}

	cld, err := cloudinary.NewFromParams(
		cfg.CloudinaryCloudName,
		cfg.CloudinaryAPIKey,
		cfg.CloudinaryAPISecret,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &CloudinaryService{cld: cld}, nil
}

// UploadImage pushes one multipart file into the given folder and returns
// its public URL.
func (s *CloudinaryService) UploadImage(ctx context.Context, file multipart.File, folder string) (string, error) {
	uploadResult, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       "wastewise/" + folder,
		ResourceType: "auto",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to cloudinary: %w", err)
	}
	return uploadResult.SecureURL, nil
}

// DeleteImage removes an uploaded image by its public ID.
func (s *CloudinaryService) DeleteImage(ctx context.Context, publicID string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

// Uploader is the interface handlers depend on, so tests can stub the
// image host.
type Uploader interface {
	UploadImage(ctx context.Context, file multipart.File, folder string) (string, error)
}

// Remover is implemented by hosts that can also delete uploads.
type Remover interface {
	DeleteImage(ctx context.Context, publicID string) error
}

// ImageHost is the process-wide uploader. nil means uploads are disabled
// (handlers reject multipart submissions with a clear error).
var ImageHost Uploader

// RemoveHostedImage best-effort deletes a previously uploaded image by its
// URL. Failures are logged, never surfaced: the database row is already
// gone or rewritten by the time this runs.
func RemoveHostedImage(ctx context.Context, rawURL string) {
	rm, ok := ImageHost.(Remover)
	if !ok || rawURL == "" {
		return
	}
	publicID := publicIDFromURL(rawURL)
	if publicID == "" {
		return
	}
	if err := rm.DeleteImage(ctx, publicID); err != nil {
		logger.Warn().Err(err).Str("public_id", publicID).Msg("Failed to remove hosted image")
	}
}

// publicIDFromURL recovers the Cloudinary public ID from a delivery URL:
// everything after the /upload/ segment, minus the version prefix and the
// file extension. Returns "" for URLs that don't look like deliveries.
func publicIDFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, part := range parts {
		if part != "upload" || i+1 >= len(parts) {
			continue
		}
		rest := parts[i+1:]
		if isVersionSegment(rest[0]) {
			rest = rest[1:]
		}
		if len(rest) == 0 {
			return ""
		}
		id := strings.Join(rest, "/")
		if dot := strings.LastIndex(id, "."); dot > 0 {
			id = id[:dot]
		}
		return id
	}
	return ""
}

func isVersionSegment(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func InitCloudinary() error {
	svc, err := NewCloudinaryService(config.AppConfig)
	if err != nil {
		return err
	}
	ImageHost = svc
	return nil
}

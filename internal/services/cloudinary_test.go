package services

import (
	"context"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicIDFromURL(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://res.cloudinary.com/demo/image/upload/v1712345/wastewise/reports/abc123.jpg", "wastewise/reports/abc123"},
		{"https://res.cloudinary.com/demo/image/upload/wastewise/listings/pic.png", "wastewise/listings/pic"},
		{"https://res.cloudinary.com/demo/image/upload/v1/wastewise/challenges/proof.webp", "wastewise/challenges/proof"},
		{"https://res.cloudinary.com/demo/image/upload/v99/solo.jpg", "solo"},
		{"https://example.com/no-upload-segment/pic.jpg", ""},
		{"https://res.cloudinary.com/demo/image/upload/", ""},
		{"://bad-url", ""},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, publicIDFromURL(tc.url), tc.url)
	}
}

type removalHost struct {
	deleted []string
}

func (h *removalHost) UploadImage(ctx context.Context, file multipart.File, folder string) (string, error) {
	return "https://res.cloudinary.com/demo/image/upload/v1/wastewise/" + folder + "/up.jpg", nil
}

func (h *removalHost) DeleteImage(ctx context.Context, publicID string) error {
	h.deleted = append(h.deleted, publicID)
	return nil
}

func TestRemoveHostedImage(t *testing.T) {
	host := &removalHost{}
	ImageHost = host
	t.Cleanup(func() { ImageHost = nil })

	RemoveHostedImage(context.Background(), "https://res.cloudinary.com/demo/image/upload/v5/wastewise/reports/old.jpg")
	assert.Equal(t, []string{"wastewise/reports/old"}, host.deleted)

	// URLs that don't resolve to a public ID are skipped, not errors.
	RemoveHostedImage(context.Background(), "https://example.com/somewhere/else.jpg")
	RemoveHostedImage(context.Background(), "")
	assert.Len(t, host.deleted, 1)
}

func TestRemoveHostedImage_UploaderWithoutDelete(t *testing.T) {
	ImageHost = uploadOnlyHost{}
	t.Cleanup(func() { ImageHost = nil })

	// Must be a silent no-op for hosts that cannot delete.
	RemoveHostedImage(context.Background(), "https://res.cloudinary.com/demo/image/upload/v5/wastewise/reports/old.jpg")
}

type uploadOnlyHost struct{}

func (uploadOnlyHost) UploadImage(ctx context.Context, file multipart.File, folder string) (string, error) {
	return "https://res.cloudinary.com/demo/image/upload/v1/wastewise/up.jpg", nil
}

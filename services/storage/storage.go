package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// StorageService uploads and deletes clinic and product media.
type StorageService interface {
	UploadImage(ctx context.Context, file multipart.File, destFolder string) (string, error)
	DeleteImage(ctx context.Context, publicID string) error
}

// CloudinaryStorageService implements StorageService on an injected
// Cloudinary client; the client is constructed once at startup and passed
// in, never read from process-wide state.
type CloudinaryStorageService struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStorageService creates a storage service from an existing client.
func NewCloudinaryStorageService(cld *cloudinary.Cloudinary) *CloudinaryStorageService {
	return &CloudinaryStorageService{cld: cld}
}

// NewCloudinaryClient builds the Cloudinary client from explicit credentials.
func NewCloudinaryClient(cloudName, apiKey, apiSecret string) (*cloudinary.Cloudinary, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	return cld, nil
}

// UploadImage uploads the image into the given folder and returns its
// secure URL.
func (s *CloudinaryStorageService) UploadImage(ctx context.Context, file multipart.File, destFolder string) (string, error) {
	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: destFolder})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("no URL returned for uploaded image")
	}
	return result.SecureURL, nil
}

var uploadVersion = regexp.MustCompile(`^v\d+$`)

// PublicIDFromURL derives the Cloudinary public ID from a delivery URL,
// e.g. ".../image/upload/v123/clinics/abc.png" yields "clinics/abc".
// Returns "" for anything that is not a Cloudinary upload URL.
func PublicIDFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	upload := -1
	for i, p := range parts {
		if p == "upload" {
			upload = i
			break
		}
	}
	if upload < 0 || upload == len(parts)-1 {
		return ""
	}
	rest := parts[upload+1:]
	if len(rest) > 1 && uploadVersion.MatchString(rest[0]) {
		rest = rest[1:]
	}
	id := strings.Join(rest, "/")
	return strings.TrimSuffix(id, path.Ext(id))
}

// DeleteImage removes an uploaded image by its public ID.
func (s *CloudinaryStorageService) DeleteImage(ctx context.Context, publicID string) error {
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

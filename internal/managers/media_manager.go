package managers

import (
	"context"
	"fmt"
	"os"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	log "github.com/sirupsen/logrus"
)

// MediaMgr is the media host collaborator. Uploads accept whatever
// Cloudinary accepts as a file source (base64 data URI or plain URL) and
// return a stable public id together with a retrievable URL.
type MediaMgr interface {
	Upload(ctx context.Context, payload, folder string) (publicId, url string, err error)
	Destroy(ctx context.Context, publicId string) error
}

// MediaManager is the Cloudinary-backed MediaMgr.
type MediaManager struct {
	cld *cloudinary.Cloudinary
}

// NewMediaManager initializes the Cloudinary client from the
// CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET
// environment variables.
func NewMediaManager() (MediaMgr, error) {
	log.Info("Initializing media manager")

	cld, err := cloudinary.NewFromParams(
		os.Getenv("CLOUDINARY_CLOUD_NAME"),
		os.Getenv("CLOUDINARY_API_KEY"),
		os.Getenv("CLOUDINARY_API_SECRET"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &MediaManager{cld: cld}, nil
}

// Upload pushes the image payload into the given folder.
func (mm *MediaManager) Upload(ctx context.Context, payload, folder string) (string, string, error) {
	result, err := mm.cld.Upload.Upload(ctx, payload, uploader.UploadParams{
		Folder: folder,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload image: %w", err)
	}

	return result.PublicID, result.SecureURL, nil
}

// Destroy removes the asset with the given public id. Destroying an absent
// asset is not an error.
func (mm *MediaManager) Destroy(ctx context.Context, publicId string) error {
	_, err := mm.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID: publicId,
	})
	if err != nil {
		return fmt.Errorf("failed to destroy image: %w", err)
	}

	return nil
}

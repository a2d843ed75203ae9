package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/project-ledger/backend/internal/application/adapter"
	domainerror "github.com/project-ledger/backend/internal/domain/error"
)

// MaxImageSize is the largest accepted evidence image, in bytes.
const MaxImageSize = 10 << 20

// EvidenceFolder is the storage prefix of transaction evidence images.
const EvidenceFolder = "transactions"

var imageContentTypes = map[string]string{
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// ImageContentType validates an image by file name and size and returns the
// content type to store it with.
func ImageContentType(fileName string, size int) (string, error) {
	contentType, ok := imageContentTypes[strings.ToLower(filepath.Ext(fileName))]
	if !ok {
		return "", domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidImage,
			"image must be a jpeg, jpg, png or gif file",
			domainerror.ErrInvalidImage,
		)
	}

	if size <= 0 || size > MaxImageSize {
		return "", domainerror.NewTransactionError(
			domainerror.ErrCodeImageTooLarge,
			fmt.Sprintf("image must not exceed %d MB", MaxImageSize>>20),
			domainerror.ErrImageTooLarge,
		)
	}
	return contentType, nil
}

// EvidencePath returns the storage path of an uploaded image.
func EvidencePath(fileName string, at time.Time) string {
	name := unsafeNameChars.ReplaceAllString(filepath.Base(fileName), "_")
	return fmt.Sprintf("%s/%d_%s", EvidenceFolder, at.UnixMilli(), name)
}

// UploadEvidenceInput represents an uploaded evidence image.
type UploadEvidenceInput struct {
	FileName string
	Data     []byte
}

// UploadEvidenceOutput holds the stored image location.
type UploadEvidenceOutput struct {
	URL  string
	Path string
}

// UploadEvidenceUseCase handles storing a transaction evidence image.
type UploadEvidenceUseCase struct {
	storage adapter.BlobStorage
}

// NewUploadEvidenceUseCase creates a new UploadEvidenceUseCase instance.
func NewUploadEvidenceUseCase(storage adapter.BlobStorage) *UploadEvidenceUseCase {
	return &UploadEvidenceUseCase{
		storage: storage,
	}
}

// Execute validates and stores the image.
func (uc *UploadEvidenceUseCase) Execute(ctx context.Context, input UploadEvidenceInput) (*UploadEvidenceOutput, error) {
	contentType, err := ImageContentType(input.FileName, len(input.Data))
	if err != nil {
		return nil, err
	}

	if uc.storage == nil {
		return nil, domainerror.NewTransientError("image storage is not configured", domainerror.ErrStorageUnavailable)
	}

	path := EvidencePath(input.FileName, time.Now())
	stored, err := uc.storage.Upload(ctx, path, input.Data, contentType)
	if err != nil {
		slog.Error("Failed to upload evidence image", "path", path, "error", err)
		return nil, domainerror.NewTransientError("failed to upload image", err)
	}

	return &UploadEvidenceOutput{URL: stored.URL, Path: stored.Path}, nil
}

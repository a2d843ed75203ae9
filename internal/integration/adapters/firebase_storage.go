package adapters

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"github.com/project-ledger/backend/internal/application/adapter"
)

// FirebaseStorage implements adapter.BlobStorage on a Firebase Storage bucket.
type FirebaseStorage struct {
	bucket     *gcs.BucketHandle
	bucketName string
}

// NewFirebaseStorage initializes a Firebase app and opens its storage bucket.
func NewFirebaseStorage(ctx context.Context, credentialsFile, bucketName string) (*FirebaseStorage, error) {
	if bucketName == "" {
		return nil, fmt.Errorf("firebase storage bucket is not configured")
	}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{StorageBucket: bucketName}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase storage client: %w", err)
	}

	bucket, err := client.DefaultBucket()
	if err != nil {
		return nil, fmt.Errorf("failed to open storage bucket: %w", err)
	}

	return &FirebaseStorage{
		bucket:     bucket,
		bucketName: bucketName,
	}, nil
}

// Upload writes data to path and returns a token download URL.
func (s *FirebaseStorage) Upload(ctx context.Context, path string, data []byte, contentType string) (*adapter.StoredObject, error) {
	token := uuid.NewString()

	w := s.bucket.Object(path).NewWriter(ctx)
	w.ContentType = contentType
	w.Metadata = map[string]string{
		"firebaseStorageDownloadTokens": token,
	}

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("failed to write object %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to upload object %s: %w", path, err)
	}

	slog.Debug("Evidence uploaded", "path", path, "size", len(data))

	return &adapter.StoredObject{
		Path: path,
		URL:  DownloadURL(s.bucketName, path, token),
	}, nil
}

// Delete removes the object at path.
func (s *FirebaseStorage) Delete(ctx context.Context, path string) error {
	err := s.bucket.Object(path).Delete(ctx)
	if err != nil && !errors.Is(err, gcs.ErrObjectNotExist) {
		return fmt.Errorf("failed to delete object %s: %w", path, err)
	}
	return nil
}

// DownloadURL builds the public download URL Firebase serves for a token.
func DownloadURL(bucket, path, token string) string {
	return fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media&token=%s",
		bucket, url.PathEscape(path), url.QueryEscape(token))
}

var _ adapter.BlobStorage = (*FirebaseStorage)(nil)

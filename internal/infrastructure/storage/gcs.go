package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// CloudEvidenceStorage implements domain.EvidenceStorage on Google
// Cloud Storage. The storage key returned by Upload is the object name,
// usable for later deletion.
type CloudEvidenceStorage struct {
	client     *storage.Client
	bucketName string
	projectID  string
}

func NewCloudEvidenceStorage(ctx context.Context, bucketName, projectID, credentialsPath string) (*CloudEvidenceStorage, error) {
	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &CloudEvidenceStorage{
		client:     client,
		bucketName: bucketName,
		projectID:  projectID,
	}, nil
}

func (s *CloudEvidenceStorage) Upload(ctx context.Context, content io.Reader, fileName, ownerID string) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	objectName := fmt.Sprintf("evidence/%s/%s-%s%s", ownerID, uuid.New().String(), time.Now().Format("20060102150405"), ext)

	obj := s.client.Bucket(s.bucketName).Object(objectName)
	wc := obj.NewWriter(ctx)
	if contentType := mime.TypeByExtension(ext); contentType != "" {
		wc.ContentType = contentType
	}

	if _, err := io.Copy(wc, content); err != nil {
		return "", "", fmt.Errorf("failed to copy file to GCS: %w", err)
	}
	if err := wc.Close(); err != nil {
		return "", "", fmt.Errorf("failed to close writer: %w", err)
	}

	url := fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucketName, objectName)
	return url, objectName, nil
}

// Delete is idempotent: deleting an object that is already gone
// succeeds, so upload-rollback can be retried safely.
func (s *CloudEvidenceStorage) Delete(ctx context.Context, storageKey string) error {
	err := s.client.Bucket(s.bucketName).Object(storageKey).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("failed to delete object %s: %w", storageKey, err)
	}
	return nil
}

func (s *CloudEvidenceStorage) Close() error {
	return s.client.Close()
}

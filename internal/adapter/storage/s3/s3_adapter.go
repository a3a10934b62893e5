package s3

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/hostelconnect/hostel-service/internal/hostel/domain"
	"github.com/hostelconnect/hostel-service/internal/platform/logger"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// S3Storage stores hostel photos in a MinIO bucket. The object key doubles as
// the photo identifier used by reconciliation.
type S3Storage struct {
	client *minio.Client
	bucket string
	logger *logger.Logger
}

// NewS3Storage connects to MinIO and makes sure the bucket exists.
func NewS3Storage(endpoint, accessKey, secretKey, bucketName string, useSSL bool, log *logger.Logger) (*S3Storage, error) {
	log.Info("Initializing MinIO storage",
		zap.String("endpoint", endpoint), zap.String("bucket", bucketName), zap.Bool("use_ssl", useSSL))

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", endpoint, err)
	}

	err = client.MakeBucket(context.Background(), bucketName, minio.MakeBucketOptions{})
	if err != nil {
		exists, errBucketExists := client.BucketExists(context.Background(), bucketName)
		if errBucketExists == nil && exists {
			log.Info("Bucket already exists", zap.String("bucket", bucketName))
		} else {
			return nil, fmt.Errorf("failed to make/verify bucket %s: (make: %v / exists_check: %v)", bucketName, err, errBucketExists)
		}
	}

	return &S3Storage{
		client: client,
		bucket: bucketName,
		logger: log.Named("S3Storage"),
	}, nil
}

// Upload stores the file under a fresh uuid-based key, keeping the original
// extension, and returns the photo reference for the record.
func (s *S3Storage) Upload(ctx context.Context, originalFileName string, data []byte) (domain.Photo, error) {
	ext := filepath.Ext(originalFileName)
	objectKey := fmt.Sprintf("photos/%s%s", uuid.New().String(), ext)

	_, err := s.client.PutObject(ctx, s.bucket, objectKey, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: http.DetectContentType(data),
	})
	if err != nil {
		s.logger.Error("PutObject failed", zap.String("key", objectKey), zap.Error(err))
		return domain.Photo{}, fmt.Errorf("failed to upload object %s to bucket %s: %w", objectKey, s.bucket, err)
	}

	fileURL := fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, objectKey)
	s.logger.Info("photo uploaded",
		zap.String("key", objectKey), zap.Int("size_bytes", len(data)), zap.String("url", fileURL))

	return domain.Photo{URL: fileURL, Identifier: objectKey}, nil
}

// Delete removes an object by its identifier.
func (s *S3Storage) Delete(ctx context.Context, identifier string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, identifier, minio.RemoveObjectOptions{}); err != nil {
		s.logger.Error("RemoveObject failed", zap.String("key", identifier), zap.Error(err))
		return fmt.Errorf("failed to delete object %s from bucket %s: %w", identifier, s.bucket, err)
	}
	s.logger.Info("photo deleted from storage", zap.String("key", identifier))
	return nil
}

package s3

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/unimarket/catalog-service/internal/platform/logger"
)

// S3Storage stores listing images in a MinIO/S3 bucket and returns the
// public object URL.
type S3Storage struct {
	client *minio.Client
	bucket string
	logger *logger.Logger
}

func NewS3Storage(endpoint, accessKey, secretKey, bucketName string, useSSL bool, log *logger.Logger) (*S3Storage, error) {
	log.Info("Initializing S3/MinIO storage",
		zap.String("endpoint", endpoint), zap.String("bucket", bucketName), zap.Bool("use_ssl", useSSL))

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", endpoint, err)
	}

	if err := client.MakeBucket(context.Background(), bucketName, minio.MakeBucketOptions{}); err != nil {
		exists, errExists := client.BucketExists(context.Background(), bucketName)
		if errExists != nil || !exists {
			return nil, fmt.Errorf("failed to make/verify bucket %s: %w", bucketName, err)
		}
		log.Info("S3 storage: bucket already exists", zap.String("bucket", bucketName))
	}

	return &S3Storage{
		client: client,
		bucket: bucketName,
		logger: log.Named("S3Storage"),
	}, nil
}

// Upload stores data under a random object name keeping the original file
// extension, and returns the object's URL.
func (s *S3Storage) Upload(ctx context.Context, fileName string, data []byte) (string, error) {
	objectName := uuid.NewString() + filepath.Ext(fileName)

	_, err := s.client.PutObject(ctx, s.bucket, objectName,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentTypeFor(fileName)})
	if err != nil {
		s.logger.Error("S3 storage: upload failed",
			zap.String("object", objectName), zap.Error(err))
		return "", fmt.Errorf("failed to upload object %s: %w", objectName, err)
	}

	url := fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, objectName)
	s.logger.Debug("S3 storage: object uploaded", zap.String("url", url))
	return url, nil
}

func contentTypeFor(fileName string) string {
	switch filepath.Ext(fileName) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

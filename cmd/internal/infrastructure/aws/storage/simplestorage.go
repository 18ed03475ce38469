package storage

import (
	"bytes"
	"context"
	"errors"
	"mime"
	"net/http"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const PathExports = "exports/"

var ErrEmptyKey = errors.New("storage: object key is empty")

func init() {
	// Not every system mime table knows .csv.
	_ = mime.AddExtensionType(".csv", "text/csv; charset=utf-8")
}

type S3Client interface {
	UploadFile(ctx context.Context, data []byte, key string) (string, error)
}

type storageClient struct {
	bucket string
	client *s3.Client
}

// NewStorageClient returns nil when no bucket is configured, which turns
// export archiving off.
func NewStorageClient(ctx context.Context, bucket, region string) (S3Client, error) {
	if bucket == "" {
		return nil, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return NewStorageClientFromConfig(cfg, bucket), nil
}

// NewStorageClientFromConfig builds the client from an already resolved AWS
// config. optFns can point it at an S3-compatible endpoint.
func NewStorageClientFromConfig(cfg aws.Config, bucket string, optFns ...func(*s3.Options)) S3Client {
	return &storageClient{
		bucket: bucket,
		client: s3.NewFromConfig(cfg, optFns...),
	}
}

// ExportKey names an export snapshot taken at t, unique per call.
func ExportKey(t time.Time) string {
	return PathExports + t.UTC().Format("20060102T150405Z") + "-" + uuid.NewString() + ".csv"
}

func (s *storageClient) UploadFile(ctx context.Context, data []byte, key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}

	mimeType := mime.TypeByExtension(filepath.Ext(key))
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   &mimeType,
		ContentLength: aws.Int64(int64(len(data))),
	}

	_, err := s.client.PutObject(ctx, input)
	if err != nil {
		return "", err
	}
	return key, nil
}

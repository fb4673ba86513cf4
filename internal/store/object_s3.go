package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/pageza/sofregit/backend/config"
)

// S3ObjectStore stores objects in an S3 bucket.
type S3ObjectStore struct {
	s3      *config.S3Config
	presign bool
	expiry  time.Duration
}

// NewS3ObjectStore returns a store that hands out public object URLs, or
// presigned URLs valid for expiry when presign is set.
func NewS3ObjectStore(s3cfg *config.S3Config, presign bool, expiry time.Duration) *S3ObjectStore {
	return &S3ObjectStore{s3: s3cfg, presign: presign, expiry: expiry}
}

func (s *S3ObjectStore) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	_, err := s.s3.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.s3.BucketName),
		Key:           aws.String(key),
		Body:          r,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("s3 put %s: %w", key, err)
	}
	return nil
}

func (s *S3ObjectStore) URL(ctx context.Context, key string) (string, error) {
	_, err := s.s3.Client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.s3.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		var nf *types.NotFound
		if errors.As(err, &nf) {
			return "", ErrObjectNotFound
		}
		return "", fmt.Errorf("s3 head %s: %w", key, err)
	}

	if !s.presign {
		return s.s3.PublicURL(key), nil
	}
	url, err := s.s3.GeneratePresignedURL(ctx, key, s.expiry)
	if err != nil {
		return "", fmt.Errorf("s3 presign %s: %w", key, err)
	}
	return url, nil
}

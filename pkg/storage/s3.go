package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	appconfig "pulse-backend/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ErrNotConfigured is returned when no bucket is configured.
var ErrNotConfigured = errors.New("media storage not configured")

// S3Store issues presigned PUT URLs so clients upload media directly to S3;
// the backend only ever stores the resulting object URL.
type S3Store struct {
	client  *s3.Client
	bucket  string
	region  string
	expires time.Duration
}

// Upload is a presigned upload grant.
type Upload struct {
	UploadURL string `json:"upload_url"`
	ObjectURL string `json:"object_url"`
	ExpiresIn int    `json:"expires_in"`
}

// New builds the store. With no bucket configured it returns a disabled
// store whose PresignUpload fails with ErrNotConfigured.
func New(ctx context.Context, cfg appconfig.StorageConfig) (*S3Store, error) {
	store := &S3Store{
		bucket:  cfg.Bucket,
		region:  cfg.Region,
		expires: cfg.PresignExpire,
	}
	if store.expires <= 0 {
		store.expires = 5 * time.Minute
	}
	if cfg.Bucket == "" {
		return store, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	store.client = s3.NewFromConfig(awsCfg)
	return store, nil
}

// Enabled reports whether uploads can be presigned.
func (s *S3Store) Enabled() bool { return s.client != nil }

// PresignUpload grants a time-limited PUT for one object under the given
// prefix ("moments" or "profile_photos") and returns the URL the object
// will be readable at.
func (s *S3Store) PresignUpload(ctx context.Context, prefix, filename, contentType string) (*Upload, error) {
	if s.client == nil {
		return nil, ErrNotConfigured
	}

	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}
	key := fmt.Sprintf("%s/%s%s", prefix, uuid.NewString(), ext)

	presignClient := s3.NewPresignClient(s.client)
	request, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = s.expires
	})
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}

	return &Upload{
		UploadURL: request.URL,
		ObjectURL: fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key),
		ExpiresIn: int(s.expires.Seconds()),
	}, nil
}

// AngelaMos | 2026
// storage.go

package core

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/atelierlabs/workshop-tracker/internal/config"
)

// Storage wraps an S3-compatible bucket (AWS S3 or MinIO) used for
// uploaded workshop documents.
type Storage struct {
	client  *s3.Client
	presign *s3.PresignClient
	cfg     config.StorageConfig
}

func NewStorage(
	ctx context.Context,
	cfg config.StorageConfig,
) (*Storage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.SecretAccessKey,
				"",
			),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return &Storage{
		client:  client,
		presign: s3.NewPresignClient(client),
		cfg:     cfg,
	}, nil
}

func (s *Storage) Upload(
	ctx context.Context,
	key, contentType string,
	body io.Reader,
	size int64,
) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return fmt.Errorf("put object: %w", err)
	}

	return nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object: %w", err)
	}

	return nil
}

// PublicURL derives the browser-facing URL for a stored object.
func (s *Storage) PublicURL(key string) string {
	endpoint := s.cfg.PublicEndpoint
	if endpoint == "" {
		endpoint = s.cfg.Endpoint
	}
	endpoint = strings.TrimRight(endpoint, "/")

	if s.cfg.UsePathStyle {
		return fmt.Sprintf("%s/%s/%s", endpoint, s.cfg.Bucket, key)
	}

	return fmt.Sprintf("%s/%s", endpoint, key)
}

func (s *Storage) PresignGet(
	ctx context.Context,
	key string,
	expires time.Duration,
) (string, error) {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", fmt.Errorf("presign get: %w", err)
	}

	return req.URL, nil
}

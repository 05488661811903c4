package s3store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/DyutiRaman/psyche-connect-app/internal/attachments"
	"github.com/DyutiRaman/psyche-connect-app/internal/config"
)

// Store keeps case sheets in an S3-compatible bucket (AWS, MinIO, SeaweedFS,
// Supabase storage). Objects are expected to be publicly readable under
// PublicBaseURL.
type Store struct {
	api     *s3.Client
	bucket  string
	baseURL string
}

func New(ctx context.Context, cfg config.S3) (*Store, error) {
	const op = "attachments.s3store.New"

	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("%s: endpoint is required", op)
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("%s: access key and secret key are required", op)
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("%s: bucket is required", op)
	}
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(
		ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
		awsconfig.WithHTTPClient(&http.Client{Timeout: 30 * time.Second}),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		o.BaseEndpoint = aws.String(endpoint)
	})

	baseURL := cfg.PublicBaseURL
	if baseURL == "" {
		baseURL = strings.TrimSuffix(endpoint, "/") + "/" + cfg.Bucket
	}

	return &Store{
		api:     client,
		bucket:  cfg.Bucket,
		baseURL: baseURL,
	}, nil
}

func (s *Store) Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error) {
	const op = "attachments.s3store.Save"

	if s == nil {
		return "", errors.New("nil client")
	}

	if err := attachments.ValidateName(name); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(name),
		Body:   r,
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.api.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return attachments.JoinURL(s.baseURL, name), nil
}

// Delete removes the object behind publicURL. S3 treats missing keys as deleted.
func (s *Store) Delete(ctx context.Context, publicURL string) error {
	const op = "attachments.s3store.Delete"

	if s == nil {
		return errors.New("nil client")
	}

	name, err := attachments.NameFromURL(s.baseURL, publicURL)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	_, err = s.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(name),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

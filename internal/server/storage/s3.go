// Package storage wraps the S3-compatible object store used for media bytes.
// The server never proxies file contents: it issues short-lived presigned
// PUT URLs and the client transfers bytes directly.
package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	sc "github.com/vacayhq/vacay/internal/server/config"
)

// PresignExpiry is the lifetime of issued upload/download authorizations.
const PresignExpiry = 15 * time.Minute

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
	deleteObject = func(c *s3.Client, ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
		return c.DeleteObject(ctx, in, optFns...)
	}
)

// Client is the object-storage surface the media service depends on.
type Client interface {
	// PresignPut returns a short-lived URL authorizing a direct PUT of the
	// given content type to key.
	PresignPut(ctx context.Context, key string, contentType string) (string, error)
	// PresignGet returns a short-lived URL for reading key.
	PresignGet(ctx context.Context, key string) (string, error)
	// Delete removes the stored object.
	Delete(ctx context.Context, key string) error
	// PublicURL resolves the stable retrieval URL for key.
	PublicURL(key string) string
}

// S3Client implements Client against an S3-compatible endpoint (AWS, MinIO).
type S3Client struct {
	cfg *sc.Config
}

func NewS3Client(cfg *sc.Config) *S3Client {
	return &S3Client{cfg: cfg}
}

func (s *S3Client) getClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.cfg.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.cfg.S3AccessKey,
			s.cfg.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.cfg.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return client, nil
}

// PresignPut issues authorization for a direct byte transfer. The content
// type is part of the signature, so a client cannot upload under a type it
// was not authorized for.
func (s *S3Client) PresignPut(ctx context.Context, key string, contentType string) (string, error) {
	client, err := s.getClient(ctx)
	if err != nil {
		return "", err
	}
	presignClient := newS3PresignClient(client)

	bucket := s.cfg.S3Bucket

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		ContentType: &contentType,
	}, s3.WithPresignExpires(PresignExpiry))

	if err != nil {
		return "", err
	}

	return req.URL, nil
}

func (s *S3Client) PresignGet(ctx context.Context, key string) (string, error) {
	client, err := s.getClient(ctx)
	if err != nil {
		return "", err
	}
	presignClient := newS3PresignClient(client)

	bucket := s.cfg.S3Bucket

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(PresignExpiry))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

func (s *S3Client) Delete(ctx context.Context, key string) error {
	client, err := s.getClient(ctx)
	if err != nil {
		return err
	}

	bucket := s.cfg.S3Bucket

	if _, err := deleteObject(client, ctx, &s3.DeleteObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}); err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

// PublicURL joins the configured public base URL with the storage key.
func (s *S3Client) PublicURL(key string) string {
	base := strings.TrimRight(s.cfg.S3PublicBaseURL, "/")
	return base + "/" + strings.TrimLeft(key, "/")
}

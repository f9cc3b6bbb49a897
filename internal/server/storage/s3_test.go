package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sc "github.com/vacayhq/vacay/internal/server/config"
)

func testConfig() *sc.Config {
	cfg := &sc.Config{}
	cfg.LoadDefaults()
	cfg.S3PublicBaseURL = "https://cdn.example.com/vacay-media/"
	return cfg
}

func TestPublicURL(t *testing.T) {
	c := NewS3Client(testConfig())

	assert.Equal(t,
		"https://cdn.example.com/vacay-media/albums/a1/123_trip.jpg",
		c.PublicURL("albums/a1/123_trip.jpg"))
	assert.Equal(t,
		"https://cdn.example.com/vacay-media/k",
		c.PublicURL("/k"))
}

func TestPresignPut_PassesKeyAndContentType(t *testing.T) {
	origPresign := presignPutObject
	defer func() { presignPutObject = origPresign }()

	var gotKey, gotCT string
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		gotKey = aws.ToString(in.Key)
		gotCT = aws.ToString(in.ContentType)
		return &v4.PresignedHTTPRequest{URL: "https://signed.example.com/put"}, nil
	}

	c := NewS3Client(testConfig())
	url, err := c.PresignPut(context.Background(), "albums/a1/x.png", "image/png")
	require.NoError(t, err)

	assert.Equal(t, "https://signed.example.com/put", url)
	assert.Equal(t, "albums/a1/x.png", gotKey)
	assert.Equal(t, "image/png", gotCT)
}

func TestPresignPut_Error(t *testing.T) {
	origPresign := presignPutObject
	defer func() { presignPutObject = origPresign }()

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("presign failed")
	}

	c := NewS3Client(testConfig())
	_, err := c.PresignPut(context.Background(), "k", "image/png")
	require.Error(t, err)
}

func TestDelete_WrapsError(t *testing.T) {
	origDelete := deleteObject
	defer func() { deleteObject = origDelete }()

	deleteObject = func(cl *s3.Client, ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
		return nil, errors.New("boom")
	}

	c := NewS3Client(testConfig())
	err := c.Delete(context.Background(), "albums/a1/x.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "albums/a1/x.png")
}

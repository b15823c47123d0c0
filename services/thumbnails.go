package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

const maxThumbnailBytes = 10 << 20

// ThumbnailStore copies a remote image into storage the gallery controls
// and returns the URL to serve it from. key has no extension; the store
// appends one matching the image type.
type ThumbnailStore interface {
	Mirror(ctx context.Context, key, sourceURL string) (string, error)
}

type s3PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3ThumbnailStore keeps thumbnails in an S3 bucket.
type S3ThumbnailStore struct {
	client        s3PutObjectAPI
	bucket        string
	region        string
	publicBaseURL string
	httpClient    *http.Client
}

// NewS3ThumbnailStore builds a store from the default AWS credential chain.
func NewS3ThumbnailStore(ctx context.Context, bucket, region, publicBaseURL string) (*S3ThumbnailStore, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return newS3ThumbnailStore(s3.NewFromConfig(cfg), bucket, region, publicBaseURL), nil
}

func newS3ThumbnailStore(client s3PutObjectAPI, bucket, region, publicBaseURL string) *S3ThumbnailStore {
	return &S3ThumbnailStore{
		client:        client,
		bucket:        bucket,
		region:        region,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
		httpClient:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Mirror downloads sourceURL and uploads it under key plus the extension
// of its content type.
func (s *S3ThumbnailStore) Mirror(ctx context.Context, key, sourceURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create thumbnail request: %w", err)
	}
	res, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download thumbnail: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("thumbnail download returned status %d", res.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(res.Body, maxThumbnailBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read thumbnail: %w", err)
	}
	if len(data) > maxThumbnailBytes {
		return "", fmt.Errorf("thumbnail larger than %d bytes", maxThumbnailBytes)
	}

	contentType := res.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	key += thumbnailExtension(contentType)

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload thumbnail to s3: %w", err)
	}

	log.Debug().Str("bucket", s.bucket).Str("key", key).Msg("Mirrored thumbnail")
	return s.publicURL(key), nil
}

var thumbnailExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// thumbnailExtension maps an image content type to a file extension.
// Unknown types get none.
func thumbnailExtension(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return thumbnailExtensions[strings.ToLower(mediaType)]
}

func (s *S3ThumbnailStore) publicURL(key string) string {
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/ferialink/FeriaLink/internal/pkg/env"
)

const thumbnailWidth = 320

// MediaStore uploads editor media (stand logos, post images) to S3 and
// produces a thumbnail variant per upload.
type MediaStore struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// UploadResult carries the public URLs of an uploaded image.
type UploadResult struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url"`
	Key          string `json:"key"`
}

// NewMediaStoreFromEnv creates a store from S3_* environment variables.
func NewMediaStoreFromEnv(ctx context.Context) (*MediaStore, error) {
	bucket := env.GetEnv("S3_BUCKET", "")
	if bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET is not configured")
	}

	awsConfig, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(env.GetEnv("S3_REGION", "us-east-1")),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			env.GetEnv("S3_ACCESS_KEY_ID", ""),
			env.GetEnv("S3_SECRET_ACCESS_KEY", ""),
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if endpoint := env.GetEnv("S3_ENDPOINT_URL", ""); endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			// S3-compatible providers generally want path-style URLs.
			o.UsePathStyle = true
		}
	})

	publicURL := strings.TrimRight(env.GetEnv("S3_PUBLIC_URL", ""), "/")
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.amazonaws.com", bucket)
	}

	return &MediaStore{client: client, bucket: bucket, publicURL: publicURL}, nil
}

// allowed content types for editor uploads
var allowedMediaTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// AllowedMediaType reports whether a content type may be uploaded, and the
// extension to store it under.
func AllowedMediaType(contentType string) (string, bool) {
	ext, ok := allowedMediaTypes[contentType]
	return ext, ok
}

// UploadImage stores the original under media/ and a thumbnail variant
// under media/thumb/. GIFs keep the original as thumbnail (resizing drops
// animation frames).
func (m *MediaStore) UploadImage(ctx context.Context, data []byte, contentType string) (*UploadResult, error) {
	ext, ok := AllowedMediaType(contentType)
	if !ok {
		return nil, fmt.Errorf("unsupported content type %q", contentType)
	}

	key := "media/" + uuid.NewString() + ext
	if err := m.put(ctx, key, data, contentType); err != nil {
		return nil, err
	}

	result := &UploadResult{
		URL: m.publicURL + "/" + key,
		Key: key,
	}

	if contentType == "image/gif" {
		result.ThumbnailURL = result.URL
		return result, nil
	}

	thumb, err := makeThumbnail(data)
	if err != nil {
		// A broken thumbnail must not fail the upload.
		result.ThumbnailURL = result.URL
		return result, nil
	}

	thumbKey := "media/thumb/" + path.Base(key)
	if err := m.put(ctx, thumbKey, thumb, "image/jpeg"); err != nil {
		result.ThumbnailURL = result.URL
		return result, nil
	}
	result.ThumbnailURL = m.publicURL + "/" + thumbKey
	return result, nil
}

func (m *MediaStore) put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := m.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(m.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}

func makeThumbnail(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, err
	}

	if img.Bounds().Dx() > thumbnailWidth {
		img = imaging.Resize(img, thumbnailWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

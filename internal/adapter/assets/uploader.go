// Package assets stores uploaded images in Google Cloud Storage.
package assets

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"time"

	gcs "cloud.google.com/go/storage"
	"github.com/oklog/ulid/v2"

	domainErrors "github.com/polkiloo/orderdesk/internal/domain/errors"
	"github.com/polkiloo/orderdesk/internal/domain/model"
)

const (
	publicHost   = "https://storage.googleapis.com"
	cacheControl = "public, max-age=86400"
	maxAssetSize = 5 << 20
)

type objectStore interface {
	NewWriter(ctx context.Context, object, contentType string) io.WriteCloser
}

type bucketObjects struct {
	bucket *gcs.BucketHandle
}

func (o bucketObjects) NewWriter(ctx context.Context, object, contentType string) io.WriteCloser {
	w := o.bucket.Object(object).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = cacheControl
	return w
}

// Uploader writes assets under "<category>/<ulid><ext>" and returns their public URL.
type Uploader struct {
	objects objectStore
	bucket  string
	timeout time.Duration
	logger  *slog.Logger
}

// NewUploader creates an uploader for bucket using an existing client.
func NewUploader(client *gcs.Client, bucket string, timeout time.Duration, logger *slog.Logger) (*Uploader, error) {
	bucket = strings.TrimSpace(bucket)
	if client == nil || bucket == "" {
		return nil, fmt.Errorf("assets: client and bucket are required")
	}
	return newUploader(bucketObjects{bucket: client.Bucket(bucket)}, bucket, timeout, logger), nil
}

func newUploader(objects objectStore, bucket string, timeout time.Duration, logger *slog.Logger) *Uploader {
	return &Uploader{objects: objects, bucket: bucket, timeout: timeout, logger: logger}
}

// Upload stores an image asset.
func (u *Uploader) Upload(ctx context.Context, asset model.Asset, category string) (string, error) {
	if len(asset.Data) == 0 {
		return "", fmt.Errorf("%w: empty file %q", domainErrors.ErrInvalidField, asset.Filename)
	}
	if len(asset.Data) > maxAssetSize {
		return "", fmt.Errorf("%w: file %q exceeds %d bytes", domainErrors.ErrInvalidField, asset.Filename, maxAssetSize)
	}

	contentType := asset.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(asset.Data)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: %s is not an image", domainErrors.ErrInvalidField, contentType)
	}

	name := objectName(category, asset.Filename)
	if u.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.timeout)
		defer cancel()
	}

	w := u.objects.NewWriter(ctx, name, contentType)
	if _, err := w.Write(asset.Data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", name, err)
	}

	u.logger.Info("asset uploaded", slog.String("object", name), slog.Int("bytes", len(asset.Data)))
	return fmt.Sprintf("%s/%s/%s", publicHost, u.bucket, name), nil
}

func objectName(category, filename string) string {
	category = strings.Trim(strings.TrimSpace(category), "/")
	if category == "" {
		category = "misc"
	}
	return path.Join(category, ulid.Make().String()+strings.ToLower(filepath.Ext(filename)))
}

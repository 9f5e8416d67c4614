package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"marketplace-server/internal/interfaces"
	"marketplace-server/internal/models"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

var _ interfaces.Uploader = (*GCSUploader)(nil)

// ErrNotConfigured is returned by uploads when no bucket is set.
var ErrNotConfigured = fmt.Errorf("%w: blob storage not configured", models.ErrUploadFailed)

var extensions = map[string]string{
	"image/jpeg": "jpeg",
	"image/jpg":  "jpeg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// writerFunc opens a writer for one object. It lets tests replace GCS.
type writerFunc func(ctx context.Context, object, contentType string) io.WriteCloser

// GCSUploader uploads images to a Google Cloud Storage bucket.
type GCSUploader struct {
	bucket  string
	timeout time.Duration
	open    writerFunc
	client  *gcs.Client
	logger  *zap.Logger
}

// NewGCSUploader connects to GCS. An empty bucket yields an uploader whose
// uploads fail with ErrNotConfigured.
func NewGCSUploader(ctx context.Context, bucket, credentialsFile string, timeout time.Duration, logger *zap.Logger) (*GCSUploader, error) {
	u := &GCSUploader{bucket: bucket, timeout: timeout, logger: logger.Named("GCSUploader")}
	if bucket == "" {
		u.logger.Warn("GCS bucket not configured, file uploads are disabled")
		return u, nil
	}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}
	u.client = client
	u.open = func(ctx context.Context, object, contentType string) io.WriteCloser {
		w := client.Bucket(bucket).Object(object).NewWriter(ctx)
		w.ContentType = contentType
		return w
	}
	u.logger.Info("GCS uploader ready", zap.String("bucket", bucket))
	return u, nil
}

// Close releases the GCS client.
func (u *GCSUploader) Close() error {
	if u.client == nil {
		return nil
	}
	return u.client.Close()
}

// Upload writes data under folder and returns its public URL.
func (u *GCSUploader) Upload(ctx context.Context, data []byte, contentType, folder string) (string, error) {
	if u.open == nil {
		return "", ErrNotConfigured
	}
	if len(data) == 0 {
		return "", models.NewValidationError("file is empty")
	}
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	contentType = strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	ext, ok := extensions[contentType]
	if !ok {
		return "", models.NewValidationError("unsupported content type %q", contentType)
	}

	object := objectName(folder, ext)
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	w := u.open(ctx, object, contentType)
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		_ = w.Close()
		return "", u.fail(object, err)
	}
	if err := w.Close(); err != nil {
		return "", u.fail(object, err)
	}

	url := fmt.Sprintf("https://storage.googleapis.com/%s/%s", u.bucket, object)
	u.logger.Info("File uploaded", zap.String("object", object), zap.Int("size", len(data)))
	return url, nil
}

func (u *GCSUploader) fail(object string, err error) error {
	u.logger.Error("Upload failed", zap.String("object", object), zap.Error(err))
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", models.ErrUploadFailed, models.ErrTimeout)
	}
	return models.ErrUploadFailed
}

// objectName returns <folder>/<uuid>_<unixnano>.<ext> with every folder
// segment slugified.
func objectName(folder, ext string) string {
	var segments []string
	for _, part := range strings.Split(folder, "/") {
		if s := slug.Make(part); s != "" {
			segments = append(segments, s)
		}
	}
	dir := strings.Join(segments, "/")
	if dir == "" {
		dir = "misc"
	}
	return fmt.Sprintf("%s/%s_%d.%s", dir, uuid.NewString(), time.Now().UnixNano(), ext)
}

package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"regexp"
	"testing"
	"time"

	"marketplace-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeObject struct {
	bytes.Buffer
	failClose bool
	closed    bool
}

func (f *fakeObject) Close() error {
	f.closed = true
	if f.failClose {
		return errors.New("googleapi: Error 403: forbidden")
	}
	return nil
}

func newTestUploader(obj *fakeObject, got *[]string) *GCSUploader {
	return &GCSUploader{
		bucket:  "market-bucket",
		timeout: time.Second,
		logger:  zap.NewNop(),
		open: func(ctx context.Context, object, contentType string) io.WriteCloser {
			*got = append(*got, object, contentType)
			return obj
		},
	}
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n0000")

func TestUpload_WritesObjectAndReturnsPublicURL(t *testing.T) {
	obj := &fakeObject{}
	var got []string
	u := newTestUploader(obj, &got)

	url, err := u.Upload(context.Background(), pngHeader, "", "products/Red Lamp")
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Regexp(t, regexp.MustCompile(`^products/red-lamp/[0-9a-f-]{36}_\d+\.png$`), got[0])
	assert.Equal(t, "image/png", got[1])
	assert.Equal(t, "https://storage.googleapis.com/market-bucket/"+got[0], url)
	assert.Equal(t, pngHeader, obj.Bytes())
	assert.True(t, obj.closed)
}

func TestUpload_RejectsUnsupportedType(t *testing.T) {
	var got []string
	u := newTestUploader(&fakeObject{}, &got)

	_, err := u.Upload(context.Background(), []byte("plain text"), "text/plain", "profiles")
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Empty(t, got)

	_, err = u.Upload(context.Background(), nil, "image/png", "profiles")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestUpload_WriterFailureIsUploadFailed(t *testing.T) {
	var got []string
	u := newTestUploader(&fakeObject{failClose: true}, &got)

	_, err := u.Upload(context.Background(), pngHeader, "image/png; charset=binary", "profiles")
	assert.ErrorIs(t, err, models.ErrUploadFailed)
	assert.ErrorIs(t, err, models.ErrUpstream)
	assert.NotContains(t, err.Error(), "googleapi")
}

func TestUpload_NotConfigured(t *testing.T) {
	u, err := NewGCSUploader(context.Background(), "", "", time.Second, zap.NewNop())
	require.NoError(t, err)

	_, err = u.Upload(context.Background(), pngHeader, "image/png", "profiles")
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.ErrorIs(t, err, models.ErrUploadFailed)
	assert.NoError(t, u.Close())
}

func TestObjectName_EmptyFolder(t *testing.T) {
	assert.Regexp(t, `^misc/.+\.gif$`, objectName(" / ", "gif"))
}

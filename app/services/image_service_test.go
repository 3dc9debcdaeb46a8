package services

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/themirzaalibaig/server-ecommerce/pkg/storage"
)

// memDisk is an in-memory storage.Disk for tests.
type memDisk struct {
	objects map[string][]byte
}

func newMemDisk() *memDisk { return &memDisk{objects: map[string][]byte{}} }

func (d *memDisk) Put(ctx context.Context, key string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	d.objects[key] = data
	return nil
}

func (d *memDisk) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(d.objects[key])), nil
}

func (d *memDisk) Exists(ctx context.Context, key string) bool {
	_, ok := d.objects[key]
	return ok
}

func (d *memDisk) Delete(ctx context.Context, key string) error {
	delete(d.objects, key)
	return nil
}

func (d *memDisk) URL(key string) string { return "https://media.test/" + key }

var _ storage.Disk = (*memDisk)(nil)

// pngHeader is the 8-byte PNG signature followed by padding so content
// sniffing identifies the payload as image/png.
var pngHeader = append([]byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, 64)...)

func multipartFile(t *testing.T, field, name string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, name)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatal(err)
	}
	w.Close()

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatal(err)
	}
	file, header, err := req.FormFile(field)
	if err != nil {
		t.Fatal(err)
	}
	return file, header
}

func TestImageUploadStoresUnderMonthlyPrefix(t *testing.T) {
	disk := newMemDisk()
	svc := NewImageService(disk)

	file, header := multipartFile(t, "image", "photo.png", pngHeader)
	up, err := svc.Upload(context.Background(), file, header)

	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(up.Key, "uploads/"), "key = %s", up.Key)
	assert.True(t, strings.HasSuffix(up.Key, ".png"), "key = %s", up.Key)
	assert.Equal(t, "https://media.test/"+up.Key, up.URL)
	assert.True(t, disk.Exists(context.Background(), up.Key))
}

func TestImageUploadRejectsNonImage(t *testing.T) {
	svc := NewImageService(newMemDisk())

	file, header := multipartFile(t, "image", "notes.txt", []byte("plain text, not an image"))
	_, err := svc.Upload(context.Background(), file, header)

	assert.ErrorIs(t, err, ErrImageBadType)
}

func TestImageUploadRejectsOversize(t *testing.T) {
	svc := NewImageService(newMemDisk())

	big := make([]byte, MaxImageBytes+1)
	copy(big, pngHeader)
	file, header := multipartFile(t, "image", "huge.png", big)
	_, err := svc.Upload(context.Background(), file, header)

	assert.ErrorIs(t, err, ErrImageTooLarge)
}

func TestImageDelete(t *testing.T) {
	disk := newMemDisk()
	disk.objects["uploads/2026/09/abc.png"] = []byte("x")
	svc := NewImageService(disk)

	err := svc.Delete(context.Background(), "uploads/2026/09/abc.png")

	assert.NoError(t, err)
	assert.False(t, disk.Exists(context.Background(), "uploads/2026/09/abc.png"))
}

func TestImageDeleteRejectsBadKeys(t *testing.T) {
	svc := NewImageService(newMemDisk())

	for _, key := range []string{"", "  ", "etc/passwd", "uploads/../secret"} {
		err := svc.Delete(context.Background(), key)
		assert.ErrorIs(t, err, ErrImageMissingKey, "key %q", key)
	}
}

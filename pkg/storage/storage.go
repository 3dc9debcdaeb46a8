// Package storage abstracts the hosted media store behind a small Disk
// interface with two drivers:
//   - "local" — local filesystem (default, development)
//   - "s3"    — S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
// Boot once at startup, then use the default disk:
//
//	storage.Connect()
//	storage.Put(ctx, "uploads/photo.jpg", r)
//	url := storage.URL("uploads/photo.jpg")
package storage

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/themirzaalibaig/server-ecommerce/config"
)

// Disk is the media-store driver interface.
type Disk interface {
	// Put streams content to key, creating parents as needed.
	Put(ctx context.Context, key string, r io.Reader) error

	// Get returns a ReadCloser for the object. Caller must close it.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Exists reports whether an object exists at key.
	Exists(ctx context.Context, key string) bool

	// Delete removes the object. Deleting a missing object is not an error.
	Delete(ctx context.Context, key string) error

	// URL returns the public URL for key.
	URL(key string) string
}

var (
	managerMu   sync.RWMutex
	disks       = map[string]Disk{}
	defaultDisk string
)

// Connect boots the storage manager. Call once at application startup.
func Connect() error {
	defaultDisk = config.StorageDefault()

	managerMu.Lock()
	defer managerMu.Unlock()

	disks["local"] = newLocalDisk()

	if config.StorageS3Bucket() != "" {
		d, err := newS3Disk()
		if err != nil {
			return fmt.Errorf("storage: boot s3: %w", err)
		}
		disks["s3"] = d
	}

	if _, ok := disks[defaultDisk]; !ok {
		return fmt.Errorf("storage: default disk %q is not configured", defaultDisk)
	}
	return nil
}

// Use returns the named disk ("local" or "s3").
func Use(name string) Disk {
	managerMu.RLock()
	d, ok := disks[name]
	managerMu.RUnlock()
	if !ok {
		panic(fmt.Sprintf("storage: disk %q is not configured", name))
	}
	return d
}

// RegisterDisk plugs in a custom Disk implementation (used by tests).
func RegisterDisk(name string, d Disk) {
	managerMu.Lock()
	disks[name] = d
	managerMu.Unlock()
}

// Default returns the configured default disk.
func Default() Disk { return Use(defaultDisk) }

// Put streams content to key on the default disk.
func Put(ctx context.Context, key string, r io.Reader) error {
	return Default().Put(ctx, key, r)
}

// Delete removes key from the default disk.
func Delete(ctx context.Context, key string) error { return Default().Delete(ctx, key) }

// Exists reports whether key exists on the default disk.
func Exists(ctx context.Context, key string) bool { return Default().Exists(ctx, key) }

// URL returns the public URL for key on the default disk.
func URL(key string) string { return Default().URL(key) }

// Package diskcache stores JSON documents in folder-like buckets on disk.
//
// Each bucket is named by a models.DiskKey and lives at
// <root>/<key>/<key>.json. The filesystem is an afero.Fs, so tests run
// against memory and the CLI against the OS.
package diskcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/dmitrijs2005/sedaily/internal/client/models"
	"github.com/spf13/afero"
)

// ErrCacheMiss is returned by Load when nothing is cached under the key.
var ErrCacheMiss = errors.New("cache miss")

// Cache stores JSON documents in per-key folders under root.
type Cache struct {
	fs   afero.Fs
	root string
}

// New returns a Cache rooted at root on fs.
func New(fs afero.Fs, root string) *Cache {
	return &Cache{fs: fs, root: root}
}

func (c *Cache) filePath(key models.DiskKey) string {
	return filepath.Join(c.root, filepath.FromSlash(key.FolderPath()))
}

func (c *Cache) folder(key models.DiskKey) string {
	return filepath.Join(c.root, filepath.FromSlash(path.Dir(key.FolderPath())))
}

// Save replaces the bucket's document with the JSON encoding of v.
func (c *Cache) Save(ctx context.Context, key models.DiskKey, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	if err := c.fs.MkdirAll(c.folder(key), 0o770); err != nil {
		return fmt.Errorf("mkdir %s: %w", key, err)
	}

	// write then rename so a reader never sees a half-written document
	tmp := c.filePath(key) + ".tmp"
	if err := afero.WriteFile(c.fs, tmp, data, 0o660); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := c.fs.Rename(tmp, c.filePath(key)); err != nil {
		_ = c.fs.Remove(tmp)
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Load decodes the bucket's document into v. A bucket that was never saved
// or has been cleaned yields ErrCacheMiss.
func (c *Cache) Load(ctx context.Context, key models.DiskKey, v any) error {
	data, err := afero.ReadFile(c.fs, c.filePath(key))
	if errors.Is(err, os.ErrNotExist) {
		return ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// Clean removes the whole bucket folder. Cleaning an empty bucket is a no-op.
func (c *Cache) Clean(ctx context.Context, key models.DiskKey) error {
	if err := c.fs.RemoveAll(c.folder(key)); err != nil {
		return fmt.Errorf("clean %s: %w", key, err)
	}
	return nil
}

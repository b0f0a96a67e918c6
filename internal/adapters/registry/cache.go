package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
)

// defaultTTL bounds how long a cached package document is trusted. New
// releases published inside the window only become visible once it expires.
const defaultTTL = 5 * time.Minute

// diskCache stores raw package documents under a cache directory, keyed by a
// hash of the registry URL and package name. It is best effort: any I/O
// failure degrades to a cache miss.
type diskCache struct {
	dir string
	ttl time.Duration
}

// newDiskCache creates a cache rooted at dir.
func newDiskCache(dir string, ttl time.Duration) *diskCache {
	return &diskCache{dir: dir, ttl: ttl}
}

func (c *diskCache) key(baseURL, name string) string {
	sum := xxhash.Sum64String(baseURL + "\x00" + name)
	return fmt.Sprintf("%016x.json", sum)
}

// get returns the cached document if it exists and is still fresh. A nil
// cache never hits.
func (c *diskCache) get(baseURL, name string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	path := filepath.Join(c.dir, c.key(baseURL, name))

	info, err := os.Stat(path)
	if err != nil || time.Since(info.ModTime()) > c.ttl {
		return nil, false
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is derived from a hash
	if err != nil {
		return nil, false
	}
	return data, true
}

// put stores a document, silently dropping it on failure. The write goes
// through a temp file and a rename, so concurrent fetches of the same package
// never leave a torn entry for a reader to pick up.
func (c *diskCache) put(baseURL, name string, data []byte) {
	if c == nil {
		return
	}
	if err := os.MkdirAll(c.dir, 0o750); err != nil {
		return
	}
	path := filepath.Join(c.dir, c.key(baseURL, name))

	tmp, err := os.CreateTemp(c.dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return
	}
	if err := tmp.Close(); err != nil {
		return
	}
	_ = os.Rename(tmp.Name(), path)
}

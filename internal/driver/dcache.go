package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Bump when EmitPayload changes shape.
const emitCacheSchemaVersion uint16 = 1

// EmitCache stores generated C keyed by the source file's content hash, so
// an unchanged file skips emission on the next run. The file is still
// parsed: the session's instantiation and aggregation tables must be
// complete regardless of where the output came from. Thread-safe for
// concurrent access.
type EmitCache struct {
	mu  sync.RWMutex
	dir string
}

// EmitPayload is the on-disk record for one emitted module.
type EmitPayload struct {
	Schema  uint16
	Output  string
	Written int64 // unix seconds, informational only
}

// OpenEmitCache initializes the cache at the standard user location:
// $XDG_CACHE_HOME/<app> or ~/.cache/<app>.
func OpenEmitCache(app string) (*EmitCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, err
	}
	return &EmitCache{dir: dir}, nil
}

// OpenEmitCacheAt initializes the cache at an explicit directory. Used by
// tests and by --cache-dir.
func OpenEmitCacheAt(dir string) (*EmitCache, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, err
	}
	return &EmitCache{dir: dir}, nil
}

func (c *EmitCache) pathFor(key [32]byte) string {
	return filepath.Join(c.dir, "emit", hex.EncodeToString(key[:])+".mp")
}

// Get returns the cached output for a content hash, if present and current.
func (c *EmitCache) Get(key [32]byte) (string, bool) {
	if c == nil {
		return "", false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		return "", false
	}
	defer f.Close() //nolint:errcheck // read-only handle

	var payload EmitPayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return "", false
	}
	if payload.Schema != emitCacheSchemaVersion {
		return "", false
	}
	return payload.Output, true
}

// Put writes the output for a content hash. The write goes through a temp
// file and a rename so concurrent readers never see a partial record.
func (c *EmitCache) Put(key [32]byte, output string) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()

	payload := EmitPayload{
		Schema:  emitCacheSchemaVersion,
		Output:  output,
		Written: time.Now().Unix(),
	}
	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		f.Close() //nolint:errcheck // already failing
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, p)
}

// DropAll invalidates the whole cache.
func (c *EmitCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

package driver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"lattice/internal/project"
)

// bump when DumpPayload changes shape
const dumpSchema uint16 = 2

// DumpCache keeps rendered dumps under <dir>/dumps/<xx>/<digest>.mp, where
// xx is the first byte of the digest.
type DumpCache struct {
	mu  sync.RWMutex
	dir string
}

type DumpPayload struct {
	Schema      uint16         `msgpack:"schema"`
	Path        string         `msgpack:"path"`
	Format      string         `msgpack:"format"`
	ContentHash project.Digest `msgpack:"content_hash"`
	Dump        string         `msgpack:"dump"`
	ErrorCount  int            `msgpack:"errors"`
}

func OpenDumpCache(dir string) (*DumpCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("open dump cache: %w", err)
	}
	return &DumpCache{dir: dir}, nil
}

// OpenUserDumpCache opens <user cache dir>/<app>.
func OpenUserDumpCache(app string) (*DumpCache, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return nil, fmt.Errorf("open dump cache: %w", err)
	}
	return OpenDumpCache(filepath.Join(base, app))
}

func (c *DumpCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DumpCache) entry(key project.Digest) string {
	hex := key.Hex()
	return filepath.Join(c.dir, "dumps", hex[:2], hex+".mp")
}

// Put stores payload under key, replacing any previous entry atomically.
func (c *DumpCache) Put(key project.Digest, payload *DumpPayload) error {
	if c == nil {
		return nil
	}
	payload.Schema = dumpSchema
	data, err := msgpack.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode dump payload: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return writeAtomic(c.entry(key), data)
}

// Get fills out from the entry for key. An absent entry or one from an
// older schema is a miss; only I/O and decode failures are errors.
func (c *DumpCache) Get(key project.Digest, out *DumpPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	data, err := os.ReadFile(c.entry(key))
	c.mu.RUnlock()
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, err
	}
	if err := msgpack.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("decode dump payload: %w", err)
	}
	return out.Schema == dumpSchema, nil
}

// DropAll removes every entry; the cache stays usable.
func (c *DumpCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "dumps"))
}

// DumpKey binds a dump to both the content and the render settings.
func DumpKey(content [32]byte, cfg project.Config) project.Digest {
	return project.Combine(project.Digest(content), cfg.OptionsDigest())
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	_, werr := tmp.Write(data)
	cerr := tmp.Close()
	if err := errors.Join(werr, cerr); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return nil
}

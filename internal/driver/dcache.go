package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when cachePayload format changes.
const cacheSchemaVersion uint16 = 1

// Digest keys a cache entry: content hash of the LEF document plus every
// input that can change its result (technology file, Liberty files).
type Digest = [sha256.Size]byte

// DiskCache хранит канонический текст и леджер документа по дайджесту его
// входов. Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// cachePayload is the serialized form of one processed document.
type cachePayload struct {
	// Schema version for safe invalidation when the format changes.
	Schema uint16

	// Size of the canonical text, for cheap sanity checking.
	Size uint32

	Canonical string
	Ledger    [][]string
}

// OpenDiskCache initializes and returns a disk cache at the standard
// location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNoCache, err)
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoCache, err)
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Подкаталог "docs" — для удобства читаемости/очистки.
	return filepath.Join(c.dir, "docs", hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, canonical string, ledger [][]string) error {
	if c == nil {
		return nil
	}
	size, err := safecast.Conv[uint32](len(canonical))
	if err != nil {
		return fmt.Errorf("canonical text too large for cache: %w", err)
	}
	payload := cachePayload{
		Schema:    cacheSchemaVersion,
		Size:      size,
		Canonical: canonical,
		Ledger:    ledger,
	}
	data, err := msgpack.Marshal(&payload)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	path := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Get reads a payload back. ok is false on a miss or a schema mismatch.
func (c *DiskCache) Get(key Digest) (canonical string, ledger [][]string, ok bool) {
	if c == nil {
		return "", nil, false
	}
	c.mu.RLock()
	data, err := os.ReadFile(c.pathFor(key))
	c.mu.RUnlock()
	if err != nil {
		return "", nil, false
	}
	var payload cachePayload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return "", nil, false
	}
	if payload.Schema != cacheSchemaVersion {
		return "", nil, false
	}
	if int(payload.Size) != len(payload.Canonical) {
		return "", nil, false
	}
	return payload.Canonical, payload.Ledger, true
}

// ErrNoCache is returned by helpers when the cache directory cannot be
// created at all; callers degrade to uncached processing.
var ErrNoCache = errors.New("disk cache unavailable")

// inputDigest hashes every byte slice in order into one cache key.
func inputDigest(parts ...[]byte) Digest {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
	}
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

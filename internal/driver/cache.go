package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"distress/internal/source"
)

// Current schema version - increment when CachedAnswer format changes
const diskCacheSchemaVersion uint16 = 1

// CacheKey identifies one solve: input content, requested part and dividers.
type CacheKey [32]byte

// DiskCache хранит ответы по хэшу входа на диске.
// Кэш одноразовый: его всегда можно удалить.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachedAnswer is the on-disk form of an Answer.
type CachedAnswer struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Path     string
	Part     int
	Part1    int
	Part2    int
	Pairs    int
	Packets  int
	Ranks    []int
	Dividers []string
	Stored   time.Time
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens a cache rooted at dir.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

// KeyFor computes the cache key of solving file with opts.
func KeyFor(file *source.File, opts Options) CacheKey {
	h := sha256.New()
	var hdr [4]byte
	binary.LittleEndian.PutUint16(hdr[:2], diskCacheSchemaVersion)
	binary.LittleEndian.PutUint16(hdr[2:], uint16(opts.Part)) //nolint:gosec // part is validated to 0..2
	h.Write(hdr[:])
	h.Write(file.Hash[:])
	for _, d := range opts.dividers() {
		h.Write([]byte(d))
		h.Write([]byte{0})
	}
	var key CacheKey
	h.Sum(key[:0])
	return key
}

func (c *DiskCache) pathFor(key CacheKey) string {
	hexKey := hex.EncodeToString(key[:])
	// Подкаталог по первым двум символам, чтобы не плодить плоский каталог.
	return filepath.Join(c.dir, "answers", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes an answer to the disk cache.
func (c *DiskCache) Put(key CacheKey, payload *CachedAnswer) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload.Schema = diskCacheSchemaVersion
	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads an answer from the disk cache. Entries written with another
// schema are reported as misses.
func (c *DiskCache) Get(key CacheKey) (*CachedAnswer, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var out CachedAnswer
	if err := msgpack.NewDecoder(f).Decode(&out); err != nil {
		return nil, false, fmt.Errorf("decode cache entry: %w", err)
	}
	if out.Schema != diskCacheSchemaVersion {
		return nil, false, nil
	}
	return &out, true, nil
}

// DropAll invalidates the cache.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

func answerToCache(a *Answer) *CachedAnswer {
	return &CachedAnswer{
		Path:     a.Path,
		Part:     a.Part,
		Part1:    a.Part1,
		Part2:    a.Part2,
		Pairs:    a.Pairs,
		Packets:  a.Packets,
		Ranks:    a.Ranks,
		Dividers: a.Dividers,
		Stored:   time.Now().UTC(),
	}
}

func cacheToAnswer(c *CachedAnswer, path string) *Answer {
	return &Answer{
		Path:     path,
		Part:     c.Part,
		Part1:    c.Part1,
		Part2:    c.Part2,
		Pairs:    c.Pairs,
		Packets:  c.Packets,
		Ranks:    c.Ranks,
		Dividers: c.Dividers,
		Cached:   true,
	}
}

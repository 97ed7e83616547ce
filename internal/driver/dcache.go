package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"lintcheck/internal/diag"
	"lintcheck/internal/source"
)

// Current schema version - increment when diskPayload format changes.
const diskCacheSchemaVersion uint16 = 1

// Digest is a sha256 content hash, the cache key.
type Digest = [32]byte

// DiskCache stores raw per-file findings keyed by content hash, so repeat
// runs over unchanged files skip the scan entirely.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

type cachedNote struct {
	Start uint32
	End   uint32
	Msg   string
}

type cachedDiagnostic struct {
	Code       uint16
	Confidence uint8
	Start      uint32
	End        uint32
	Message    string
	Notes      []cachedNote
}

// diskPayload stores the findings of one file version. Spans are byte
// offsets; they stay valid because the key is the content hash.
type diskPayload struct {
	Schema   uint16
	Path     string
	Findings []cachedDiagnostic
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
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Subdirectory keeps the cache root readable and easy to clear.
	return filepath.Join(c.dir, "files", hexKey+".mp")
}

// put serializes and writes a payload to the disk cache.
func (c *DiskCache) put(key Digest, payload *diskPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(f.Name())
	}()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Atomic replace.
	return os.Rename(f.Name(), p)
}

// get reads and deserializes a payload from the disk cache.
func (c *DiskCache) get(key Digest, out *diskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	p := c.pathFor(key)
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() {
		_ = f.Close()
	}()
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, err
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

// cachedFindings rebuilds the raw bag for file from the cache, re-homing the
// stored spans onto the file's current FileID.
func cachedFindings(c *DiskCache, file *source.File, maxDiagnostics int) (*diag.Bag, bool) {
	if c == nil {
		return nil, false
	}
	var payload diskPayload
	ok, err := c.get(file.Hash, &payload)
	if err != nil || !ok || payload.Schema != diskCacheSchemaVersion {
		return nil, false
	}

	bag := diag.NewBag(maxDiagnostics)
	for _, cd := range payload.Findings {
		d := diag.Diagnostic{
			Code:       diag.Code(cd.Code),
			Confidence: diag.Confidence(cd.Confidence),
			Message:    cd.Message,
			Primary:    source.Span{File: file.ID, Start: cd.Start, End: cd.End},
		}
		for _, n := range cd.Notes {
			d.Notes = append(d.Notes, diag.Note{
				Span: source.Span{File: file.ID, Start: n.Start, End: n.End},
				Msg:  n.Msg,
			})
		}
		bag.Add(d)
	}
	return bag, true
}

// storeFindings writes the raw bag for file into the cache. Failures are
// ignored: the cache is an optimization, never a correctness dependency.
func storeFindings(c *DiskCache, file *source.File, bag *diag.Bag) {
	if c == nil {
		return
	}
	payload := diskPayload{
		Schema: diskCacheSchemaVersion,
		Path:   file.Path,
	}
	for _, d := range bag.Items() {
		cd := cachedDiagnostic{
			Code:       uint16(d.Code),
			Confidence: uint8(d.Confidence),
			Start:      d.Primary.Start,
			End:        d.Primary.End,
			Message:    d.Message,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, cachedNote{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
		}
		payload.Findings = append(payload.Findings, cd)
	}
	_ = c.put(file.Hash, &payload)
}

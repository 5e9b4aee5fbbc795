package build

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/edsrzf/mmap-go"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/gnana997/propdoc/pkg/project"
)

// FingerprintCache remembers the input hash of each component's last
// successful build so unchanged components can be skipped.
type FingerprintCache struct {
	cache *lru.Cache[string, string]
}

// NewFingerprintCache creates a cache holding up to size components.
func NewFingerprintCache(size int) (*FingerprintCache, error) {
	if size <= 0 {
		size = 4096
	}
	cache, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create fingerprint cache: %w", err)
	}
	return &FingerprintCache{cache: cache}, nil
}

// Unchanged reports whether fp matches the stored fingerprint of name.
func (fc *FingerprintCache) Unchanged(name, fp string) bool {
	prev, ok := fc.cache.Get(name)
	return ok && prev == fp
}

// Store records fp as the fingerprint of name.
func (fc *FingerprintCache) Store(name, fp string) {
	fc.cache.Add(name, fp)
}

// Forget drops name so its next build always runs.
func (fc *FingerprintCache) Forget(name string) {
	fc.cache.Remove(name)
}

// Len returns the number of stored fingerprints.
func (fc *FingerprintCache) Len() int {
	return fc.cache.Len()
}

// Fingerprint hashes every input file of c together with salt, which
// carries inputs shared across components such as the demo index.
// Missing optional files hash as absent.
func Fingerprint(c project.Component, salt string) (string, error) {
	h := sha256.New()
	h.Write([]byte(salt))
	files := append([]string{c.Filename, c.TypesFile, c.TestFile}, c.StyleFiles...)
	for _, f := range files {
		h.Write([]byte{0})
		h.Write([]byte(f))
		if f == "" {
			continue
		}
		err := hashFile(h, f)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", err
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// hashFile writes a presence marker and the contents of path to w. The
// file is mapped read-only; when mapping fails it is streamed instead.
func hashFile(w io.Writer, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat file %q: %w", path, err)
	}
	w.Write([]byte{1})
	// Zero-length files cannot be mapped.
	if stat.Size() == 0 {
		return nil
	}

	data, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		_, err = io.Copy(w, file)
		return err
	}
	w.Write(data)
	return data.Unmap()
}

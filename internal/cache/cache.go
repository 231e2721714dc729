// Package cache persists the last fetched manifest text between runs.
package cache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/jacksparrot/jsp/internal/messages"
)

// ManifestKey is the key the raw manifest text is stored under.
const ManifestKey = "JACKSPARROT_PACKAGES"

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// Store is a string key-value persistence surface.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)
	// Set stores value under key, replacing any previous value.
	Set(key string, value string) error
}

var (
	osCreateTemp = os.CreateTemp
	osRename     = os.Rename
)

// FileStore keeps one file per key inside a directory.
type FileStore struct {
	dir string
}

// NewFileStore returns a store rooted at dir. The directory is created on first write.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Dir returns the directory backing the store.
func (s *FileStore) Dir() string {
	return s.dir
}

// Get reads the file for key. A missing file is reported as absent, not as an error.
func (s *FileStore) Get(key string) (string, bool, error) {
	path, err := s.pathFor(key)
	if err != nil {
		return "", false, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf(messages.CacheReadFmt, path, err)
	}
	return string(data), true, nil
}

// Set writes value for key atomically while holding the key's lock file.
func (s *FileStore) Set(key string, value string) error {
	path, err := s.pathFor(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf(messages.CacheCreateDirFmt, s.dir, err)
	}
	return withKeyLock(path, func() error {
		return writeFileAtomic(path, []byte(value))
	})
}

func (s *FileStore) pathFor(key string) (string, error) {
	if s.dir == "" {
		return "", errors.New(messages.CacheDirRequired)
	}
	if !keyPattern.MatchString(key) {
		return "", fmt.Errorf(messages.CacheInvalidKeyFmt, key)
	}
	return filepath.Join(s.dir, key), nil
}

// writeFileAtomic writes data to a temp file in the target directory and renames it into place.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := osCreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf(messages.CacheCreateTempFmt, err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf(messages.CacheWriteFmt, path, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf(messages.CacheWriteFmt, path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf(messages.CacheWriteFmt, path, err)
	}
	if err := osRename(tmpName, path); err != nil {
		return fmt.Errorf(messages.CacheWriteFmt, path, err)
	}
	committed = true
	return nil
}

// MemoryStore is an in-process Store. It is safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get returns the stored value for key.
func (s *MemoryStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	return value, ok, nil
}

// Set stores value under key.
func (s *MemoryStore) Set(key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

package storage

import (
	"os"
	"path/filepath"
	"strings"
)

// FileStore persists each key as a JSON file under dir, the same way the
// CLI keeps credentials under the user's home directory.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory (0700) if needed. An empty dir places
// the store under ~/.htfs.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".htfs")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the backing directory.
func (f *FileStore) Dir() string {
	return f.dir
}

func (f *FileStore) path(key string) string {
	// Keys are flat identifiers; guard against path separators anyway.
	safe := strings.ReplaceAll(key, string(os.PathSeparator), "_")
	return filepath.Join(f.dir, safe+".json")
}

func (f *FileStore) Get(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

func (f *FileStore) Set(key string, value []byte) error {
	return os.WriteFile(f.path(key), value, 0600)
}

func (f *FileStore) Remove(key string) error {
	if err := os.Remove(f.path(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

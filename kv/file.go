package kv

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	fileSuffix   = ".kv"
	hashedSuffix = ".kvh"

	// maxEncodedName keeps names, plus the temp suffix, under the common
	// 255 byte file name limit.
	maxEncodedName = 200
)

// FileStore keeps one file per key in a directory.
//
// Writes go to a temporary file that is renamed over the target, so a reader
// never observes a partially written value. Keys whose encoded name would be
// too long are stored under the sha256 of the key, with the key itself on the
// first line of the file.
type FileStore struct {
	dir string
}

// NewFileStore creates dir if needed and returns a store rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("kv: file store directory is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("kv: create store directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the root directory.
func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	path, hashed := s.path(key)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("kv: read %q: %w", key, err)
	}
	if !hashed {
		return string(data), true, nil
	}
	stored, value, ok := strings.Cut(string(data), "\n")
	if !ok || stored != key {
		return "", false, nil
	}
	return value, true, nil
}

func (s *FileStore) Set(ctx context.Context, key, value string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	path, hashed := s.path(key)
	if hashed {
		value = key + "\n" + value
	}
	// #nosec G404 -- temp file suffix only needs to avoid collisions.
	tmp := fmt.Sprintf("%s.tmp.%d", path, rand.Int64())
	if err := os.WriteFile(tmp, []byte(value), 0o600); err != nil {
		return fmt.Errorf("kv: write %q: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("kv: commit %q: %w", key, err)
	}
	return nil
}

func (s *FileStore) Remove(_ context.Context, key string) error {
	path, _ := s.path(key)
	err := os.Remove(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("kv: remove %q: %w", key, err)
	}
	return nil
}

// Keys decodes every stored file name back into its key. Hashed files are
// read for their key header.
func (s *FileStore) Keys(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("kv: list store: %w", err)
	}
	keys := make([]string, 0, len(dirEntries))
	for _, e := range dirEntries {
		if e.IsDir() {
			continue
		}
		if name, ok := strings.CutSuffix(e.Name(), fileSuffix); ok {
			raw, err := base64.RawURLEncoding.DecodeString(name)
			if err != nil {
				continue
			}
			keys = append(keys, string(raw))
			continue
		}
		if strings.HasSuffix(e.Name(), hashedSuffix) {
			if key, ok := s.readHeader(filepath.Join(s.dir, e.Name())); ok {
				keys = append(keys, key)
			}
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *FileStore) MultiRemove(ctx context.Context, keys []string) error {
	var errs []error
	for _, k := range keys {
		if err := s.Remove(ctx, k); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// path maps a key to a file name that is safe on every filesystem. hashed
// reports whether the file carries a key header.
func (s *FileStore) path(key string) (path string, hashed bool) {
	name := base64.RawURLEncoding.EncodeToString([]byte(key))
	if len(name) <= maxEncodedName {
		return filepath.Join(s.dir, name+fileSuffix), false
	}
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(s.dir, hex.EncodeToString(sum[:])+hashedSuffix), true
}

func (s *FileStore) readHeader(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	key, _, ok := strings.Cut(string(data), "\n")
	return key, ok
}

// Ensure FileStore implements Store
var _ Store = (*FileStore)(nil)

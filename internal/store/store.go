// Package store persists integers as raw two's complement blobs, one file
// per name.
package store

import (
	"math/big"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/smallyu/go-elgamal/internal/codec"
	"github.com/smallyu/go-elgamal/pkg/elg"
)

// FileStore keeps each value in a file named after it inside Dir.
type FileStore struct {
	Dir string
}

var _ elg.Store = (*FileStore)(nil)

// NewFileStore returns a store rooted at dir ("" means the working directory).
func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

// Path returns the file backing name.
func (s *FileStore) Path(name string) string {
	return filepath.Join(s.Dir, name)
}

// Load reads and decodes the value saved under name.
func (s *FileStore) Load(name string) (*big.Int, error) {
	path := s.Path(name)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, elg.NewStoreError("load", name, path, err)
	}
	v, err := codec.FromBytes(data)
	if err != nil {
		return nil, elg.NewStoreError("load", name, path, err)
	}
	return v, nil
}

// Save encodes v and writes it under name with mode 0644.
func (s *FileStore) Save(name string, v *big.Int) error {
	path := s.Path(name)
	if v == nil {
		return elg.NewStoreError("save", name, path, errors.New("nil value"))
	}
	if s.Dir != "" {
		if err := os.MkdirAll(s.Dir, 0755); err != nil {
			return elg.NewStoreError("save", name, path, err)
		}
	}
	if err := os.WriteFile(path, codec.ToBytes(v), 0644); err != nil {
		return elg.NewStoreError("save", name, path, err)
	}
	return nil
}

// MemStore is an in-memory Store. Values are kept in encoded form so that it
// behaves like FileStore.
type MemStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

var _ elg.Store = (*MemStore)(nil)

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string][]byte)}
}

// Load returns the value saved under name.
func (s *MemStore) Load(name string) (*big.Int, error) {
	s.mu.Lock()
	raw, ok := s.data[name]
	s.mu.Unlock()
	if !ok {
		return nil, elg.NewStoreError("load", name, "", os.ErrNotExist)
	}
	v, err := codec.FromBytes(raw)
	if err != nil {
		return nil, elg.NewStoreError("load", name, "", err)
	}
	return v, nil
}

// Save stores v under name.
func (s *MemStore) Save(name string, v *big.Int) error {
	if v == nil {
		return elg.NewStoreError("save", name, "", errors.New("nil value"))
	}
	s.mu.Lock()
	s.data[name] = codec.ToBytes(v)
	s.mu.Unlock()
	return nil
}

// SaveRaw stores raw bytes under name without encoding them.
func (s *MemStore) SaveRaw(name string, raw []byte) {
	s.mu.Lock()
	s.data[name] = append([]byte(nil), raw...)
	s.mu.Unlock()
}

// Raw returns the encoded bytes saved under name.
func (s *MemStore) Raw(name string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.data[name]
	return append([]byte(nil), raw...), ok
}

package storage

import (
	"fmt"
	"os"

	"github.com/peterbourgon/diskv/v3"

	"github.com/julianstephens/tinywins/internal/constants"
)

// DiskvStore keeps each blob in its own file under a base directory.
type DiskvStore struct {
	basePath string
	d        *diskv.Diskv
}

func NewDiskvStore(basePath string) *DiskvStore {
	return &DiskvStore{
		basePath: basePath,
	}
}

func (s *DiskvStore) open() {
	s.d = diskv.New(diskv.Options{
		BasePath:          s.basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	})
}

func (s *DiskvStore) Init() error {
	if err := os.MkdirAll(s.basePath, 0700); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}
	s.open()
	return nil
}

func (s *DiskvStore) Load() error {
	if s.d != nil {
		return nil
	}
	if _, err := os.Stat(s.basePath); os.IsNotExist(err) {
		return ErrNotInitialized
	}
	s.open()
	return nil
}

func (s *DiskvStore) Close() error {
	return nil
}

func (s *DiskvStore) Get(key string) ([]byte, error) {
	if s.d == nil {
		return nil, ErrNotInitialized
	}
	if !s.d.Has(key) {
		return nil, nil
	}
	return s.d.Read(key)
}

func (s *DiskvStore) Set(key string, value []byte) error {
	if s.d == nil {
		return ErrNotInitialized
	}
	return s.d.Write(key, value)
}

func (s *DiskvStore) Backend() string {
	return constants.BackendDiskv
}

func (s *DiskvStore) GetConfigPath() string {
	return s.basePath
}

func keyToPathTransform(key string) *diskv.PathKey {
	return &diskv.PathKey{
		Path:     []string{},
		FileName: key,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return pathKey.FileName
}

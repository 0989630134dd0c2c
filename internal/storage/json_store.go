package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/julianstephens/tinywins/internal/constants"
)

type fileContents struct {
	Version int               `json:"version"`
	Blobs   map[string]string `json:"blobs"`
}

// JSONStore keeps every blob in one JSON file, rewritten atomically on each Set.
type JSONStore struct {
	path     string
	mu       sync.Mutex
	contents *fileContents
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{
		path: path,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.contents = &fileContents{Version: 1, Blobs: map[string]string{}}
	return s.save()
}

func (s *JSONStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	contents := &fileContents{}
	if err := json.Unmarshal(data, contents); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if contents.Blobs == nil {
		contents.Blobs = map[string]string{}
	}
	s.contents = contents
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.contents == nil {
		return nil, ErrNotInitialized
	}
	v, ok := s.contents.Blobs[key]
	if !ok {
		return nil, nil
	}
	return []byte(v), nil
}

func (s *JSONStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.contents == nil {
		return ErrNotInitialized
	}
	s.contents.Blobs[key] = string(value)
	return s.save()
}

// save writes to a temp file and renames it over the target.
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.contents, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace storage: %w", err)
	}
	return nil
}

func (s *JSONStore) Backend() string {
	return constants.BackendFile
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

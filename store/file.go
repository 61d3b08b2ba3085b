package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// File is a Store persisting all keys in a single YAML document on disk.
// Each watchlist key maps to its serialized state blob, so one store file
// can hold several watchlists. Reads and writes go through the file on
// every call; the file is the source of truth, not this struct.
type File struct {
	mu   sync.Mutex
	path string
}

// NewFile creates a file store at the given path. The file and its parent
// directory are created lazily on the first Save.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the location of the backing file.
func (f *File) Path() string {
	return f.path
}

// Load reads the blob stored at key. A missing store file is an empty store.
func (f *File) Load(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	blobs, err := f.read()
	if err != nil {
		return "", false, err
	}

	value, ok := blobs[key]
	return value, ok, nil
}

// Save writes the blob at key, preserving all other keys in the file.
func (f *File) Save(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	blobs, err := f.read()
	if err != nil {
		return err
	}
	blobs[key] = value

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}

	data, err := yaml.Marshal(blobs)
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}

	if err := os.WriteFile(f.path, data, 0644); err != nil {
		return fmt.Errorf("write store file: %w", err)
	}

	return nil
}

// read loads the whole key-to-blob document from disk.
func (f *File) read() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}

	var blobs map[string]string
	if err := yaml.Unmarshal(data, &blobs); err != nil {
		return nil, fmt.Errorf("parse store file: %w", err)
	}

	if blobs == nil {
		blobs = make(map[string]string)
	}

	return blobs, nil
}

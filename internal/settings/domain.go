// Package settings stores named key-value documents ("domains") outside the
// relational database, one JSON file per domain.
package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/natefinch/atomic"
	"github.com/tailscale/hujson"
)

var errInvalidDomain = errors.New("invalid domain name")

// FileStore keeps each domain in <dir>/<domain>. Files may carry comments and
// trailing commas (JSONC); they are rewritten as plain JSON.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore returns a store rooted at dir. The directory is created on first write.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Get returns the options stored for domain. A missing domain yields an empty map.
func (s *FileStore) Get(domain string) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.read(domain)
}

// Set replaces the options stored for domain.
func (s *FileStore) Set(domain string, opts map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.write(domain, opts)
}

// Update runs fn on the current options of domain and stores the result. The
// read and the write happen under one lock.
func (s *FileStore) Update(domain string, fn func(opts map[string]any)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	opts, err := s.read(domain)
	if err != nil {
		return err
	}
	fn(opts)

	return s.write(domain, opts)
}

func (s *FileStore) path(domain string) (string, error) {
	if domain == "" || domain != filepath.Base(domain) || strings.HasPrefix(domain, ".") {
		return "", fmt.Errorf("%w: %q", errInvalidDomain, domain)
	}
	return filepath.Join(s.dir, domain), nil
}

func (s *FileStore) read(domain string) (map[string]any, error) {
	path, err := s.path(domain)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("cannot read domain %s: %w", domain, err)
	}

	opts, err := parseDomain(data)
	if err != nil {
		return nil, fmt.Errorf("invalid domain %s: %w", domain, err)
	}

	return opts, nil
}

func (s *FileStore) write(domain string, opts map[string]any) error {
	path, err := s.path(domain)
	if err != nil {
		return err
	}

	if opts == nil {
		opts = map[string]any{}
	}
	data, err := json.MarshalIndent(opts, "", "  ")
	if err != nil {
		return fmt.Errorf("encode domain %s: %w", domain, err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write domain %s: %w", domain, err)
	}

	return nil
}

func parseDomain(data []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]any{}, nil
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("invalid JSONC: %w", err)
	}

	opts := map[string]any{}
	if err := json.Unmarshal(standardized, &opts); err != nil {
		return nil, err
	}

	return opts, nil
}

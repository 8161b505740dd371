package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/spf13/afero"
)

// FileStore keeps one namespace as a JSON object file, rewritten atomically on
// every change.
type FileStore struct {
	mu     sync.RWMutex
	fs     afero.Fs
	path   string
	values map[string]string
	closed bool
}

// NewFileStore opens <dir>/<namespace>.json on fsys, creating dir if needed.
// A corrupt file is logged and treated as empty.
func NewFileStore(fsys afero.Fs, dir, namespace string) (*FileStore, error) {
	namespace, err := validNamespace(namespace)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create preferences dir: %w", err)
	}

	s := &FileStore{
		fs:     fsys,
		path:   filepath.Join(dir, namespace+".json"),
		values: make(map[string]string),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the backing file location.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Get(key string) (string, bool, error) {
	key, err := validKey(key)
	if err != nil {
		return "", false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return "", false, ErrClosed
	}
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *FileStore) Put(key, value string) error {
	key, err := validKey(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	prev, existed := s.values[key]
	s.values[key] = value
	if err := s.saveLocked(); err != nil {
		if existed {
			s.values[key] = prev
		} else {
			delete(s.values, key)
		}
		return err
	}
	return nil
}

func (s *FileStore) Remove(key string) error {
	key, err := validKey(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	prev, existed := s.values[key]
	if !existed {
		return nil
	}
	delete(s.values, key)
	if err := s.saveLocked(); err != nil {
		s.values[key] = prev
		return err
	}
	return nil
}

func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *FileStore) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read preferences: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var values map[string]string
	if err := json.Unmarshal(data, &values); err != nil {
		log.Printf("[prefs] ignoring unreadable %s: %v", s.path, err)
		return nil
	}
	if values != nil {
		s.values = values
	}
	return nil
}

func (s *FileStore) saveLocked() error {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}

	tmp := s.path + ".tmp"
	file, err := s.fs.Create(tmp)
	if err != nil {
		return fmt.Errorf("create preferences temp file: %w", err)
	}

	if _, err := file.Write(data); err != nil {
		file.Close()
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("write preferences: %w", err)
	}

	if err := file.Sync(); err != nil {
		file.Close()
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("sync preferences: %w", err)
	}

	if err := file.Close(); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("close preferences temp file: %w", err)
	}

	if err := s.fs.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace preferences file: %w", err)
	}

	return nil
}

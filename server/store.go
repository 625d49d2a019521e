package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/etnz/hisab"
)

// MemoryStore keeps the collections in memory.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[hisab.Module]json.RawMessage
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[hisab.Module]json.RawMessage)}
}

func (s *MemoryStore) Snapshot(context.Context) (hisab.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state := hisab.NewState()
	for m, raw := range s.data {
		if err := state.SetRaw(m, raw); err != nil {
			return hisab.State{}, err
		}
	}
	return state, nil
}

func (s *MemoryStore) Replace(_ context.Context, module hisab.Module, data json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[module] = slices.Clone(data)
	return nil
}

// FileStore keeps the collections in a single JSON file.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a store in the file at path. The file is created on first write.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Snapshot(context.Context) (hisab.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileStore) Replace(_ context.Context, module hisab.Module, data json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, err := s.load()
	if err != nil {
		return err
	}
	if err := state.SetRaw(module, data); err != nil {
		return err
	}
	content, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal data: %w", err)
	}
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, append(content, '\n'), 0o644); err != nil {
		return fmt.Errorf("write temp data file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("replace data file: %w", err)
	}
	return nil
}

func (s *FileStore) load() (hisab.State, error) {
	content, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return hisab.NewState(), nil
	}
	if err != nil {
		return hisab.State{}, fmt.Errorf("read data file: %w", err)
	}
	state, err := hisab.DecodeState(content)
	if err != nil {
		return hisab.State{}, fmt.Errorf("parse data file %s: %w", s.path, err)
	}
	return state, nil
}

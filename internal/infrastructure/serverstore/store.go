package serverstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"ethereum_server/internal/app/port"
	"ethereum_server/internal/domain/entity"

	"gopkg.in/yaml.v3"
)

// YAMLStore implements port.ServerStore with an in-memory map persisted to a YAML file.
// An empty path keeps the store in memory only.
type YAMLStore struct {
	filePath   string
	mu         sync.RWMutex
	servers    map[string]entity.ServerRecord
	loggerInfo func(msg string, args ...any)
}

type serversFile struct {
	Servers []entity.ServerRecord `yaml:"servers"`
}

// NewYAMLStore loads servers from filePath. A missing file yields an empty store.
func NewYAMLStore(filePath string, loggerInfo func(msg string, args ...any)) (*YAMLStore, error) {
	s := &YAMLStore{
		filePath:   filePath,
		servers:    make(map[string]entity.ServerRecord),
		loggerInfo: loggerInfo,
	}
	if filePath == "" {
		return s, nil
	}

	data, err := os.ReadFile(filePath)
	if errors.Is(err, os.ErrNotExist) {
		s.logInfo("Server file not found, starting with an empty store", "path", filePath)
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read server file %s: %w", filePath, err)
	}

	var f serversFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to unmarshal server file %s: %w", filePath, err)
	}
	for i, r := range f.Servers {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("server #%d in %s: %w", i, filePath, err)
		}
		if _, dup := s.servers[r.ID]; dup {
			return nil, fmt.Errorf("server %q in %s: %w", r.ID, filePath, entity.ErrServerExists)
		}
		s.servers[r.ID] = r
	}

	s.logInfo("Servers loaded successfully from file", "count", len(s.servers), "path", filePath)
	return s, nil
}

var _ port.ServerStore = (*YAMLStore)(nil)

// List returns all servers ordered by id.
func (s *YAMLStore) List() []entity.ServerRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedLocked()
}

// Get returns the server with the given id.
func (s *YAMLStore) Get(id string) (entity.ServerRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.servers[id]
	if !ok {
		return entity.ServerRecord{}, fmt.Errorf("server %q: %w", id, entity.ErrServerNotFound)
	}
	return r, nil
}

// Create adds a new server. The id must not be in use.
func (s *YAMLStore) Create(record entity.ServerRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.servers[record.ID]; exists {
		return fmt.Errorf("server %q: %w", record.ID, entity.ErrServerExists)
	}
	s.servers[record.ID] = record
	if err := s.persistLocked(); err != nil {
		delete(s.servers, record.ID)
		return err
	}
	s.logInfo("Server created", "id", record.ID)
	return nil
}

// Update replaces an existing server, keyed by its id.
func (s *YAMLStore) Update(record entity.ServerRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	previous, exists := s.servers[record.ID]
	if !exists {
		return fmt.Errorf("server %q: %w", record.ID, entity.ErrServerNotFound)
	}
	s.servers[record.ID] = record
	if err := s.persistLocked(); err != nil {
		s.servers[record.ID] = previous
		return err
	}
	s.logInfo("Server updated", "id", record.ID)
	return nil
}

// Delete removes a server.
func (s *YAMLStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	previous, exists := s.servers[id]
	if !exists {
		return fmt.Errorf("server %q: %w", id, entity.ErrServerNotFound)
	}
	delete(s.servers, id)
	if err := s.persistLocked(); err != nil {
		s.servers[id] = previous
		return err
	}
	s.logInfo("Server deleted", "id", id)
	return nil
}

func (s *YAMLStore) sortedLocked() []entity.ServerRecord {
	out := make([]entity.ServerRecord, 0, len(s.servers))
	for _, r := range s.servers {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// persistLocked атомарно перезаписывает файл через временный файл и rename.
// Вызывается под s.mu.
func (s *YAMLStore) persistLocked() error {
	if s.filePath == "" {
		return nil
	}
	data, err := yaml.Marshal(serversFile{Servers: s.sortedLocked()})
	if err != nil {
		return fmt.Errorf("failed to marshal servers: %w", err)
	}
	if dir := filepath.Dir(s.filePath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", s.filePath, err)
		}
	}
	// rename в пределах одного каталога атомарен
	tmp := s.filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write server file %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.filePath); err != nil {
		return fmt.Errorf("failed to replace server file %s: %w", s.filePath, err)
	}
	return nil
}

func (s *YAMLStore) logInfo(msg string, args ...any) {
	if s.loggerInfo != nil {
		s.loggerInfo(msg, args...)
	}
}

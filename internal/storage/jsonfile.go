package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mabdullah/linkedin-seo-poster/internal/models"
	"github.com/sirupsen/logrus"
)

// JSONFileStore keeps all audit records as a single pretty-printed JSON array
// on disk. Appends are read-modify-write over the whole file, so the store
// must remain single-writer; the mutex guards against overlapping calls from
// this process.
type JSONFileStore struct {
	filePath string
	mu       sync.Mutex
}

// Ensure JSONFileStore implements RecordStore
var _ RecordStore = (*JSONFileStore)(nil)

// NewJSONFileStore creates a file-backed record store, creating parent
// directories as needed. A missing file reads as an empty sequence.
func NewJSONFileStore(filePath string) (*JSONFileStore, error) {
	if filePath == "" {
		return nil, fmt.Errorf("records file path is required")
	}

	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create records directory: %w", err)
		}
	}

	return &JSONFileStore{filePath: filePath}, nil
}

// Append reads the existing records, appends the new one and rewrites the file
func (s *JSONFileStore) Append(record models.PostRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return err
	}

	records = append(records, record)

	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}

	if err := os.WriteFile(s.filePath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write records file: %w", err)
	}

	logrus.Debugf("Appended record %s to %s (%d total)", record.ID, s.filePath, len(records))
	return nil
}

// All returns every stored record in append order
func (s *JSONFileStore) All() ([]models.PostRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Count returns the number of stored records
func (s *JSONFileStore) Count() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

func (s *JSONFileStore) load() ([]models.PostRecord, error) {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.PostRecord{}, nil
		}
		return nil, fmt.Errorf("failed to read records file: %w", err)
	}

	var records []models.PostRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse records file: %w", err)
	}

	return records, nil
}

package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/gcbaptista/go-survey-similarity/internal/persistence"
	"github.com/gcbaptista/go-survey-similarity/model"
)

// JSONFileStore keeps every submission in a single JSON array file, the
// layout of survey_responses.json. Each append rewrites the whole file.
// It implements the services.CandidateStore interface.
type JSONFileStore struct {
	mu     sync.Mutex
	path   string
	logger *zap.Logger
}

// NewJSONFileStore creates a store backed by the file at path. The file is
// created on the first append.
func NewJSONFileStore(path string, logger *zap.Logger) *JSONFileStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JSONFileStore{path: path, logger: logger}
}

// Path returns the backing file location.
func (s *JSONFileStore) Path() string {
	return s.path
}

// LoadAll reads every stored record. A missing file is an empty population.
func (s *JSONFileStore) LoadAll(_ context.Context) ([]model.CandidateRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.readUnsafe()
}

// Append adds record to the end of the file.
func (s *JSONFileStore) Append(ctx context.Context, record model.CandidateRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readUnsafe()
	if err != nil {
		return err
	}
	records = append(records, record)

	if err := persistence.SaveJSON(s.path, records); err != nil {
		return fmt.Errorf("failed to append candidate '%s': %w", record.Name, err)
	}
	s.logger.Debug("responses appended to file",
		zap.String("path", s.path),
		zap.String("candidate", record.Name),
		zap.Int("total", len(records)),
	)
	return nil
}

// readUnsafe assumes the caller holds s.mu.
func (s *JSONFileStore) readUnsafe() ([]model.CandidateRecord, error) {
	var records []model.CandidateRecord
	err := persistence.LoadJSON(s.path, &records)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Info("responses file not found, starting with an empty population", zap.String("path", s.path))
		return []model.CandidateRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load candidates from %s: %w", s.path, err)
	}
	if records == nil {
		records = []model.CandidateRecord{}
	}
	return records, nil
}

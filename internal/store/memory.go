package store

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"atsscore/internal/errors"
	"atsscore/internal/types"

	"github.com/google/uuid"
)

// MemoryRepository keeps documents in process memory
type MemoryRepository struct {
	mu      sync.RWMutex
	resumes map[string][]byte
	scores  map[string][]types.ScoreRecord
}

var _ ResumeRepository = (*MemoryRepository)(nil)

// NewMemoryRepository returns an empty repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		resumes: make(map[string][]byte),
		scores:  make(map[string][]types.ScoreRecord),
	}
}

// SaveResume stores a JSON copy of doc so later mutation by the caller is not visible
func (m *MemoryRepository) SaveResume(_ context.Context, doc map[string]any) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", errors.NewValidationError(errors.ErrCodeInvalidResume, "resume is not JSON serialisable", err)
	}

	id := uuid.NewString()
	m.mu.Lock()
	m.resumes[id] = data
	m.mu.Unlock()
	return id, nil
}

func (m *MemoryRepository) GetResume(_ context.Context, id string) (map[string]any, error) {
	id, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	data, ok := m.resumes[id]
	m.mu.RUnlock()
	if !ok {
		return nil, notFound(id)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStorageFailed, "stored resume is corrupt", err)
	}
	return doc, nil
}

func (m *MemoryRepository) SaveScore(_ context.Context, record types.ScoreRecord) error {
	id, err := ParseID(record.ResumeID)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.resumes[id]; !ok {
		return notFound(id)
	}
	record.ResumeID = id
	m.scores[id] = append(m.scores[id], record)
	return nil
}

func (m *MemoryRepository) ScoreHistory(_ context.Context, resumeID string, limit int) ([]types.ScoreRecord, error) {
	id, err := ParseID(resumeID)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	history := append([]types.ScoreRecord(nil), m.scores[id]...)
	_, known := m.resumes[id]
	m.mu.RUnlock()
	if !known {
		return nil, notFound(id)
	}

	sort.SliceStable(history, func(i, j int) bool {
		return history[i].ScoredAt.After(history[j].ScoredAt)
	})
	if limit > 0 && len(history) > limit {
		history = history[:limit]
	}
	if history == nil {
		history = []types.ScoreRecord{}
	}
	return history, nil
}

func (m *MemoryRepository) Close() {}

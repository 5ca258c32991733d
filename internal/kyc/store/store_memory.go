package store

import (
	"context"
	"sort"
	"sync"

	"kycgate/internal/kyc/models"
	id "kycgate/pkg/domain"
	"kycgate/pkg/platform/sentinel"
)

type userTypeKey struct {
	userID id.UserID
	t      models.VerificationType
}

// InMemoryStore keeps records in process memory for tests and local runs.
// Records are cloned on the way in and out.
type InMemoryStore struct {
	mu       sync.RWMutex
	records  map[id.RecordID]*models.VerificationRecord
	byUserTy map[userTypeKey]id.RecordID
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		records:  make(map[id.RecordID]*models.VerificationRecord),
		byUserTy: make(map[userTypeKey]id.RecordID),
	}
}

func (s *InMemoryStore) Create(_ context.Context, record *models.VerificationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := userTypeKey{userID: record.UserID, t: record.Type}
	if _, ok := s.byUserTy[key]; ok {
		return sentinel.ErrConflict
	}
	if _, ok := s.records[record.ID]; ok {
		return sentinel.ErrConflict
	}
	s.records[record.ID] = record.Clone()
	s.byUserTy[key] = record.ID
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, recordID id.RecordID) (*models.VerificationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[recordID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return record.Clone(), nil
}

func (s *InMemoryStore) FindByUser(_ context.Context, userID id.UserID) ([]*models.VerificationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.VerificationRecord
	for _, record := range s.records {
		if record.UserID == userID {
			out = append(out, record.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *InMemoryStore) FindByUserAndType(_ context.Context, userID id.UserID, t models.VerificationType) (*models.VerificationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recordID, ok := s.byUserTy[userTypeKey{userID: userID, t: t}]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return s.records[recordID].Clone(), nil
}

func (s *InMemoryStore) Update(_ context.Context, recordID id.RecordID, patch PatchFunc) (*models.VerificationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.records[recordID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}

	working := current.Clone()
	if err := patch(working); err != nil {
		return nil, err
	}
	working.ID = current.ID
	working.UserID = current.UserID
	working.Type = current.Type
	working.CreatedAt = current.CreatedAt

	s.records[recordID] = working
	return working.Clone(), nil
}

var _ Store = (*InMemoryStore)(nil)

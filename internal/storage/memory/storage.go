package memory

import (
	"context"
	"sync"

	"github.com/arcadehub/arcade/internal/model"
	"github.com/arcadehub/arcade/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	profiles map[model.PlayerID]*model.Profile
	records  map[model.SessionID]*model.SessionRecord
	order    []model.SessionID // append order of records
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		profiles: make(map[model.PlayerID]*model.Profile),
		records:  make(map[model.SessionID]*model.SessionRecord),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player profile operations

func (s *Storage) SaveProfile(ctx context.Context, profile *model.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.ID] = profile
	return nil
}

func (s *Storage) GetProfile(ctx context.Context, id model.PlayerID) (*model.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return profile, nil
}

func (s *Storage) ListProfiles(ctx context.Context) ([]*model.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profiles := make([]*model.Profile, 0, len(s.profiles))
	for _, profile := range s.profiles {
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

// Completed-session history operations

func (s *Storage) AppendSessionRecord(ctx context.Context, record *model.SessionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[record.ID]; !ok {
		s.order = append(s.order, record.ID)
	}
	s.records[record.ID] = record
	return nil
}

func (s *Storage) GetSessionRecord(ctx context.Context, id model.SessionID) (*model.SessionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[id]
	if !ok {
		return nil, model.ErrRecordNotFound
	}
	return record, nil
}

func (s *Storage) ListSessionRecords(ctx context.Context) ([]*model.SessionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]*model.SessionRecord, 0, len(s.order))
	for _, id := range s.order {
		records = append(records, s.records[id])
	}
	return records, nil
}

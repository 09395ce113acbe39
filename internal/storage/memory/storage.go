package memory

import (
	"context"
	"sync"

	"github.com/mcoot/fantasy-keepers/internal/model"
	"github.com/mcoot/fantasy-keepers/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	records     map[string]string
	passwordLog []string
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		records: make(map[string]string),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Keeper record operations

func (s *Storage) SaveKeeperRecord(ctx context.Context, team string, blob string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[team] = blob
	return nil
}

func (s *Storage) GetKeeperRecord(ctx context.Context, team string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	blob, ok := s.records[team]
	if !ok {
		return "", model.ErrRecordNotFound
	}
	return blob, nil
}

// Password log operations

func (s *Storage) AppendPasswordLog(ctx context.Context, entry model.PasswordLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.passwordLog = append(s.passwordLog, entry.Line())
	return nil
}

// PasswordLog returns a copy of the logged lines (test inspection only)
func (s *Storage) PasswordLog() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]string, len(s.passwordLog))
	copy(result, s.passwordLog)
	return result
}

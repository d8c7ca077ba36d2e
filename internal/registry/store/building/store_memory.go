package building

import (
	"context"
	"sort"
	"sync"

	"unitbridge/internal/registry/models"
	"unitbridge/pkg/platform/sentinel"
)

// InMemory keeps building bridges in a map keyed by legacy building id, which
// is also the uniqueness key.
type InMemory struct {
	mu        sync.RWMutex
	buildings map[int64]*models.Building
}

func NewInMemory() *InMemory {
	return &InMemory{buildings: make(map[int64]*models.Building)}
}

// Create inserts b or returns sentinel.ErrAlreadyUsed when the legacy id exists.
func (s *InMemory) Create(_ context.Context, b *models.Building) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.buildings[b.LegacyBuildingID]; ok {
		return sentinel.ErrAlreadyUsed
	}
	cp := *b
	s.buildings[b.LegacyBuildingID] = &cp
	return nil
}

func (s *InMemory) FindByLegacyID(_ context.Context, legacyBuildingID int64) (*models.Building, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.buildings[legacyBuildingID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

// ListByAdmin returns the admin's buildings ordered by legacy building id.
func (s *InMemory) ListByAdmin(_ context.Context, legacyAdminID int64) ([]*models.Building, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Building, 0)
	for _, b := range s.buildings {
		if b.LegacyAdminID == legacyAdminID {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LegacyBuildingID < out[j].LegacyBuildingID })
	return out, nil
}

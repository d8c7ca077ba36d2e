package unit

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"unitbridge/internal/registry/models"
	"unitbridge/pkg/pagination"
	"unitbridge/pkg/platform/sentinel"
)

// BuildingLookup resolves the building a unit belongs to for list joins.
type BuildingLookup interface {
	FindByLegacyID(ctx context.Context, legacyBuildingID int64) (*models.Building, error)
}

type numberKey struct {
	legacyBuildingID int64
	normalized       string
}

// InMemory stores units in maps with a secondary index on
// (legacy building id, normalized unit number). Row locks are not modelled:
// callers serialize writes through tx.MemoryRunner.
type InMemory struct {
	mu        sync.RWMutex
	units     map[uuid.UUID]*models.Unit
	byNumber  map[numberKey]uuid.UUID
	buildings BuildingLookup
}

func NewInMemory(buildings BuildingLookup) *InMemory {
	return &InMemory{
		units:     make(map[uuid.UUID]*models.Unit),
		byNumber:  make(map[numberKey]uuid.UUID),
		buildings: buildings,
	}
}

// Create inserts u, returning sentinel.ErrAlreadyUsed when the building
// already has a unit with the same normalized number.
func (s *InMemory) Create(_ context.Context, u *models.Unit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := numberKey{u.LegacyBuildingID, u.NormalizedUnitNumber}
	if _, ok := s.byNumber[key]; ok {
		return sentinel.ErrAlreadyUsed
	}
	if _, ok := s.units[u.ID]; ok {
		return sentinel.ErrAlreadyUsed
	}
	cp := *u
	s.units[u.ID] = &cp
	s.byNumber[key] = u.ID
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id uuid.UUID) (*models.Unit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.units[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

// FindByIDForUpdate is FindByID; the in-memory transaction lock already
// excludes concurrent writers.
func (s *InMemory) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Unit, error) {
	return s.FindByID(ctx, id)
}

func (s *InMemory) FindByNumber(_ context.Context, legacyBuildingID int64, normalized string) (*models.Unit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byNumber[numberKey{legacyBuildingID, normalized}]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *s.units[id]
	return &cp, nil
}

// Update replaces the stored unit. A renumbering that collides with another
// unit in the same building returns sentinel.ErrAlreadyUsed and changes
// nothing.
func (s *InMemory) Update(_ context.Context, u *models.Unit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.units[u.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	oldKey := numberKey{existing.LegacyBuildingID, existing.NormalizedUnitNumber}
	newKey := numberKey{existing.LegacyBuildingID, u.NormalizedUnitNumber}
	if newKey != oldKey {
		if _, taken := s.byNumber[newKey]; taken {
			return sentinel.ErrAlreadyUsed
		}
		delete(s.byNumber, oldKey)
		s.byNumber[newKey] = u.ID
	}
	cp := *u
	cp.LegacyBuildingID = existing.LegacyBuildingID
	cp.Status = existing.Status
	cp.CreatedAt = existing.CreatedAt
	s.units[u.ID] = &cp
	return nil
}

// SetStatus changes only the occupancy status of a unit.
func (s *InMemory) SetStatus(_ context.Context, id uuid.UUID, status models.UnitStatus, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.units[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	u.Status = status
	u.UpdatedAt = at
	return nil
}

func (s *InMemory) FindViewByID(ctx context.Context, id uuid.UUID) (*models.UnitView, error) {
	u, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	b, err := s.buildings.FindByLegacyID(ctx, u.LegacyBuildingID)
	if err != nil {
		return nil, err
	}
	return models.NewUnitView(u, b), nil
}

func (s *InMemory) ListByBuilding(ctx context.Context, legacyBuildingID int64, page pagination.Page) ([]*models.UnitView, error) {
	b, err := s.buildings.FindByLegacyID(ctx, legacyBuildingID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return []*models.UnitView{}, nil
		}
		return nil, err
	}
	matched := s.collect(func(u *models.Unit) bool { return u.LegacyBuildingID == legacyBuildingID })
	return s.window(matched, page, func(*models.Unit) (*models.Building, error) { return b, nil })
}

func (s *InMemory) ListByAdmin(ctx context.Context, legacyAdminID int64, page pagination.Page) ([]*models.UnitView, error) {
	owned := make(map[int64]*models.Building)
	all := s.collect(func(*models.Unit) bool { return true })
	matched := all[:0]
	for _, u := range all {
		b, ok := owned[u.LegacyBuildingID]
		if !ok {
			found, err := s.buildings.FindByLegacyID(ctx, u.LegacyBuildingID)
			if err != nil {
				return nil, err
			}
			b = found
			owned[u.LegacyBuildingID] = b
		}
		if b.OwnedBy(legacyAdminID) {
			matched = append(matched, u)
		}
	}
	return s.window(matched, page, func(u *models.Unit) (*models.Building, error) {
		return owned[u.LegacyBuildingID], nil
	})
}

// collect copies matching units ordered by normalized number, then id.
func (s *InMemory) collect(match func(*models.Unit) bool) []*models.Unit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Unit, 0)
	for _, u := range s.units {
		if match(u) {
			cp := *u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].NormalizedUnitNumber != out[j].NormalizedUnitNumber {
			return out[i].NormalizedUnitNumber < out[j].NormalizedUnitNumber
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

func (s *InMemory) window(units []*models.Unit, page pagination.Page, building func(*models.Unit) (*models.Building, error)) ([]*models.UnitView, error) {
	start, end := page.Window(len(units))
	views := make([]*models.UnitView, 0, end-start)
	for _, u := range units[start:end] {
		b, err := building(u)
		if err != nil {
			return nil, err
		}
		views = append(views, models.NewUnitView(u, b))
	}
	return views, nil
}

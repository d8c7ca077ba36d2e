package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"unitbridge/internal/occupancy/models"
	registrymodels "unitbridge/internal/registry/models"
	"unitbridge/pkg/pagination"
	"unitbridge/pkg/platform/sentinel"
)

// UnitLookup resolves unit display fields for occupancy views.
type UnitLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*registrymodels.Unit, error)
}

// InMemory keeps every occupancy plus indexes of the active ones by unit and
// by tenant. The indexes play the role of the partial unique indexes.
type InMemory struct {
	mu             sync.RWMutex
	occupancies    map[uuid.UUID]*models.Occupancy
	activeByUnit   map[uuid.UUID]uuid.UUID
	activeByTenant map[int64]uuid.UUID
	units          UnitLookup
}

func NewInMemory(units UnitLookup) *InMemory {
	return &InMemory{
		occupancies:    make(map[uuid.UUID]*models.Occupancy),
		activeByUnit:   make(map[uuid.UUID]uuid.UUID),
		activeByTenant: make(map[int64]uuid.UUID),
		units:          units,
	}
}

// Create inserts an active occupancy. It fails with
// ErrUnitHasActiveOccupancy or ErrTenantHasActiveOccupancy when either side is
// already occupied.
func (s *InMemory) Create(_ context.Context, o *models.Occupancy) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.activeByUnit[o.UnitID]; ok {
		return ErrUnitHasActiveOccupancy
	}
	if _, ok := s.activeByTenant[o.LegacyTenantID]; ok {
		return ErrTenantHasActiveOccupancy
	}
	cp := *o
	s.occupancies[o.ID] = &cp
	if cp.IsActive() {
		s.activeByUnit[o.UnitID] = o.ID
		s.activeByTenant[o.LegacyTenantID] = o.ID
	}
	return nil
}

func (s *InMemory) FindActiveByUnit(_ context.Context, unitID uuid.UUID) (*models.Occupancy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyOf(s.activeByUnit[unitID])
}

func (s *InMemory) FindActiveByTenant(_ context.Context, legacyTenantID int64) (*models.Occupancy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyOf(s.activeByTenant[legacyTenantID])
}

// FindByIDForUpdate is a plain read; tx.MemoryRunner already serializes
// writers.
func (s *InMemory) FindByIDForUpdate(_ context.Context, id uuid.UUID) (*models.Occupancy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyOf(id)
}

func (s *InMemory) copyOf(id uuid.UUID) (*models.Occupancy, error) {
	o, ok := s.occupancies[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

// End closes an active occupancy. An unknown or already ended occupancy is
// sentinel.ErrNotFound.
func (s *InMemory) End(_ context.Context, id uuid.UUID, endDate, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.occupancies[id]
	if !ok || !o.IsActive() {
		return sentinel.ErrNotFound
	}
	end := endDate
	o.EndDate = &end
	o.UpdatedAt = now
	delete(s.activeByUnit, o.UnitID)
	delete(s.activeByTenant, o.LegacyTenantID)
	return nil
}

func (s *InMemory) FindViewByID(ctx context.Context, id uuid.UUID) (*models.OccupancyView, error) {
	s.mu.RLock()
	o, err := s.copyOf(id)
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}
	return s.view(ctx, o)
}

// ListByTenant returns active and ended occupancies, latest start first.
func (s *InMemory) ListByTenant(ctx context.Context, legacyTenantID int64, page pagination.Page) ([]*models.OccupancyView, error) {
	s.mu.RLock()
	matched := make([]*models.Occupancy, 0)
	for _, o := range s.occupancies {
		if o.LegacyTenantID == legacyTenantID {
			cp := *o
			matched = append(matched, &cp)
		}
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].StartDate.Equal(matched[j].StartDate) {
			return matched[i].StartDate.After(matched[j].StartDate)
		}
		return matched[i].ID.String() < matched[j].ID.String()
	})

	start, end := page.Window(len(matched))
	out := make([]*models.OccupancyView, 0, end-start)
	for _, o := range matched[start:end] {
		v, err := s.view(ctx, o)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *InMemory) view(ctx context.Context, o *models.Occupancy) (*models.OccupancyView, error) {
	u, err := s.units.FindByID(ctx, o.UnitID)
	if err != nil {
		return nil, err
	}
	return &models.OccupancyView{
		Occupancy: *o,
		Unit: models.UnitSummary{
			UnitNumber:       u.UnitNumber,
			UnitType:         u.UnitType,
			FloorNumber:      u.FloorNumber,
			LegacyBuildingID: u.LegacyBuildingID,
		},
	}, nil
}

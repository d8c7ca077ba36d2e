package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"unitbridge/internal/occupancy/models"
	registrymodels "unitbridge/internal/registry/models"
	"unitbridge/pkg/pagination"
	"unitbridge/pkg/platform/sentinel"
)

// stubUnits serves fixed units for occupancy views.
type stubUnits map[uuid.UUID]*registrymodels.Unit

func (s stubUnits) FindByID(_ context.Context, id uuid.UUID) (*registrymodels.Unit, error) {
	u, ok := s[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return u, nil
}

type OccupancyStoreSuite struct {
	suite.Suite
	ctx   context.Context
	units stubUnits
	store *InMemory
	unitA uuid.UUID
	unitB uuid.UUID
}

func TestOccupancyStoreSuite(t *testing.T) {
	suite.Run(t, new(OccupancyStoreSuite))
}

func (s *OccupancyStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.unitA, s.unitB = uuid.New(), uuid.New()
	s.units = stubUnits{
		s.unitA: {ID: s.unitA, UnitNumber: "12A", UnitType: "apartment", FloorNumber: 3, LegacyBuildingID: 100},
		s.unitB: {ID: s.unitB, UnitNumber: "7", UnitType: "shop", LegacyBuildingID: 100},
	}
	s.store = NewInMemory(s.units)
}

func (s *OccupancyStoreSuite) occupancy(tenant int64, unitID uuid.UUID, start time.Time) *models.Occupancy {
	o, err := models.NewOccupancy(uuid.New(), tenant, unitID, start, start)
	s.Require().NoError(err)
	return o
}

func (s *OccupancyStoreSuite) TestActiveExclusivity() {
	now := time.Now()
	first := s.occupancy(1, s.unitA, now)
	s.Require().NoError(s.store.Create(s.ctx, first))

	s.Run("unit already occupied", func() {
		err := s.store.Create(s.ctx, s.occupancy(2, s.unitA, now))
		s.Require().ErrorIs(err, ErrUnitHasActiveOccupancy)
		s.Require().ErrorIs(err, sentinel.ErrAlreadyUsed)
	})

	s.Run("tenant already housed", func() {
		err := s.store.Create(s.ctx, s.occupancy(1, s.unitB, now))
		s.Require().ErrorIs(err, ErrTenantHasActiveOccupancy)
	})

	s.Run("ending frees both sides", func() {
		s.Require().NoError(s.store.End(s.ctx, first.ID, now.Add(time.Hour), now.Add(time.Hour)))

		_, err := s.store.FindActiveByUnit(s.ctx, s.unitA)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
		_, err = s.store.FindActiveByTenant(s.ctx, 1)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)

		s.Require().NoError(s.store.Create(s.ctx, s.occupancy(2, s.unitA, now.Add(2*time.Hour))))
	})

	s.Run("ending twice is not found", func() {
		err := s.store.End(s.ctx, first.ID, now, now)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *OccupancyStoreSuite) TestFindActive() {
	o := s.occupancy(5, s.unitB, time.Now())
	s.Require().NoError(s.store.Create(s.ctx, o))

	byUnit, err := s.store.FindActiveByUnit(s.ctx, s.unitB)
	s.Require().NoError(err)
	s.Equal(o.ID, byUnit.ID)

	byTenant, err := s.store.FindActiveByTenant(s.ctx, 5)
	s.Require().NoError(err)
	s.Equal(o.ID, byTenant.ID)

	locked, err := s.store.FindByIDForUpdate(s.ctx, o.ID)
	s.Require().NoError(err)
	s.True(locked.IsActive())
}

func (s *OccupancyStoreSuite) TestListByTenantHistory() {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	older := s.occupancy(9, s.unitA, base)
	s.Require().NoError(s.store.Create(s.ctx, older))
	s.Require().NoError(s.store.End(s.ctx, older.ID, base.AddDate(0, 6, 0), base.AddDate(0, 6, 0)))
	newer := s.occupancy(9, s.unitB, base.AddDate(1, 0, 0))
	s.Require().NoError(s.store.Create(s.ctx, newer))

	got, err := s.store.ListByTenant(s.ctx, 9, pagination.Default())
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal(newer.ID, got[0].ID)
	s.Equal("7", got[0].Unit.UnitNumber)
	s.Equal(older.ID, got[1].ID)
	s.NotNil(got[1].EndDate)
	s.Equal(3, got[1].Unit.FloorNumber)

	page, err := s.store.ListByTenant(s.ctx, 9, pagination.Page{Limit: 1, Offset: 1})
	s.Require().NoError(err)
	s.Require().Len(page, 1)
	s.Equal(older.ID, page[0].ID)
}

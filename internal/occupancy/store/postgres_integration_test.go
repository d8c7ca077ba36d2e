//go:build integration

package store_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"unitbridge/internal/occupancy/models"
	"unitbridge/internal/occupancy/store"
	"unitbridge/internal/platform/postgres"
	registrymodels "unitbridge/internal/registry/models"
	"unitbridge/internal/registry/store/building"
	"unitbridge/internal/registry/store/unit"
	"unitbridge/pkg/pagination"
	"unitbridge/pkg/platform/sentinel"
	"unitbridge/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
	tx       *postgres.TxRunner
	unitIDs  []uuid.UUID
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
	s.tx = postgres.NewTxRunner(s.postgres.DB, 0)
}

func (s *PostgresStoreSuite) SetupTest() {
	ctx := context.Background()
	s.Require().NoError(s.postgres.TruncateTables(ctx, "occupancy_bridges", "unit_bridges", "building_bridges"))

	b, err := registrymodels.NewBuilding(uuid.New(), 100, 1, "Tower", time.Now())
	s.Require().NoError(err)
	s.Require().NoError(building.NewPostgres(s.postgres.DB).Create(ctx, b))

	units := unit.NewPostgres(s.postgres.DB)
	s.unitIDs = nil
	for _, n := range []string{"1", "2"} {
		u, err := registrymodels.NewUnit(uuid.New(), registrymodels.CreateUnitRequest{
			LegacyAdminID: 1, LegacyBuildingID: 100, UnitType: "apartment",
			UnitNumber: n, OwnershipType: registrymodels.OwnershipBuilding,
		}, time.Now())
		s.Require().NoError(err)
		s.Require().NoError(units.Create(ctx, u))
		s.unitIDs = append(s.unitIDs, u.ID)
	}
}

func newOccupancy(tenant int64, unitID uuid.UUID, start time.Time) *models.Occupancy {
	start = start.UTC().Truncate(time.Microsecond)
	o, _ := models.NewOccupancy(uuid.New(), tenant, unitID, start, start)
	return o
}

func (s *PostgresStoreSuite) TestPartialIndexesMapToTypedErrors() {
	ctx := context.Background()
	now := time.Now()
	s.Require().NoError(s.store.Create(ctx, newOccupancy(1, s.unitIDs[0], now)))

	err := s.store.Create(ctx, newOccupancy(2, s.unitIDs[0], now))
	s.Require().ErrorIs(err, store.ErrUnitHasActiveOccupancy)

	err = s.store.Create(ctx, newOccupancy(1, s.unitIDs[1], now))
	s.Require().ErrorIs(err, store.ErrTenantHasActiveOccupancy)
}

func (s *PostgresStoreSuite) TestEndAndHistory() {
	ctx := context.Background()
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	first := newOccupancy(7, s.unitIDs[0], start)
	s.Require().NoError(s.store.Create(ctx, first))

	s.Require().NoError(s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		locked, err := s.store.FindByIDForUpdate(txCtx, first.ID)
		if err != nil {
			return err
		}
		return s.store.End(txCtx, locked.ID, start.AddDate(0, 3, 0), time.Now())
	}))
	s.Require().ErrorIs(s.store.End(ctx, first.ID, start, time.Now()), sentinel.ErrNotFound)

	_, err := s.store.FindActiveByTenant(ctx, 7)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	second := newOccupancy(7, s.unitIDs[1], start.AddDate(1, 0, 0))
	s.Require().NoError(s.store.Create(ctx, second))

	history, err := s.store.ListByTenant(ctx, 7, pagination.Default())
	s.Require().NoError(err)
	s.Require().Len(history, 2)
	s.Equal(second.ID, history[0].ID)
	s.Equal("2", history[0].Unit.UnitNumber)
	s.Equal(first.ID, history[1].ID)
	s.Require().NotNil(history[1].EndDate)
}

// TestConcurrentInsertsForOneUnit verifies the partial unique index admits
// exactly one active occupancy per unit.
func (s *PostgresStoreSuite) TestConcurrentInsertsForOneUnit() {
	ctx := context.Background()
	const goroutines = 25

	var wg sync.WaitGroup
	var successCount atomic.Int32
	var conflictCount atomic.Int32
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(tenant int64) {
			defer wg.Done()
			err := s.store.Create(ctx, newOccupancy(tenant, s.unitIDs[0], time.Now()))
			if err == nil {
				successCount.Add(1)
			} else if errors.Is(err, store.ErrUnitHasActiveOccupancy) {
				conflictCount.Add(1)
			}
		}(int64(100 + i))
	}
	wg.Wait()

	s.Equal(int32(1), successCount.Load())
	s.Equal(int32(goroutines-1), conflictCount.Load())
}

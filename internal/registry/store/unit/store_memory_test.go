package unit

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"unitbridge/internal/registry/models"
	"unitbridge/internal/registry/store/building"
	"unitbridge/pkg/pagination"
	"unitbridge/pkg/platform/sentinel"
)

type UnitStoreSuite struct {
	suite.Suite
	buildings *building.InMemory
	store     *InMemory
	ctx       context.Context
}

func (s *UnitStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.buildings = building.NewInMemory()
	s.store = NewInMemory(s.buildings)

	for _, b := range []struct{ legacyID, adminID int64 }{{100, 1}, {200, 1}, {300, 2}} {
		bb, err := models.NewBuilding(uuid.New(), b.legacyID, b.adminID, "B", time.Now())
		s.Require().NoError(err)
		s.Require().NoError(s.buildings.Create(s.ctx, bb))
	}
}

func TestUnitStoreSuite(t *testing.T) {
	suite.Run(t, new(UnitStoreSuite))
}

func (s *UnitStoreSuite) newUnit(buildingID int64, number string) *models.Unit {
	u, err := models.NewUnit(uuid.New(), models.CreateUnitRequest{
		LegacyAdminID:    1,
		LegacyBuildingID: buildingID,
		UnitType:         "apartment",
		UnitNumber:       number,
		OwnershipType:    models.OwnershipBuilding,
	}, time.Now())
	s.Require().NoError(err)
	return u
}

func (s *UnitStoreSuite) TestCreateAndFind() {
	u := s.newUnit(100, "12A")
	s.Require().NoError(s.store.Create(s.ctx, u))

	s.Run("by id", func() {
		found, err := s.store.FindByID(s.ctx, u.ID)
		s.Require().NoError(err)
		s.Equal("12A", found.UnitNumber)
	})

	s.Run("by normalized number", func() {
		found, err := s.store.FindByNumber(s.ctx, 100, "12a")
		s.Require().NoError(err)
		s.Equal(u.ID, found.ID)

		_, err = s.store.FindByNumber(s.ctx, 200, "12a")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("view joins the building", func() {
		v, err := s.store.FindViewByID(s.ctx, u.ID)
		s.Require().NoError(err)
		s.Equal(int64(1), v.LegacyAdminID)
		s.Equal("B", v.BuildingName)
	})

	s.Run("unknown id", func() {
		_, err := s.store.FindByIDForUpdate(s.ctx, uuid.New())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *UnitStoreSuite) TestNormalizedNumberUniqueness() {
	s.Require().NoError(s.store.Create(s.ctx, s.newUnit(100, "12A")))

	err := s.store.Create(s.ctx, s.newUnit(100, "12 a"))
	s.Require().ErrorIs(err, sentinel.ErrAlreadyUsed)

	s.Require().NoError(s.store.Create(s.ctx, s.newUnit(200, "12A")), "same number in another building is fine")
}

func (s *UnitStoreSuite) TestUpdate() {
	a := s.newUnit(100, "1")
	b := s.newUnit(100, "2")
	s.Require().NoError(s.store.Create(s.ctx, a))
	s.Require().NoError(s.store.Create(s.ctx, b))

	s.Run("renumber into a taken number is rejected", func() {
		clash := *b
		clash.UnitNumber, clash.NormalizedUnitNumber = "1", "1"
		s.Require().ErrorIs(s.store.Update(s.ctx, &clash), sentinel.ErrAlreadyUsed)

		found, err := s.store.FindByNumber(s.ctx, 100, "2")
		s.Require().NoError(err)
		s.Equal(b.ID, found.ID)
	})

	s.Run("renumber frees the old number", func() {
		moved := *b
		moved.UnitNumber, moved.NormalizedUnitNumber = "3", "3"
		s.Require().NoError(s.store.Update(s.ctx, &moved))

		_, err := s.store.FindByNumber(s.ctx, 100, "2")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
		s.Require().NoError(s.store.Create(s.ctx, s.newUnit(100, "2")))
	})

	s.Run("update never touches status", func() {
		s.Require().NoError(s.store.SetStatus(s.ctx, a.ID, models.UnitStatusOccupied, time.Now()))
		stale := *a
		stale.UnitType = "shop"
		s.Require().NoError(s.store.Update(s.ctx, &stale))

		found, err := s.store.FindByID(s.ctx, a.ID)
		s.Require().NoError(err)
		s.Equal("shop", found.UnitType)
		s.Equal(models.UnitStatusOccupied, found.Status)
	})
}

func (s *UnitStoreSuite) TestListing() {
	for _, n := range []string{"B-2", "a 1", "C3"} {
		s.Require().NoError(s.store.Create(s.ctx, s.newUnit(100, n)))
	}
	s.Require().NoError(s.store.Create(s.ctx, s.newUnit(200, "Z9")))
	s.Require().NoError(s.store.Create(s.ctx, s.newUnit(300, "X1")))

	s.Run("by building ordered by normalized number", func() {
		got, err := s.store.ListByBuilding(s.ctx, 100, pagination.Default())
		s.Require().NoError(err)
		s.Require().Len(got, 3)
		s.Equal("a1", got[0].NormalizedUnitNumber)
		s.Equal("b-2", got[1].NormalizedUnitNumber)
		s.Equal("c3", got[2].NormalizedUnitNumber)
	})

	s.Run("by admin spans buildings", func() {
		got, err := s.store.ListByAdmin(s.ctx, 1, pagination.Default())
		s.Require().NoError(err)
		s.Require().Len(got, 4)
		for _, v := range got {
			s.Equal(int64(1), v.LegacyAdminID)
		}
	})

	s.Run("window", func() {
		got, err := s.store.ListByAdmin(s.ctx, 1, pagination.Page{Limit: 2, Offset: 3})
		s.Require().NoError(err)
		s.Require().Len(got, 1)
		s.Equal("z9", got[0].NormalizedUnitNumber)
	})

	s.Run("unknown building lists nothing", func() {
		got, err := s.store.ListByBuilding(s.ctx, 999, pagination.Default())
		s.Require().NoError(err)
		s.Empty(got)
	})
}

package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Registry,Ledger

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/mock/gomock"

	"unitbridge/internal/bridge/service/mocks"
	occupancymodels "unitbridge/internal/occupancy/models"
	registrymodels "unitbridge/internal/registry/models"
	dErrors "unitbridge/pkg/domain-errors"
	"unitbridge/pkg/pagination"
	"unitbridge/pkg/requestcontext"
)

// =============================================================================
// Bridge Facade Test Suite
// =============================================================================
// The facade owns unit resolution for assignments and the mapping from ledger
// outcomes to domain errors. Registry and ledger behavior is covered by their
// own suites; here they are mocked.

type FacadeSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	registry *mocks.MockRegistry
	ledger   *mocks.MockLedger
	spans    *tracetest.SpanRecorder
	service  *Service
	ctx      context.Context
}

func TestFacadeSuite(t *testing.T) {
	suite.Run(t, new(FacadeSuite))
}

func (s *FacadeSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.registry = mocks.NewMockRegistry(s.ctrl)
	s.ledger = mocks.NewMockLedger(s.ctrl)
	s.spans = tracetest.NewSpanRecorder()
	s.service = New(s.registry, s.ledger,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(s.spans))),
	)
	s.ctx = requestcontext.WithRequestID(context.Background(), "req-1")
}

func (s *FacadeSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *FacadeSuite) lastSpan() sdktrace.ReadOnlySpan {
	ended := s.spans.Ended()
	s.Require().NotEmpty(ended)
	return ended[len(ended)-1]
}

func (s *FacadeSuite) TestAssignOccupancy() {
	unit := &registrymodels.Unit{ID: uuid.New(), LegacyBuildingID: 100, NormalizedUnitNumber: "12a"}
	req := AssignRequest{LegacyTenantID: 501, LegacyBuildingID: 100, UnitNumber: "12 A"}

	s.Run("ok returns the occupancy", func() {
		view := &occupancymodels.OccupancyView{Occupancy: occupancymodels.Occupancy{ID: uuid.New(), LegacyTenantID: 501}}
		s.registry.EXPECT().FindUnitByNumber(gomock.Any(), int64(100), "12 A").Return(unit, nil)
		s.ledger.EXPECT().Assign(gomock.Any(), unit.ID, int64(501), time.Time{}).
			Return(occupancymodels.AssignResult{Outcome: occupancymodels.OutcomeOK, Occupancy: view}, nil)

		got, err := s.service.AssignOccupancy(s.ctx, req)
		s.Require().NoError(err)
		s.Equal(view, got)
		s.Equal(codes.Unset, s.lastSpan().Status().Code)
	})

	s.Run("explicit start date is forwarded", func() {
		start := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
		withStart := req
		withStart.StartDate = &start
		s.registry.EXPECT().FindUnitByNumber(gomock.Any(), int64(100), "12 A").Return(unit, nil)
		s.ledger.EXPECT().Assign(gomock.Any(), unit.ID, int64(501), start).
			Return(occupancymodels.AssignResult{Outcome: occupancymodels.OutcomeOK, Occupancy: &occupancymodels.OccupancyView{}}, nil)

		_, err := s.service.AssignOccupancy(s.ctx, withStart)
		s.Require().NoError(err)
	})

	outcomes := []struct {
		name    string
		outcome occupancymodels.Outcome
		code    dErrors.Code
	}{
		{"missing unit is not found", occupancymodels.OutcomeMissingUnit, dErrors.CodeNotFound},
		{"unit occupied is a conflict", occupancymodels.OutcomeUnitOccupied, dErrors.CodeConflict},
		{"tenant occupied is a conflict", occupancymodels.OutcomeTenantOccupied, dErrors.CodeConflict},
	}
	for _, tc := range outcomes {
		s.Run(tc.name, func() {
			s.registry.EXPECT().FindUnitByNumber(gomock.Any(), int64(100), "12 A").Return(unit, nil)
			s.ledger.EXPECT().Assign(gomock.Any(), unit.ID, int64(501), time.Time{}).
				Return(occupancymodels.AssignResult{Outcome: tc.outcome}, nil)

			got, err := s.service.AssignOccupancy(s.ctx, req)
			s.Nil(got)
			s.True(dErrors.HasCode(err, tc.code), "got %v", err)
			s.Equal(codes.Error, s.lastSpan().Status().Code)
		})
	}

	s.Run("unresolvable unit number never reaches the ledger", func() {
		s.registry.EXPECT().FindUnitByNumber(gomock.Any(), int64(100), "12 A").
			Return(nil, dErrors.New(dErrors.CodeNotFound, "unit not found"))

		_, err := s.service.AssignOccupancy(s.ctx, req)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("ledger failure propagates", func() {
		s.registry.EXPECT().FindUnitByNumber(gomock.Any(), int64(100), "12 A").Return(unit, nil)
		s.ledger.EXPECT().Assign(gomock.Any(), unit.ID, int64(501), time.Time{}).
			Return(occupancymodels.AssignResult{}, dErrors.Wrap(errors.New("boom"), dErrors.CodeInternal, "failed to lock unit"))

		_, err := s.service.AssignOccupancy(s.ctx, req)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func (s *FacadeSuite) TestUnassignOccupancy() {
	s.Run("ok returns the ended occupancy", func() {
		end := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
		view := &occupancymodels.OccupancyView{Occupancy: occupancymodels.Occupancy{EndDate: &end}}
		s.ledger.EXPECT().Unassign(gomock.Any(), int64(501), &end).
			Return(occupancymodels.UnassignResult{Outcome: occupancymodels.OutcomeOK, Occupancy: view}, nil)

		got, err := s.service.UnassignOccupancy(s.ctx, UnassignRequest{LegacyTenantID: 501, EndDate: &end})
		s.Require().NoError(err)
		s.Equal(&end, got.EndDate)
	})

	s.Run("no active occupancy is not found", func() {
		s.ledger.EXPECT().Unassign(gomock.Any(), int64(502), nil).
			Return(occupancymodels.UnassignResult{Outcome: occupancymodels.OutcomeNotFound}, nil)

		_, err := s.service.UnassignOccupancy(s.ctx, UnassignRequest{LegacyTenantID: 502})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *FacadeSuite) TestPassThroughs() {
	id := uuid.New()
	page := pagination.Page{Limit: 5}

	s.registry.EXPECT().FindBuilding(gomock.Any(), int64(9)).Return(&registrymodels.Building{LegacyBuildingID: 9}, nil)
	s.registry.EXPECT().ListBuildingsByAdmin(gomock.Any(), int64(7)).Return(nil, nil)
	s.registry.EXPECT().FindUnit(gomock.Any(), id).Return(&registrymodels.UnitView{}, nil)
	s.registry.EXPECT().ListUnitsByAdmin(gomock.Any(), int64(7), page).Return(nil, nil)
	s.registry.EXPECT().ListUnitsByBuilding(gomock.Any(), int64(9), page).Return(nil, nil)
	s.ledger.EXPECT().ListByTenant(gomock.Any(), int64(501), page).Return(nil, nil)

	_, err := s.service.GetBuilding(s.ctx, 9)
	s.Require().NoError(err)
	_, err = s.service.ListBuildingsByAdmin(s.ctx, 7)
	s.Require().NoError(err)
	_, err = s.service.GetUnit(s.ctx, id)
	s.Require().NoError(err)
	_, err = s.service.ListUnitsByAdmin(s.ctx, 7, page)
	s.Require().NoError(err)
	_, err = s.service.ListUnitsByBuilding(s.ctx, 9, page)
	s.Require().NoError(err)
	_, err = s.service.ListOccupanciesByTenant(s.ctx, 501, page)
	s.Require().NoError(err)

	s.Len(s.spans.Ended(), 6)
	for _, span := range s.spans.Ended() {
		found := false
		for _, attr := range span.Attributes() {
			if attr.Key == "request.id" && attr.Value.AsString() == "req-1" {
				found = true
			}
		}
		s.True(found, "span %s carries the request id", span.Name())
	}
}

package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	occupancymodels "unitbridge/internal/occupancy/models"
	registrymodels "unitbridge/internal/registry/models"
	dErrors "unitbridge/pkg/domain-errors"
	"unitbridge/pkg/pagination"
	"unitbridge/pkg/requestcontext"
)

const tracerName = "unitbridge/internal/bridge/service"

// Registry is the building/unit registry used by the facade.
type Registry interface {
	FindBuilding(ctx context.Context, legacyBuildingID int64) (*registrymodels.Building, error)
	ListBuildingsByAdmin(ctx context.Context, legacyAdminID int64) ([]*registrymodels.Building, error)
	CreateUnit(ctx context.Context, req registrymodels.CreateUnitRequest) (*registrymodels.UnitView, error)
	UpdateUnit(ctx context.Context, unitID uuid.UUID, req registrymodels.UpdateUnitRequest) (*registrymodels.UnitView, error)
	FindUnit(ctx context.Context, unitID uuid.UUID) (*registrymodels.UnitView, error)
	FindUnitByNumber(ctx context.Context, legacyBuildingID int64, rawUnitNumber string) (*registrymodels.Unit, error)
	ListUnitsByAdmin(ctx context.Context, legacyAdminID int64, page pagination.Page) ([]*registrymodels.UnitView, error)
	ListUnitsByBuilding(ctx context.Context, legacyBuildingID int64, page pagination.Page) ([]*registrymodels.UnitView, error)
}

// Ledger is the occupancy ledger used by the facade.
type Ledger interface {
	Assign(ctx context.Context, unitID uuid.UUID, legacyTenantID int64, startDate time.Time) (occupancymodels.AssignResult, error)
	Unassign(ctx context.Context, legacyTenantID int64, endDate *time.Time) (occupancymodels.UnassignResult, error)
	ListByTenant(ctx context.Context, legacyTenantID int64, page pagination.Page) ([]*occupancymodels.OccupancyView, error)
}

// AssignRequest identifies the unit by legacy building and raw unit number.
type AssignRequest struct {
	LegacyTenantID   int64
	LegacyBuildingID int64
	UnitNumber       string
	StartDate        *time.Time
}

type UnassignRequest struct {
	LegacyTenantID int64
	EndDate        *time.Time
}

// Service is the entry point for transports. It resolves legacy identifiers,
// drives the registry and the ledger, and turns ledger outcomes into domain
// errors.
type Service struct {
	registry Registry
	ledger   Ledger
	logger   *slog.Logger
	tracer   trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracerProvider overrides the global otel tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Service) {
		s.tracer = tp.Tracer(tracerName)
	}
}

func New(registry Registry, ledger Ledger, opts ...Option) *Service {
	s := &Service{registry: registry, ledger: ledger}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer(tracerName)
	}
	return s
}

func (s *Service) start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if id := requestcontext.RequestID(ctx); id != "" {
		attrs = append(attrs, attribute.String("request.id", id))
	}
	return s.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// finish records err on span and ends it.
func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
	}
	span.End()
}

func (s *Service) GetBuilding(ctx context.Context, legacyBuildingID int64) (_ *registrymodels.Building, err error) {
	ctx, span := s.start(ctx, "bridge.GetBuilding", attribute.Int64("legacy_building_id", legacyBuildingID))
	defer func() { finish(span, err) }()

	return s.registry.FindBuilding(ctx, legacyBuildingID)
}

func (s *Service) ListBuildingsByAdmin(ctx context.Context, legacyAdminID int64) (_ []*registrymodels.Building, err error) {
	ctx, span := s.start(ctx, "bridge.ListBuildingsByAdmin", attribute.Int64("legacy_admin_id", legacyAdminID))
	defer func() { finish(span, err) }()

	return s.registry.ListBuildingsByAdmin(ctx, legacyAdminID)
}

func (s *Service) CreateUnit(ctx context.Context, req registrymodels.CreateUnitRequest) (_ *registrymodels.UnitView, err error) {
	ctx, span := s.start(ctx, "bridge.CreateUnit",
		attribute.Int64("legacy_building_id", req.LegacyBuildingID),
		attribute.Int64("legacy_admin_id", req.LegacyAdminID),
	)
	defer func() { finish(span, err) }()

	return s.registry.CreateUnit(ctx, req)
}

func (s *Service) UpdateUnit(ctx context.Context, unitID uuid.UUID, req registrymodels.UpdateUnitRequest) (_ *registrymodels.UnitView, err error) {
	ctx, span := s.start(ctx, "bridge.UpdateUnit", attribute.String("unit_id", unitID.String()))
	defer func() { finish(span, err) }()

	return s.registry.UpdateUnit(ctx, unitID, req)
}

func (s *Service) GetUnit(ctx context.Context, unitID uuid.UUID) (_ *registrymodels.UnitView, err error) {
	ctx, span := s.start(ctx, "bridge.GetUnit", attribute.String("unit_id", unitID.String()))
	defer func() { finish(span, err) }()

	return s.registry.FindUnit(ctx, unitID)
}

func (s *Service) ListUnitsByAdmin(ctx context.Context, legacyAdminID int64, page pagination.Page) (_ []*registrymodels.UnitView, err error) {
	ctx, span := s.start(ctx, "bridge.ListUnitsByAdmin", attribute.Int64("legacy_admin_id", legacyAdminID))
	defer func() { finish(span, err) }()

	return s.registry.ListUnitsByAdmin(ctx, legacyAdminID, page)
}

func (s *Service) ListUnitsByBuilding(ctx context.Context, legacyBuildingID int64, page pagination.Page) (_ []*registrymodels.UnitView, err error) {
	ctx, span := s.start(ctx, "bridge.ListUnitsByBuilding", attribute.Int64("legacy_building_id", legacyBuildingID))
	defer func() { finish(span, err) }()

	return s.registry.ListUnitsByBuilding(ctx, legacyBuildingID, page)
}

// AssignOccupancy resolves the unit by building and normalized number, then
// asks the ledger to house the tenant there.
func (s *Service) AssignOccupancy(ctx context.Context, req AssignRequest) (_ *occupancymodels.OccupancyView, err error) {
	ctx, span := s.start(ctx, "bridge.AssignOccupancy",
		attribute.Int64("legacy_tenant_id", req.LegacyTenantID),
		attribute.Int64("legacy_building_id", req.LegacyBuildingID),
	)
	defer func() { finish(span, err) }()

	unit, err := s.registry.FindUnitByNumber(ctx, req.LegacyBuildingID, req.UnitNumber)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("unit_id", unit.ID.String()))

	var startDate time.Time
	if req.StartDate != nil {
		startDate = *req.StartDate
	}
	res, err := s.ledger.Assign(ctx, unit.ID, req.LegacyTenantID, startDate)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("outcome", res.Outcome.String()))

	if err := assignOutcomeErr(res.Outcome); err != nil {
		s.logger.InfoContext(ctx, "assignment rejected",
			"outcome", res.Outcome,
			"unit_id", unit.ID,
			"legacy_tenant_id", req.LegacyTenantID,
			"request_id", requestcontext.RequestID(ctx),
		)
		return nil, err
	}
	return res.Occupancy, nil
}

func (s *Service) UnassignOccupancy(ctx context.Context, req UnassignRequest) (_ *occupancymodels.OccupancyView, err error) {
	ctx, span := s.start(ctx, "bridge.UnassignOccupancy", attribute.Int64("legacy_tenant_id", req.LegacyTenantID))
	defer func() { finish(span, err) }()

	res, err := s.ledger.Unassign(ctx, req.LegacyTenantID, req.EndDate)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("outcome", res.Outcome.String()))

	if res.Outcome == occupancymodels.OutcomeNotFound {
		return nil, dErrors.New(dErrors.CodeNotFound, "tenant has no active occupancy")
	}
	if res.Outcome != occupancymodels.OutcomeOK {
		return nil, dErrors.New(dErrors.CodeInternal, "unexpected unassign outcome "+res.Outcome.String())
	}
	return res.Occupancy, nil
}

func (s *Service) ListOccupanciesByTenant(ctx context.Context, legacyTenantID int64, page pagination.Page) (_ []*occupancymodels.OccupancyView, err error) {
	ctx, span := s.start(ctx, "bridge.ListOccupanciesByTenant", attribute.Int64("legacy_tenant_id", legacyTenantID))
	defer func() { finish(span, err) }()

	return s.ledger.ListByTenant(ctx, legacyTenantID, page)
}

func assignOutcomeErr(outcome occupancymodels.Outcome) error {
	switch outcome {
	case occupancymodels.OutcomeOK:
		return nil
	case occupancymodels.OutcomeMissingUnit:
		return dErrors.New(dErrors.CodeNotFound, "unit not found")
	case occupancymodels.OutcomeUnitOccupied:
		return dErrors.New(dErrors.CodeConflict, "unit already has an active occupancy")
	case occupancymodels.OutcomeTenantOccupied:
		return dErrors.New(dErrors.CodeConflict, "tenant already has an active occupancy")
	default:
		return dErrors.New(dErrors.CodeInternal, "unexpected assign outcome "+outcome.String())
	}
}

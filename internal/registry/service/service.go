package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	registrymetrics "unitbridge/internal/registry/metrics"
	"unitbridge/internal/registry/models"
	dErrors "unitbridge/pkg/domain-errors"
	"unitbridge/pkg/pagination"
	"unitbridge/pkg/platform/sentinel"
	txcontext "unitbridge/pkg/platform/tx"
	"unitbridge/pkg/requestcontext"
	"unitbridge/pkg/unitnumber"
)

type BuildingStore interface {
	Create(ctx context.Context, b *models.Building) error
	FindByLegacyID(ctx context.Context, legacyBuildingID int64) (*models.Building, error)
	ListByAdmin(ctx context.Context, legacyAdminID int64) ([]*models.Building, error)
}

type UnitStore interface {
	Create(ctx context.Context, u *models.Unit) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Unit, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Unit, error)
	FindByNumber(ctx context.Context, legacyBuildingID int64, normalized string) (*models.Unit, error)
	Update(ctx context.Context, u *models.Unit) error
	FindViewByID(ctx context.Context, id uuid.UUID) (*models.UnitView, error)
	ListByBuilding(ctx context.Context, legacyBuildingID int64, page pagination.Page) ([]*models.UnitView, error)
	ListByAdmin(ctx context.Context, legacyAdminID int64, page pagination.Page) ([]*models.UnitView, error)
}

// Service is the building/unit registry. It is the only writer of building
// and unit rows, except for unit status which belongs to the occupancy
// ledger.
type Service struct {
	buildings BuildingStore
	units     UnitStore
	tx        txcontext.Runner
	logger    *slog.Logger
	metrics   *registrymetrics.Metrics
}

type Option func(*Service)

// WithTx sets the transaction runner. Stores passed to New must join the
// runner's transactions.
func WithTx(tx txcontext.Runner) Option {
	return func(s *Service) {
		s.tx = tx
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *registrymetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a registry Service. Without WithTx it serializes through a
// private in-memory runner.
func New(buildings BuildingStore, units UnitStore, opts ...Option) *Service {
	s := &Service{buildings: buildings, units: units}
	for _, opt := range opts {
		opt(s)
	}
	if s.tx == nil {
		s.tx = txcontext.NewMemoryRunner()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// FindBuilding returns the bridged building. A missing building is a
// CodeNotFound error that also matches sentinel.ErrNotFound.
func (s *Service) FindBuilding(ctx context.Context, legacyBuildingID int64) (*models.Building, error) {
	b, err := s.buildings.FindByLegacyID(ctx, legacyBuildingID)
	if err != nil {
		return nil, wrapBuildingErr(err)
	}
	return b, nil
}

// ListBuildingsByAdmin returns every building the admin owns, by legacy id.
func (s *Service) ListBuildingsByAdmin(ctx context.Context, legacyAdminID int64) ([]*models.Building, error) {
	buildings, err := s.buildings.ListByAdmin(ctx, legacyAdminID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list buildings")
	}
	return buildings, nil
}

// CreateBuilding bridges a new legacy building. An existing legacy id is a
// conflict; the storage constraint decides, not a prior read.
func (s *Service) CreateBuilding(ctx context.Context, legacyBuildingID, legacyAdminID int64, name string) (*models.Building, error) {
	b, err := models.NewBuilding(uuid.New(), legacyBuildingID, legacyAdminID, name, requestcontext.Now(ctx))
	if err != nil {
		return nil, invariantToValidation(err)
	}
	if err := s.buildings.Create(ctx, b); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, "building already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create building")
	}
	s.buildingCreated(ctx, b)
	return b, nil
}

// CreateUnit creates a unit, implicitly bridging its building on first use.
func (s *Service) CreateUnit(ctx context.Context, req models.CreateUnitRequest) (*models.UnitView, error) {
	start := time.Now()
	defer s.observeCreateUnit(start)

	u, err := models.NewUnit(uuid.New(), req, requestcontext.Now(ctx))
	if err != nil {
		return nil, invariantToValidation(err)
	}

	var view *models.UnitView
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		b, err := s.resolveBuilding(txCtx, req)
		if err != nil {
			return err
		}
		if err := s.units.Create(txCtx, u); err != nil {
			if errors.Is(err, sentinel.ErrAlreadyUsed) {
				return dErrors.New(dErrors.CodeConflict, "unit number already exists in this building")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create unit")
		}
		view = models.NewUnitView(u, b)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncrementUnitsCreated()
	}
	s.logger.InfoContext(ctx, "unit created",
		"unit_id", u.ID,
		"legacy_building_id", u.LegacyBuildingID,
		"normalized_unit_number", u.NormalizedUnitNumber,
		"request_id", requestcontext.RequestID(ctx),
	)
	return view, nil
}

// resolveBuilding finds the request's building or creates it for the
// request's admin. A lost creation race re-reads the winner so the admin
// guard is applied to whoever created it.
func (s *Service) resolveBuilding(ctx context.Context, req models.CreateUnitRequest) (*models.Building, error) {
	b, err := s.buildings.FindByLegacyID(ctx, req.LegacyBuildingID)
	if err == nil {
		return b, guardAdmin(b, req.LegacyAdminID)
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load building")
	}

	if strings.TrimSpace(req.BuildingName) == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "buildingName is required when the building is not yet bridged")
	}
	b, err = models.NewBuilding(uuid.New(), req.LegacyBuildingID, req.LegacyAdminID, req.BuildingName, requestcontext.Now(ctx))
	if err != nil {
		return nil, invariantToValidation(err)
	}
	err = s.buildings.Create(ctx, b)
	switch {
	case err == nil:
		s.buildingCreated(ctx, b)
		return b, nil
	case errors.Is(err, sentinel.ErrAlreadyUsed):
		winner, err := s.buildings.FindByLegacyID(ctx, req.LegacyBuildingID)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to reload building")
		}
		return winner, guardAdmin(winner, req.LegacyAdminID)
	default:
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create building")
	}
}

func guardAdmin(b *models.Building, legacyAdminID int64) error {
	if !b.OwnedBy(legacyAdminID) {
		return dErrors.New(dErrors.CodeConflict, "building belongs to a different admin")
	}
	return nil
}

// UpdateUnit applies a partial update with the unit row locked.
func (s *Service) UpdateUnit(ctx context.Context, unitID uuid.UUID, req models.UpdateUnitRequest) (*models.UnitView, error) {
	var view *models.UnitView
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		u, err := s.units.FindByIDForUpdate(txCtx, unitID)
		if err != nil {
			return wrapUnitErr(err)
		}

		previous := u.NormalizedUnitNumber
		if err := u.ApplyUpdate(req, requestcontext.Now(txCtx)); err != nil {
			return invariantToValidation(err)
		}
		if u.NormalizedUnitNumber != previous {
			existing, err := s.units.FindByNumber(txCtx, u.LegacyBuildingID, u.NormalizedUnitNumber)
			switch {
			case err == nil && existing.ID != u.ID:
				return dErrors.New(dErrors.CodeConflict, "unit number already exists in this building")
			case err != nil && !errors.Is(err, sentinel.ErrNotFound):
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check unit number")
			}
		}

		if err := s.units.Update(txCtx, u); err != nil {
			if errors.Is(err, sentinel.ErrAlreadyUsed) {
				return dErrors.New(dErrors.CodeConflict, "unit number already exists in this building")
			}
			return wrapUnitErr(err)
		}

		view, err = s.units.FindViewByID(txCtx, u.ID)
		if err != nil {
			return wrapUnitErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncrementUnitsUpdated()
	}
	s.logger.InfoContext(ctx, "unit updated",
		"unit_id", unitID,
		"request_id", requestcontext.RequestID(ctx),
	)
	return view, nil
}

// FindUnit returns the unit joined with its building.
func (s *Service) FindUnit(ctx context.Context, unitID uuid.UUID) (*models.UnitView, error) {
	v, err := s.units.FindViewByID(ctx, unitID)
	if err != nil {
		return nil, wrapUnitErr(err)
	}
	return v, nil
}

// FindUnitByNumber resolves a raw unit number in a building,
// case- and whitespace-insensitively.
func (s *Service) FindUnitByNumber(ctx context.Context, legacyBuildingID int64, rawUnitNumber string) (*models.Unit, error) {
	normalized := unitnumber.Normalize(rawUnitNumber)
	if normalized == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "unitNumber is required")
	}
	u, err := s.units.FindByNumber(ctx, legacyBuildingID, normalized)
	if err != nil {
		return nil, wrapUnitErr(err)
	}
	return u, nil
}

func (s *Service) ListUnitsByAdmin(ctx context.Context, legacyAdminID int64, page pagination.Page) ([]*models.UnitView, error) {
	units, err := s.units.ListByAdmin(ctx, legacyAdminID, page.Normalize())
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list units")
	}
	return units, nil
}

func (s *Service) ListUnitsByBuilding(ctx context.Context, legacyBuildingID int64, page pagination.Page) ([]*models.UnitView, error) {
	units, err := s.units.ListByBuilding(ctx, legacyBuildingID, page.Normalize())
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list units")
	}
	return units, nil
}

func (s *Service) buildingCreated(ctx context.Context, b *models.Building) {
	if s.metrics != nil {
		s.metrics.IncrementBuildingsCreated()
	}
	s.logger.InfoContext(ctx, "building bridged",
		"building_id", b.ID,
		"legacy_building_id", b.LegacyBuildingID,
		"legacy_admin_id", b.LegacyAdminID,
	)
}

func (s *Service) observeCreateUnit(start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveCreateUnit(start)
	}
}

func wrapBuildingErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeNotFound, "building not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load building")
}

func wrapUnitErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "unit not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load unit")
}

// invariantToValidation converts model invariant violations to validation
// errors for API responses.
func invariantToValidation(err error) error {
	if de, ok := dErrors.As(err); ok && de.Code == dErrors.CodeInvariantViolation {
		return dErrors.New(dErrors.CodeValidation, de.Message)
	}
	return err
}

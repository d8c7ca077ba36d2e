package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	occupancymetrics "unitbridge/internal/occupancy/metrics"
	"unitbridge/internal/occupancy/models"
	"unitbridge/internal/occupancy/store"
	registrymodels "unitbridge/internal/registry/models"
	dErrors "unitbridge/pkg/domain-errors"
	"unitbridge/pkg/pagination"
	"unitbridge/pkg/platform/sentinel"
	txcontext "unitbridge/pkg/platform/tx"
	"unitbridge/pkg/requestcontext"
)

// UnitStore is the ledger's view of units: a row lock and the status column.
type UnitStore interface {
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*registrymodels.Unit, error)
	SetStatus(ctx context.Context, id uuid.UUID, status registrymodels.UnitStatus, at time.Time) error
}

type OccupancyStore interface {
	Create(ctx context.Context, o *models.Occupancy) error
	FindActiveByUnit(ctx context.Context, unitID uuid.UUID) (*models.Occupancy, error)
	FindActiveByTenant(ctx context.Context, legacyTenantID int64) (*models.Occupancy, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Occupancy, error)
	End(ctx context.Context, id uuid.UUID, endDate, now time.Time) error
	FindViewByID(ctx context.Context, id uuid.UUID) (*models.OccupancyView, error)
	ListByTenant(ctx context.Context, legacyTenantID int64, page pagination.Page) ([]*models.OccupancyView, error)
}

// Ledger owns occupancy rows and unit status. Every mutation runs in one
// transaction that locks the unit row first, then any occupancy row.
type Ledger struct {
	units       UnitStore
	occupancies OccupancyStore
	tx          txcontext.Runner
	logger      *slog.Logger
	metrics     *occupancymetrics.Metrics
}

type Option func(*Ledger)

// WithTx sets the transaction runner. It must be the runner the unit and
// occupancy stores join.
func WithTx(tx txcontext.Runner) Option {
	return func(l *Ledger) {
		l.tx = tx
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) {
		l.logger = logger
	}
}

func WithMetrics(m *occupancymetrics.Metrics) Option {
	return func(l *Ledger) {
		l.metrics = m
	}
}

func New(units UnitStore, occupancies OccupancyStore, opts ...Option) *Ledger {
	l := &Ledger{units: units, occupancies: occupancies}
	for _, opt := range opts {
		opt(l)
	}
	if l.tx == nil {
		l.tx = txcontext.NewMemoryRunner()
	}
	if l.logger == nil {
		l.logger = slog.Default()
	}
	return l
}

// outcomeErr aborts a transaction with an expected, non-OK outcome. It never
// leaves the ledger.
type outcomeErr struct {
	outcome models.Outcome
}

func (e *outcomeErr) Error() string {
	return "ledger outcome: " + e.outcome.String()
}

func reject(outcome models.Outcome) error {
	return &outcomeErr{outcome: outcome}
}

// settle splits a transaction error into an outcome and an unexpected error.
func settle(err error) (models.Outcome, error) {
	if err == nil {
		return models.OutcomeOK, nil
	}
	var oe *outcomeErr
	if errors.As(err, &oe) {
		return oe.outcome, nil
	}
	return "", err
}

// Assign houses a tenant in a unit. A zero startDate means the request time.
// Outcome precedence is missing unit, unit occupied, tenant occupied, ok;
// every non-OK outcome rolls the transaction back.
func (l *Ledger) Assign(ctx context.Context, unitID uuid.UUID, legacyTenantID int64, startDate time.Time) (models.AssignResult, error) {
	start := time.Now()
	var view *models.OccupancyView

	err := l.tx.RunInTx(ctx, func(txCtx context.Context) error {
		now := requestcontext.Now(txCtx)

		unit, err := l.units.FindByIDForUpdate(txCtx, unitID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return reject(models.OutcomeMissingUnit)
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to lock unit")
		}
		if !unit.IsAvailable() {
			return reject(models.OutcomeUnitOccupied)
		}
		if err := requireNoActive(l.occupancies.FindActiveByUnit(txCtx, unitID)); err != nil {
			return orOutcome(err, models.OutcomeUnitOccupied)
		}
		if err := requireNoActive(l.occupancies.FindActiveByTenant(txCtx, legacyTenantID)); err != nil {
			return orOutcome(err, models.OutcomeTenantOccupied)
		}

		o, err := models.NewOccupancy(uuid.New(), legacyTenantID, unitID, startDate, now)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeValidation, "invalid assignment")
		}
		if err := l.occupancies.Create(txCtx, o); err != nil {
			switch {
			case errors.Is(err, store.ErrUnitHasActiveOccupancy):
				return reject(models.OutcomeUnitOccupied)
			case errors.Is(err, sentinel.ErrAlreadyUsed):
				// The unit row is locked, so only the tenant index can race.
				return reject(models.OutcomeTenantOccupied)
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create occupancy")
		}
		if err := l.units.SetStatus(txCtx, unitID, registrymodels.UnitStatusOccupied, now); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to mark unit occupied")
		}

		view, err = l.occupancies.FindViewByID(txCtx, o.ID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load occupancy")
		}
		return nil
	})

	outcome, err := settle(err)
	if err != nil {
		l.logger.ErrorContext(ctx, "assign failed",
			"unit_id", unitID,
			"legacy_tenant_id", legacyTenantID,
			"error", err,
		)
		return models.AssignResult{}, err
	}
	if l.metrics != nil {
		l.metrics.ObserveAssign(outcome.String(), start)
	}

	l.logger.InfoContext(ctx, "assign settled",
		"outcome", outcome,
		"unit_id", unitID,
		"legacy_tenant_id", legacyTenantID,
		"request_id", requestcontext.RequestID(ctx),
	)
	if outcome != models.OutcomeOK {
		return models.AssignResult{Outcome: outcome}, nil
	}
	return models.AssignResult{Outcome: outcome, Occupancy: view}, nil
}

// Unassign ends the tenant's active occupancy and frees its unit. A nil
// endDate means the request time.
func (l *Ledger) Unassign(ctx context.Context, legacyTenantID int64, endDate *time.Time) (models.UnassignResult, error) {
	start := time.Now()
	var view *models.OccupancyView

	err := l.tx.RunInTx(ctx, func(txCtx context.Context) error {
		now := requestcontext.Now(txCtx)

		active, err := l.occupancies.FindActiveByTenant(txCtx, legacyTenantID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return reject(models.OutcomeNotFound)
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load occupancy")
		}

		// Same lock order as Assign: unit, then occupancy.
		if _, err := l.units.FindByIDForUpdate(txCtx, active.UnitID); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to lock unit")
		}
		locked, err := l.occupancies.FindByIDForUpdate(txCtx, active.ID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to lock occupancy")
		}
		if !locked.IsActive() {
			return reject(models.OutcomeNotFound)
		}

		end := now
		if endDate != nil {
			end = *endDate
		}
		if err := l.occupancies.End(txCtx, locked.ID, end, now); err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return reject(models.OutcomeNotFound)
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to end occupancy")
		}
		if err := l.units.SetStatus(txCtx, locked.UnitID, registrymodels.UnitStatusAvailable, now); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to mark unit available")
		}

		view, err = l.occupancies.FindViewByID(txCtx, locked.ID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load occupancy")
		}
		return nil
	})

	outcome, err := settle(err)
	if err != nil {
		l.logger.ErrorContext(ctx, "unassign failed",
			"legacy_tenant_id", legacyTenantID,
			"error", err,
		)
		return models.UnassignResult{}, err
	}
	if l.metrics != nil {
		l.metrics.ObserveUnassign(outcome.String(), start)
	}

	l.logger.InfoContext(ctx, "unassign settled",
		"outcome", outcome,
		"legacy_tenant_id", legacyTenantID,
		"request_id", requestcontext.RequestID(ctx),
	)
	if outcome != models.OutcomeOK {
		return models.UnassignResult{Outcome: outcome}, nil
	}
	return models.UnassignResult{Outcome: outcome, Occupancy: view}, nil
}

// ListByTenant returns the tenant's occupancy history, latest start first.
func (l *Ledger) ListByTenant(ctx context.Context, legacyTenantID int64, page pagination.Page) ([]*models.OccupancyView, error) {
	views, err := l.occupancies.ListByTenant(ctx, legacyTenantID, page.Normalize())
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list occupancies")
	}
	return views, nil
}

var errActiveExists = errors.New("active occupancy exists")

// requireNoActive turns an active-occupancy lookup into nil when there is
// none, errActiveExists when there is one, or a wrapped failure.
func requireNoActive(_ *models.Occupancy, err error) error {
	switch {
	case err == nil:
		return errActiveExists
	case errors.Is(err, sentinel.ErrNotFound):
		return nil
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check active occupancy")
	}
}

func orOutcome(err error, outcome models.Outcome) error {
	if errors.Is(err, errActiveExists) {
		return reject(outcome)
	}
	return err
}

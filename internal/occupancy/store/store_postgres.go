package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"unitbridge/internal/occupancy/models"
	"unitbridge/internal/platform/postgres"
	"unitbridge/pkg/pagination"
	"unitbridge/pkg/platform/sentinel"
	txcontext "unitbridge/pkg/platform/tx"
)

const (
	activeUnitIndex   = "occupancy_bridges_active_unit_key"
	activeTenantIndex = "occupancy_bridges_active_tenant_key"
)

// PostgresStore persists occupancies in PostgreSQL. The partial unique
// indexes on active rows are the final word on exclusivity.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed occupancy store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const occupancyColumns = `o.id, o.legacy_tenant_id, o.unit_id, o.start_date, o.end_date, o.created_at, o.updated_at`

const occupancyViewSelect = `SELECT ` + occupancyColumns + `,
		u.unit_number, u.unit_type, u.floor_number, u.legacy_building_id
	FROM occupancy_bridges o
	JOIN unit_bridges u ON u.id = o.unit_id`

// Create inserts o. A partial unique index violation aborts the enclosing
// transaction and is reported as ErrUnitHasActiveOccupancy or
// ErrTenantHasActiveOccupancy; any other unique violation as
// sentinel.ErrAlreadyUsed.
func (s *PostgresStore) Create(ctx context.Context, o *models.Occupancy) error {
	query := `
		INSERT INTO occupancy_bridges (id, legacy_tenant_id, unit_id, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := txcontext.Executor(ctx, s.db).ExecContext(ctx, query,
		o.ID, o.LegacyTenantID, o.UnitID, o.StartDate, o.EndDate, o.CreatedAt, o.UpdatedAt,
	)
	if err == nil {
		return nil
	}
	if postgres.IsUniqueViolation(err) {
		switch postgres.ConstraintName(err) {
		case activeUnitIndex:
			return ErrUnitHasActiveOccupancy
		case activeTenantIndex:
			return ErrTenantHasActiveOccupancy
		default:
			return sentinel.ErrAlreadyUsed
		}
	}
	return fmt.Errorf("insert occupancy: %w", err)
}

func (s *PostgresStore) FindActiveByUnit(ctx context.Context, unitID uuid.UUID) (*models.Occupancy, error) {
	return s.findOne(ctx, `SELECT `+occupancyColumns+` FROM occupancy_bridges o
		WHERE o.unit_id = $1 AND o.end_date IS NULL`, unitID)
}

func (s *PostgresStore) FindActiveByTenant(ctx context.Context, legacyTenantID int64) (*models.Occupancy, error) {
	return s.findOne(ctx, `SELECT `+occupancyColumns+` FROM occupancy_bridges o
		WHERE o.legacy_tenant_id = $1 AND o.end_date IS NULL`, legacyTenantID)
}

// FindByIDForUpdate locks the occupancy row until the enclosing transaction
// ends.
func (s *PostgresStore) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Occupancy, error) {
	return s.findOne(ctx, `SELECT `+occupancyColumns+` FROM occupancy_bridges o WHERE o.id = $1 FOR UPDATE`, id)
}

func (s *PostgresStore) findOne(ctx context.Context, query string, args ...any) (*models.Occupancy, error) {
	o, err := scanOccupancy(txcontext.Executor(ctx, s.db).QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find occupancy: %w", err)
	}
	return o, nil
}

// End closes an active occupancy. An unknown or already ended occupancy is
// sentinel.ErrNotFound.
func (s *PostgresStore) End(ctx context.Context, id uuid.UUID, endDate, now time.Time) error {
	result, err := txcontext.Executor(ctx, s.db).ExecContext(ctx,
		`UPDATE occupancy_bridges SET end_date = $2, updated_at = $3 WHERE id = $1 AND end_date IS NULL`,
		id, endDate, now)
	if err != nil {
		return fmt.Errorf("end occupancy: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("end occupancy rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) FindViewByID(ctx context.Context, id uuid.UUID) (*models.OccupancyView, error) {
	v, err := scanOccupancyView(txcontext.Executor(ctx, s.db).QueryRowContext(ctx, occupancyViewSelect+` WHERE o.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find occupancy view: %w", err)
	}
	return v, nil
}

// ListByTenant returns active and ended occupancies, latest start first.
func (s *PostgresStore) ListByTenant(ctx context.Context, legacyTenantID int64, page pagination.Page) ([]*models.OccupancyView, error) {
	page = page.Normalize()
	query := occupancyViewSelect + `
		WHERE o.legacy_tenant_id = $1
		ORDER BY o.start_date DESC, o.id
		LIMIT $2 OFFSET $3`
	rows, err := txcontext.Executor(ctx, s.db).QueryContext(ctx, query, legacyTenantID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("list occupancies: %w", err)
	}
	defer rows.Close()

	out := make([]*models.OccupancyView, 0)
	for rows.Next() {
		v, err := scanOccupancyView(rows)
		if err != nil {
			return nil, fmt.Errorf("scan occupancy: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate occupancies: %w", err)
	}
	return out, nil
}

type occupancyRow interface {
	Scan(dest ...any) error
}

func scanOccupancy(row occupancyRow) (*models.Occupancy, error) {
	var o models.Occupancy
	if err := row.Scan(&o.ID, &o.LegacyTenantID, &o.UnitID, &o.StartDate, &o.EndDate, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}

func scanOccupancyView(row occupancyRow) (*models.OccupancyView, error) {
	var v models.OccupancyView
	o := &v.Occupancy
	if err := row.Scan(
		&o.ID, &o.LegacyTenantID, &o.UnitID, &o.StartDate, &o.EndDate, &o.CreatedAt, &o.UpdatedAt,
		&v.Unit.UnitNumber, &v.Unit.UnitType, &v.Unit.FloorNumber, &v.Unit.LegacyBuildingID,
	); err != nil {
		return nil, err
	}
	return &v, nil
}

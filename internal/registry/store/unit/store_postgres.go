package unit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"unitbridge/internal/platform/postgres"
	"unitbridge/internal/registry/models"
	"unitbridge/pkg/pagination"
	"unitbridge/pkg/platform/sentinel"
	txcontext "unitbridge/pkg/platform/tx"
)

// PostgresStore persists unit bridges in PostgreSQL. The
// (legacy_building_id, normalized_unit_number) unique constraint is the
// authority on unit number collisions.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed unit store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const unitColumns = `u.id, u.legacy_building_id, u.unit_number, u.normalized_unit_number, u.unit_type,
	u.floor_number, u.ownership_type, u.owner_name, u.owner_cnic_or_id, u.owner_contact_number,
	u.covered_area_sqft, u.bedrooms, u.bathrooms, u.furnishing_status, u.parking_spaces,
	u.monthly_rent, u.security_deposit, u.maintenance_charges,
	u.electricity_meter_no, u.gas_meter_no, u.water_meter_no, u.description,
	u.currency, u.status, u.created_at, u.updated_at`

const unitViewSelect = `SELECT ` + unitColumns + `, b.legacy_admin_id, b.name
	FROM unit_bridges u
	JOIN building_bridges b ON b.legacy_building_id = u.legacy_building_id`

// Ordering uses the C collation so it matches byte order of the normalized form.
const unitOrder = ` ORDER BY u.normalized_unit_number COLLATE "C", u.id`

func (s *PostgresStore) Create(ctx context.Context, u *models.Unit) error {
	query := `
		INSERT INTO unit_bridges (
			id, legacy_building_id, unit_number, normalized_unit_number, unit_type,
			floor_number, ownership_type, owner_name, owner_cnic_or_id, owner_contact_number,
			covered_area_sqft, bedrooms, bathrooms, furnishing_status, parking_spaces,
			monthly_rent, security_deposit, maintenance_charges,
			electricity_meter_no, gas_meter_no, water_meter_no, description,
			currency, status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26
		)
		ON CONFLICT (legacy_building_id, normalized_unit_number) DO NOTHING
	`
	a := u.Attributes
	result, err := txcontext.Executor(ctx, s.db).ExecContext(ctx, query,
		u.ID, u.LegacyBuildingID, u.UnitNumber, u.NormalizedUnitNumber, u.UnitType,
		u.FloorNumber, u.OwnershipType, u.OwnerName, u.OwnerCnicOrID, u.OwnerContactNumber,
		a.CoveredAreaSqft, a.Bedrooms, a.Bathrooms, a.FurnishingStatus, a.ParkingSpaces,
		a.MonthlyRent, a.SecurityDeposit, a.MaintenanceCharges,
		a.ElectricityMeterNo, a.GasMeterNo, a.WaterMeterNo, a.Description,
		u.Currency, u.Status, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert unit: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert unit rows affected: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrAlreadyUsed
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Unit, error) {
	return s.findOne(ctx, `SELECT `+unitColumns+` FROM unit_bridges u WHERE u.id = $1`, id)
}

// FindByIDForUpdate locks the unit row until the enclosing transaction ends.
// Outside a transaction the lock is released immediately.
func (s *PostgresStore) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Unit, error) {
	return s.findOne(ctx, `SELECT `+unitColumns+` FROM unit_bridges u WHERE u.id = $1 FOR UPDATE`, id)
}

func (s *PostgresStore) FindByNumber(ctx context.Context, legacyBuildingID int64, normalized string) (*models.Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM unit_bridges u
		WHERE u.legacy_building_id = $1 AND u.normalized_unit_number = $2`
	return s.findOne(ctx, query, legacyBuildingID, normalized)
}

func (s *PostgresStore) findOne(ctx context.Context, query string, args ...any) (*models.Unit, error) {
	u, err := scanUnit(txcontext.Executor(ctx, s.db).QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find unit: %w", err)
	}
	return u, nil
}

// Update writes every mutable column of u. Status, building and created_at
// are never written here.
func (s *PostgresStore) Update(ctx context.Context, u *models.Unit) error {
	query := `
		UPDATE unit_bridges SET
			unit_number = $2, normalized_unit_number = $3, unit_type = $4, floor_number = $5,
			ownership_type = $6, owner_name = $7, owner_cnic_or_id = $8, owner_contact_number = $9,
			covered_area_sqft = $10, bedrooms = $11, bathrooms = $12, furnishing_status = $13,
			parking_spaces = $14, monthly_rent = $15, security_deposit = $16, maintenance_charges = $17,
			electricity_meter_no = $18, gas_meter_no = $19, water_meter_no = $20, description = $21,
			currency = $22, updated_at = $23
		WHERE id = $1
	`
	a := u.Attributes
	result, err := txcontext.Executor(ctx, s.db).ExecContext(ctx, query,
		u.ID, u.UnitNumber, u.NormalizedUnitNumber, u.UnitType, u.FloorNumber,
		u.OwnershipType, u.OwnerName, u.OwnerCnicOrID, u.OwnerContactNumber,
		a.CoveredAreaSqft, a.Bedrooms, a.Bathrooms, a.FurnishingStatus,
		a.ParkingSpaces, a.MonthlyRent, a.SecurityDeposit, a.MaintenanceCharges,
		a.ElectricityMeterNo, a.GasMeterNo, a.WaterMeterNo, a.Description,
		u.Currency, u.UpdatedAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("update unit: %w", err)
	}
	return expectOneRow(result, "update unit")
}

// SetStatus changes only the occupancy status of a unit.
func (s *PostgresStore) SetStatus(ctx context.Context, id uuid.UUID, status models.UnitStatus, at time.Time) error {
	result, err := txcontext.Executor(ctx, s.db).ExecContext(ctx,
		`UPDATE unit_bridges SET status = $2, updated_at = $3 WHERE id = $1`, id, status, at)
	if err != nil {
		return fmt.Errorf("set unit status: %w", err)
	}
	return expectOneRow(result, "set unit status")
}

func (s *PostgresStore) FindViewByID(ctx context.Context, id uuid.UUID) (*models.UnitView, error) {
	v, err := scanUnitView(txcontext.Executor(ctx, s.db).QueryRowContext(ctx, unitViewSelect+` WHERE u.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find unit view: %w", err)
	}
	return v, nil
}

func (s *PostgresStore) ListByBuilding(ctx context.Context, legacyBuildingID int64, page pagination.Page) ([]*models.UnitView, error) {
	page = page.Normalize()
	return s.listViews(ctx, unitViewSelect+` WHERE u.legacy_building_id = $1`+unitOrder+` LIMIT $2 OFFSET $3`,
		legacyBuildingID, page.Limit, page.Offset)
}

func (s *PostgresStore) ListByAdmin(ctx context.Context, legacyAdminID int64, page pagination.Page) ([]*models.UnitView, error) {
	page = page.Normalize()
	return s.listViews(ctx, unitViewSelect+` WHERE b.legacy_admin_id = $1`+unitOrder+` LIMIT $2 OFFSET $3`,
		legacyAdminID, page.Limit, page.Offset)
}

func (s *PostgresStore) listViews(ctx context.Context, query string, args ...any) ([]*models.UnitView, error) {
	rows, err := txcontext.Executor(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	defer rows.Close()

	out := make([]*models.UnitView, 0)
	for rows.Next() {
		v, err := scanUnitView(rows)
		if err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate units: %w", err)
	}
	return out, nil
}

func expectOneRow(result sql.Result, op string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

type unitRow interface {
	Scan(dest ...any) error
}

func unitDest(u *models.Unit) []any {
	a := &u.Attributes
	return []any{
		&u.ID, &u.LegacyBuildingID, &u.UnitNumber, &u.NormalizedUnitNumber, &u.UnitType,
		&u.FloorNumber, &u.OwnershipType, &u.OwnerName, &u.OwnerCnicOrID, &u.OwnerContactNumber,
		&a.CoveredAreaSqft, &a.Bedrooms, &a.Bathrooms, &a.FurnishingStatus, &a.ParkingSpaces,
		&a.MonthlyRent, &a.SecurityDeposit, &a.MaintenanceCharges,
		&a.ElectricityMeterNo, &a.GasMeterNo, &a.WaterMeterNo, &a.Description,
		&u.Currency, &u.Status, &u.CreatedAt, &u.UpdatedAt,
	}
}

func scanUnit(row unitRow) (*models.Unit, error) {
	var u models.Unit
	if err := row.Scan(unitDest(&u)...); err != nil {
		return nil, err
	}
	return &u, nil
}

func scanUnitView(row unitRow) (*models.UnitView, error) {
	var v models.UnitView
	dest := append(unitDest(&v.Unit), &v.LegacyAdminID, &v.BuildingName)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &v, nil
}

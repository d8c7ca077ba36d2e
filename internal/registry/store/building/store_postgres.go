package building

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"unitbridge/internal/registry/models"
	"unitbridge/pkg/platform/sentinel"
	txcontext "unitbridge/pkg/platform/tx"
)

// PostgresStore persists building bridges in PostgreSQL.
// Uniqueness of legacy_building_id is enforced by the table's unique
// constraint, never by a prior read.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed building store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const buildingColumns = `id, legacy_building_id, legacy_admin_id, name, created_at, updated_at`

// Create inserts b. A duplicate legacy building id yields
// sentinel.ErrAlreadyUsed without aborting an enclosing transaction.
func (s *PostgresStore) Create(ctx context.Context, b *models.Building) error {
	query := `
		INSERT INTO building_bridges (` + buildingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (legacy_building_id) DO NOTHING
	`
	result, err := txcontext.Executor(ctx, s.db).ExecContext(ctx, query,
		b.ID, b.LegacyBuildingID, b.LegacyAdminID, b.Name, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert building: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert building rows affected: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrAlreadyUsed
	}
	return nil
}

func (s *PostgresStore) FindByLegacyID(ctx context.Context, legacyBuildingID int64) (*models.Building, error) {
	query := `SELECT ` + buildingColumns + ` FROM building_bridges WHERE legacy_building_id = $1`
	b, err := scanBuilding(txcontext.Executor(ctx, s.db).QueryRowContext(ctx, query, legacyBuildingID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find building by legacy id: %w", err)
	}
	return b, nil
}

func (s *PostgresStore) ListByAdmin(ctx context.Context, legacyAdminID int64) ([]*models.Building, error) {
	query := `SELECT ` + buildingColumns + ` FROM building_bridges WHERE legacy_admin_id = $1 ORDER BY legacy_building_id`
	rows, err := txcontext.Executor(ctx, s.db).QueryContext(ctx, query, legacyAdminID)
	if err != nil {
		return nil, fmt.Errorf("list buildings by admin: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Building, 0)
	for rows.Next() {
		b, err := scanBuilding(rows)
		if err != nil {
			return nil, fmt.Errorf("scan building: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate buildings: %w", err)
	}
	return out, nil
}

type buildingRow interface {
	Scan(dest ...any) error
}

func scanBuilding(row buildingRow) (*models.Building, error) {
	var b models.Building
	if err := row.Scan(&b.ID, &b.LegacyBuildingID, &b.LegacyAdminID, &b.Name, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

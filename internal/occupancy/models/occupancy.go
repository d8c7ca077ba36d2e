package models

import (
	"time"

	"github.com/google/uuid"

	dErrors "unitbridge/pkg/domain-errors"
)

// Occupancy records one tenant living in one unit over a date range.
//
// Invariants (held by the ledger transaction and the storage constraints):
//   - a unit has at most one active occupancy
//   - a legacy tenant has at most one active occupancy
//   - rows are never deleted; history grows by end-dating
type Occupancy struct {
	ID             uuid.UUID  `json:"id"`
	LegacyTenantID int64      `json:"legacyTenantId"`
	UnitID         uuid.UUID  `json:"unitId"`
	StartDate      time.Time  `json:"startDate"`
	EndDate        *time.Time `json:"endDate"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// NewOccupancy builds an active occupancy starting at startDate.
func NewOccupancy(id uuid.UUID, legacyTenantID int64, unitID uuid.UUID, startDate, now time.Time) (*Occupancy, error) {
	if legacyTenantID <= 0 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "legacy tenant id must be positive")
	}
	if unitID == uuid.Nil {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "unit id is required")
	}
	if startDate.IsZero() {
		startDate = now
	}
	return &Occupancy{
		ID:             id,
		LegacyTenantID: legacyTenantID,
		UnitID:         unitID,
		StartDate:      startDate,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// IsActive reports whether the occupancy has not been ended.
func (o *Occupancy) IsActive() bool {
	return o.EndDate == nil
}

// UnitSummary is the slice of a unit shown next to an occupancy.
type UnitSummary struct {
	UnitNumber       string `json:"unitNumber"`
	UnitType         string `json:"unitType"`
	FloorNumber      int    `json:"floorNumber"`
	LegacyBuildingID int64  `json:"legacyBuildingId"`
}

// OccupancyView is an occupancy joined with its unit's display fields.
type OccupancyView struct {
	Occupancy
	Unit UnitSummary `json:"unit"`
}

package models

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	dErrors "unitbridge/pkg/domain-errors"
)

// Building bridges a legacy building id onto a generated identity.
//
// Invariants:
//   - LegacyBuildingID is positive, globally unique and immutable
//   - LegacyAdminID is the owner of record and never changes
//   - Buildings are never deleted
type Building struct {
	ID               uuid.UUID `json:"id"`
	LegacyBuildingID int64     `json:"legacyBuildingId"`
	LegacyAdminID    int64     `json:"legacyAdminId"`
	Name             string    `json:"name"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// NewBuilding validates and constructs a building bridge.
func NewBuilding(id uuid.UUID, legacyBuildingID, legacyAdminID int64, name string, now time.Time) (*Building, error) {
	name = strings.TrimSpace(name)
	if legacyBuildingID <= 0 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "legacy building id must be positive")
	}
	if legacyAdminID <= 0 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "legacy admin id must be positive")
	}
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "building name cannot be empty")
	}
	if utf8.RuneCountInString(name) > MaxBuildingNameLength {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "building name must be 255 characters or less")
	}
	return &Building{
		ID:               id,
		LegacyBuildingID: legacyBuildingID,
		LegacyAdminID:    legacyAdminID,
		Name:             name,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// OwnedBy reports whether the building belongs to the given legacy admin.
func (b *Building) OwnedBy(legacyAdminID int64) bool {
	return b.LegacyAdminID == legacyAdminID
}

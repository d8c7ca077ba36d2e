package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	dErrors "unitbridge/pkg/domain-errors"
	"unitbridge/pkg/patch"
	"unitbridge/pkg/unitnumber"
)

// DefaultCurrency applies when a unit is created without a currency.
const DefaultCurrency = "PKR"

// UnitStatus is the occupancy state mirrored on the unit row.
type UnitStatus string

const (
	UnitStatusAvailable UnitStatus = "AVAILABLE"
	UnitStatusOccupied  UnitStatus = "OCCUPIED"
)

func (s UnitStatus) IsValid() bool {
	return s == UnitStatusAvailable || s == UnitStatusOccupied
}

// OwnershipType says who owns a unit of record.
type OwnershipType string

const (
	OwnershipBuilding   OwnershipType = "building"
	OwnershipIndividual OwnershipType = "individual"
)

// ParseOwnershipType validates a raw ownership type.
func ParseOwnershipType(raw string) (OwnershipType, error) {
	t := OwnershipType(strings.ToLower(strings.TrimSpace(raw)))
	if !t.IsValid() {
		return "", dErrors.New(dErrors.CodeValidation, "ownershipType must be one of: building, individual")
	}
	return t, nil
}

func (t OwnershipType) IsValid() bool {
	return t == OwnershipBuilding || t == OwnershipIndividual
}

// Attributes are the optional physical, financial and utility details of a
// unit. Every field is nullable.
type Attributes struct {
	CoveredAreaSqft    *float64 `json:"coveredAreaSqft"`
	Bedrooms           *int     `json:"bedrooms"`
	Bathrooms          *int     `json:"bathrooms"`
	FurnishingStatus   *string  `json:"furnishingStatus"`
	ParkingSpaces      *int     `json:"parkingSpaces"`
	MonthlyRent        *float64 `json:"monthlyRent"`
	SecurityDeposit    *float64 `json:"securityDeposit"`
	MaintenanceCharges *float64 `json:"maintenanceCharges"`
	ElectricityMeterNo *string  `json:"electricityMeterNo"`
	GasMeterNo         *string  `json:"gasMeterNo"`
	WaterMeterNo       *string  `json:"waterMeterNo"`
	Description        *string  `json:"description"`
}

// Unit bridges one unit of a legacy building.
//
// Invariants:
//   - (LegacyBuildingID, NormalizedUnitNumber) is unique
//   - NormalizedUnitNumber == unitnumber.Normalize(UnitNumber)
//   - owner fields are nil whenever OwnershipType is building
//   - Status changes only through the occupancy ledger
//   - LegacyBuildingID is immutable
type Unit struct {
	ID                   uuid.UUID     `json:"id"`
	LegacyBuildingID     int64         `json:"legacyBuildingId"`
	UnitNumber           string        `json:"unitNumber"`
	NormalizedUnitNumber string        `json:"normalizedUnitNumber"`
	UnitType             string        `json:"unitType"`
	FloorNumber          int           `json:"floorNumber"`
	OwnershipType        OwnershipType `json:"ownershipType"`
	OwnerName            *string       `json:"ownerName"`
	OwnerCnicOrID        *string       `json:"ownerCnicOrId"`
	OwnerContactNumber   *string       `json:"ownerContactNumber"`
	Attributes
	Currency  string     `json:"currency"`
	Status    UnitStatus `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// NewUnit validates a create request and builds an AVAILABLE unit.
func NewUnit(id uuid.UUID, req CreateUnitRequest, now time.Time) (*Unit, error) {
	unitNumber := strings.TrimSpace(req.UnitNumber)
	normalized := unitnumber.Normalize(unitNumber)
	if req.LegacyBuildingID <= 0 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "legacy building id must be positive")
	}
	if normalized == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "unit number cannot be empty")
	}
	unitType := strings.TrimSpace(req.UnitType)
	if unitType == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "unit type cannot be empty")
	}
	if !req.OwnershipType.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "invalid ownership type")
	}

	currency := DefaultCurrency
	if req.Currency != nil && strings.TrimSpace(*req.Currency) != "" {
		currency = strings.ToUpper(strings.TrimSpace(*req.Currency))
	}

	u := &Unit{
		ID:                   id,
		LegacyBuildingID:     req.LegacyBuildingID,
		UnitNumber:           unitNumber,
		NormalizedUnitNumber: normalized,
		UnitType:             unitType,
		FloorNumber:          req.FloorNumber,
		OwnershipType:        req.OwnershipType,
		OwnerName:            req.OwnerName,
		OwnerCnicOrID:        req.OwnerCnicOrID,
		OwnerContactNumber:   req.OwnerContactNumber,
		Attributes:           req.Attributes,
		Currency:             currency,
		Status:               UnitStatusAvailable,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	u.EnforceOwnershipRule()
	return u, nil
}

// EnforceOwnershipRule clears the owner fields of building-owned units.
func (u *Unit) EnforceOwnershipRule() {
	if u.OwnershipType == OwnershipBuilding {
		u.OwnerName = nil
		u.OwnerCnicOrID = nil
		u.OwnerContactNumber = nil
	}
}

// ApplyUpdate applies the fields present in req. The ownership rule is
// re-evaluated against the effective ownership type on every update, even
// when req does not touch the ownership type.
func (u *Unit) ApplyUpdate(req UpdateUnitRequest, now time.Time) error {
	if v, ok := req.UnitNumber.Get(); ok {
		raw := strings.TrimSpace(v)
		normalized := unitnumber.Normalize(raw)
		if normalized == "" {
			return dErrors.New(dErrors.CodeInvariantViolation, "unit number cannot be empty")
		}
		u.UnitNumber = raw
		u.NormalizedUnitNumber = normalized
	}
	if v, ok := req.UnitType.Get(); ok {
		v = strings.TrimSpace(v)
		if v == "" {
			return dErrors.New(dErrors.CodeInvariantViolation, "unit type cannot be empty")
		}
		u.UnitType = v
	}
	if v, ok := req.FloorNumber.Get(); ok {
		u.FloorNumber = v
	}
	if v, ok := req.OwnershipType.Get(); ok {
		if !v.IsValid() {
			return dErrors.New(dErrors.CodeInvariantViolation, "invalid ownership type")
		}
		u.OwnershipType = v
	}
	patch.Apply(&u.OwnerName, req.OwnerName)
	patch.Apply(&u.OwnerCnicOrID, req.OwnerCnicOrID)
	patch.Apply(&u.OwnerContactNumber, req.OwnerContactNumber)
	req.Attributes.ApplyTo(&u.Attributes)

	// Currency is never nulled.
	if v, ok := req.Currency.Get(); ok && strings.TrimSpace(v) != "" {
		u.Currency = strings.ToUpper(strings.TrimSpace(v))
	}

	u.EnforceOwnershipRule()
	u.UpdatedAt = now
	return nil
}

func (u *Unit) IsAvailable() bool {
	return u.Status == UnitStatusAvailable
}

// UnitView is a unit joined with the owning building's admin and name, so
// callers need no second lookup.
type UnitView struct {
	Unit
	LegacyAdminID int64  `json:"legacyAdminId"`
	BuildingName  string `json:"buildingName"`
}

// NewUnitView joins u with b.
func NewUnitView(u *Unit, b *Building) *UnitView {
	return &UnitView{Unit: *u, LegacyAdminID: b.LegacyAdminID, BuildingName: b.Name}
}

package models

import (
	"fmt"
	"math"
	"unicode/utf8"

	dErrors "unitbridge/pkg/domain-errors"
	"unitbridge/pkg/patch"
)

// Field limits mirror the column widths in
// internal/platform/postgres/migrations/001_bridge.sql. Lengths count
// characters, as VARCHAR(n) does.
const (
	MaxUnitNumberLength         = 50 // unit_number VARCHAR(64)
	MaxUnitTypeLength           = 64
	MaxBuildingNameLength       = 255
	MaxOwnerNameLength          = 255
	MaxOwnerCnicOrIDLength      = 64
	MaxOwnerContactNumberLength = 64
	MaxFurnishingStatusLength   = 64
	MaxMeterNoLength            = 64
	MaxCurrencyLength           = 8

	// NUMERIC(12,2)
	MaxCoveredAreaSqft = 9_999_999_999.99
	// NUMERIC(14,2)
	MaxAmount = 999_999_999_999.99
)

// CheckLength rejects v when it is longer than limit characters.
func CheckLength(field, v string, limit int) error {
	if utf8.RuneCountInString(v) > limit {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s must be at most %d characters", field, limit))
	}
	return nil
}

// CheckOptionalLength is CheckLength for a nullable value.
func CheckOptionalLength(field string, v *string, limit int) error {
	if v == nil {
		return nil
	}
	return CheckLength(field, *v, limit)
}

// CheckInt32 rejects v when it does not fit an INTEGER column.
func CheckInt32(field string, v int) error {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return dErrors.New(dErrors.CodeValidation, field+" is out of range")
	}
	return nil
}

// CheckDecimal rejects v when its magnitude does not fit a NUMERIC column
// whose largest value is limit.
func CheckDecimal(field string, v, limit float64) error {
	if math.IsNaN(v) || math.Abs(v) > limit {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s must be between -%.2f and %.2f", field, limit, limit))
	}
	return nil
}

func checkOptionalInt32(field string, v *int) error {
	if v == nil {
		return nil
	}
	return CheckInt32(field, *v)
}

func checkOptionalDecimal(field string, v *float64, limit float64) error {
	if v == nil {
		return nil
	}
	return CheckDecimal(field, *v, limit)
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// CheckLimits rejects attributes that would not fit their columns.
func (a Attributes) CheckLimits() error {
	return firstError(
		checkOptionalDecimal("coveredAreaSqft", a.CoveredAreaSqft, MaxCoveredAreaSqft),
		checkOptionalInt32("bedrooms", a.Bedrooms),
		checkOptionalInt32("bathrooms", a.Bathrooms),
		CheckOptionalLength("furnishingStatus", a.FurnishingStatus, MaxFurnishingStatusLength),
		checkOptionalInt32("parkingSpaces", a.ParkingSpaces),
		checkOptionalDecimal("monthlyRent", a.MonthlyRent, MaxAmount),
		checkOptionalDecimal("securityDeposit", a.SecurityDeposit, MaxAmount),
		checkOptionalDecimal("maintenanceCharges", a.MaintenanceCharges, MaxAmount),
		CheckOptionalLength("electricityMeterNo", a.ElectricityMeterNo, MaxMeterNoLength),
		CheckOptionalLength("gasMeterNo", a.GasMeterNo, MaxMeterNoLength),
		CheckOptionalLength("waterMeterNo", a.WaterMeterNo, MaxMeterNoLength),
	)
}

// CheckLimits rejects present values that would not fit their columns.
// Nulls always fit.
func (p AttributesPatch) CheckLimits() error {
	return firstError(
		checkOptionalDecimal("coveredAreaSqft", p.CoveredAreaSqft.Ptr(), MaxCoveredAreaSqft),
		checkOptionalInt32("bedrooms", p.Bedrooms.Ptr()),
		checkOptionalInt32("bathrooms", p.Bathrooms.Ptr()),
		CheckOptionalLength("furnishingStatus", p.FurnishingStatus.Ptr(), MaxFurnishingStatusLength),
		checkOptionalInt32("parkingSpaces", p.ParkingSpaces.Ptr()),
		checkOptionalDecimal("monthlyRent", p.MonthlyRent.Ptr(), MaxAmount),
		checkOptionalDecimal("securityDeposit", p.SecurityDeposit.Ptr(), MaxAmount),
		checkOptionalDecimal("maintenanceCharges", p.MaintenanceCharges.Ptr(), MaxAmount),
		CheckOptionalLength("electricityMeterNo", p.ElectricityMeterNo.Ptr(), MaxMeterNoLength),
		CheckOptionalLength("gasMeterNo", p.GasMeterNo.Ptr(), MaxMeterNoLength),
		CheckOptionalLength("waterMeterNo", p.WaterMeterNo.Ptr(), MaxMeterNoLength),
	)
}

// CheckOptionalPatchLength is CheckLength for a patch field; absent and null
// values pass.
func CheckOptionalPatchLength(field string, f patch.Field[string], limit int) error {
	return CheckOptionalLength(field, f.Ptr(), limit)
}

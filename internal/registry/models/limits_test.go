package models

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	dErrors "unitbridge/pkg/domain-errors"
	"unitbridge/pkg/patch"
)

func TestCheckLength(t *testing.T) {
	assert.NoError(t, CheckLength("unitType", strings.Repeat("a", MaxUnitTypeLength), MaxUnitTypeLength))
	assert.NoError(t, CheckLength("ownerName", strings.Repeat("é", MaxOwnerNameLength), MaxOwnerNameLength))

	err := CheckLength("unitType", strings.Repeat("a", MaxUnitTypeLength+1), MaxUnitTypeLength)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	assert.Contains(t, err.Error(), "at most 64 characters")

	assert.NoError(t, CheckOptionalLength("currency", nil, MaxCurrencyLength))
}

func TestCheckDecimal(t *testing.T) {
	assert.NoError(t, CheckDecimal("monthlyRent", MaxAmount, MaxAmount))
	assert.NoError(t, CheckDecimal("monthlyRent", -MaxAmount, MaxAmount))
	assert.Error(t, CheckDecimal("monthlyRent", 1e12, MaxAmount))
	assert.Error(t, CheckDecimal("coveredAreaSqft", 1e10, MaxCoveredAreaSqft))
	assert.Error(t, CheckDecimal("coveredAreaSqft", math.NaN(), MaxCoveredAreaSqft))
}

func TestCheckInt32(t *testing.T) {
	assert.NoError(t, CheckInt32("floorNumber", -3))
	assert.NoError(t, CheckInt32("floorNumber", math.MaxInt32))
	assert.Error(t, CheckInt32("floorNumber", math.MaxInt32+1))
	assert.Error(t, CheckInt32("floorNumber", math.MinInt32-1))
}

func TestAttributesCheckLimits(t *testing.T) {
	area := MaxCoveredAreaSqft
	meter := strings.Repeat("9", MaxMeterNoLength)
	assert.NoError(t, Attributes{CoveredAreaSqft: &area, WaterMeterNo: &meter}.CheckLimits())

	long := meter + "9"
	err := Attributes{WaterMeterNo: &long}.CheckLimits()
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	assert.Contains(t, err.Error(), "waterMeterNo")
}

func TestAttributesPatchCheckLimits(t *testing.T) {
	assert.NoError(t, AttributesPatch{
		MonthlyRent:      patch.Null[float64](),
		FurnishingStatus: patch.Null[string](),
	}.CheckLimits())

	err := AttributesPatch{SecurityDeposit: patch.Value(5e12)}.CheckLimits()
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	assert.Contains(t, err.Error(), "securityDeposit")

	err = AttributesPatch{ParkingSpaces: patch.Value(math.MaxInt32 + 1)}.CheckLimits()
	assert.Contains(t, err.Error(), "parkingSpaces")
}

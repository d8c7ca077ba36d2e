package models

import (
	"unitbridge/pkg/patch"
)

// CreateUnitRequest is the validated input for creating a unit. BuildingName
// is required only when LegacyBuildingID has not been seen before.
type CreateUnitRequest struct {
	LegacyAdminID      int64
	LegacyBuildingID   int64
	BuildingName       string
	UnitType           string
	UnitNumber         string
	FloorNumber        int
	OwnershipType      OwnershipType
	OwnerName          *string
	OwnerCnicOrID      *string
	OwnerContactNumber *string
	Attributes         Attributes
	Currency           *string
}

// UpdateUnitRequest carries a partial update. Each field is applied only when
// present; an explicit null clears nullable fields.
type UpdateUnitRequest struct {
	UnitType           patch.Field[string]
	UnitNumber         patch.Field[string]
	FloorNumber        patch.Field[int]
	OwnershipType      patch.Field[OwnershipType]
	OwnerName          patch.Field[string]
	OwnerCnicOrID      patch.Field[string]
	OwnerContactNumber patch.Field[string]
	Attributes         AttributesPatch
	Currency           patch.Field[string]
}

// AttributesPatch is the partial-update counterpart of Attributes.
type AttributesPatch struct {
	CoveredAreaSqft    patch.Field[float64] `json:"coveredAreaSqft"`
	Bedrooms           patch.Field[int]     `json:"bedrooms"`
	Bathrooms          patch.Field[int]     `json:"bathrooms"`
	FurnishingStatus   patch.Field[string]  `json:"furnishingStatus"`
	ParkingSpaces      patch.Field[int]     `json:"parkingSpaces"`
	MonthlyRent        patch.Field[float64] `json:"monthlyRent"`
	SecurityDeposit    patch.Field[float64] `json:"securityDeposit"`
	MaintenanceCharges patch.Field[float64] `json:"maintenanceCharges"`
	ElectricityMeterNo patch.Field[string]  `json:"electricityMeterNo"`
	GasMeterNo         patch.Field[string]  `json:"gasMeterNo"`
	WaterMeterNo       patch.Field[string]  `json:"waterMeterNo"`
	Description        patch.Field[string]  `json:"description"`
}

// ApplyTo writes every present field into a.
func (p AttributesPatch) ApplyTo(a *Attributes) {
	patch.Apply(&a.CoveredAreaSqft, p.CoveredAreaSqft)
	patch.Apply(&a.Bedrooms, p.Bedrooms)
	patch.Apply(&a.Bathrooms, p.Bathrooms)
	patch.Apply(&a.FurnishingStatus, p.FurnishingStatus)
	patch.Apply(&a.ParkingSpaces, p.ParkingSpaces)
	patch.Apply(&a.MonthlyRent, p.MonthlyRent)
	patch.Apply(&a.SecurityDeposit, p.SecurityDeposit)
	patch.Apply(&a.MaintenanceCharges, p.MaintenanceCharges)
	patch.Apply(&a.ElectricityMeterNo, p.ElectricityMeterNo)
	patch.Apply(&a.GasMeterNo, p.GasMeterNo)
	patch.Apply(&a.WaterMeterNo, p.WaterMeterNo)
	patch.Apply(&a.Description, p.Description)
}

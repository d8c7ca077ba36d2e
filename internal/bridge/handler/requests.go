package handler

import (
	"strings"
	"time"

	"unitbridge/internal/bridge/service"
	"unitbridge/internal/registry/models"
	dErrors "unitbridge/pkg/domain-errors"
	"unitbridge/pkg/patch"
)

const dateLayout = "2006-01-02"

// CreateUnitRequest is the HTTP request body for POST /units.
type CreateUnitRequest struct {
	LegacyAdminID      int64   `json:"legacyAdminId"`
	LegacyBuildingID   int64   `json:"legacyBuildingId"`
	BuildingName       string  `json:"buildingName"`
	UnitType           string  `json:"unitType"`
	UnitNumber         string  `json:"unitNumber"`
	FloorNumber        int     `json:"floorNumber"`
	OwnershipType      string  `json:"ownershipType"`
	OwnerName          *string `json:"ownerName"`
	OwnerCnicOrID      *string `json:"ownerCnicOrId"`
	OwnerContactNumber *string `json:"ownerContactNumber"`
	Currency           *string `json:"currency"`
	models.Attributes

	parsedOwnership models.OwnershipType
}

// Validate implements httputil.Validatable.
func (r *CreateUnitRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.UnitNumber = strings.TrimSpace(r.UnitNumber)
	r.UnitType = strings.TrimSpace(r.UnitType)
	r.BuildingName = strings.TrimSpace(r.BuildingName)
	if r.Currency != nil {
		trimmed := strings.TrimSpace(*r.Currency)
		r.Currency = &trimmed
	}

	if r.LegacyAdminID <= 0 {
		return dErrors.New(dErrors.CodeValidation, "legacyAdminId must be a positive integer")
	}
	if r.LegacyBuildingID <= 0 {
		return dErrors.New(dErrors.CodeValidation, "legacyBuildingId must be a positive integer")
	}
	if r.UnitNumber == "" {
		return dErrors.New(dErrors.CodeValidation, "unitNumber is required")
	}
	if r.UnitType == "" {
		return dErrors.New(dErrors.CodeValidation, "unitType is required")
	}
	if err := r.checkLimits(); err != nil {
		return err
	}

	ownership, err := models.ParseOwnershipType(r.OwnershipType)
	if err != nil {
		return err
	}
	r.parsedOwnership = ownership
	return nil
}

func (r *CreateUnitRequest) checkLimits() error {
	if err := models.CheckLength("unitNumber", r.UnitNumber, models.MaxUnitNumberLength); err != nil {
		return err
	}
	if err := models.CheckLength("unitType", r.UnitType, models.MaxUnitTypeLength); err != nil {
		return err
	}
	if err := models.CheckLength("buildingName", r.BuildingName, models.MaxBuildingNameLength); err != nil {
		return err
	}
	if err := models.CheckInt32("floorNumber", r.FloorNumber); err != nil {
		return err
	}
	if err := models.CheckOptionalLength("ownerName", r.OwnerName, models.MaxOwnerNameLength); err != nil {
		return err
	}
	if err := models.CheckOptionalLength("ownerCnicOrId", r.OwnerCnicOrID, models.MaxOwnerCnicOrIDLength); err != nil {
		return err
	}
	if err := models.CheckOptionalLength("ownerContactNumber", r.OwnerContactNumber, models.MaxOwnerContactNumberLength); err != nil {
		return err
	}
	if err := models.CheckOptionalLength("currency", r.Currency, models.MaxCurrencyLength); err != nil {
		return err
	}
	return r.Attributes.CheckLimits()
}

// ToModel converts the validated body into a registry request.
func (r *CreateUnitRequest) ToModel() models.CreateUnitRequest {
	return models.CreateUnitRequest{
		LegacyAdminID:      r.LegacyAdminID,
		LegacyBuildingID:   r.LegacyBuildingID,
		BuildingName:       r.BuildingName,
		UnitType:           r.UnitType,
		UnitNumber:         r.UnitNumber,
		FloorNumber:        r.FloorNumber,
		OwnershipType:      r.parsedOwnership,
		OwnerName:          r.OwnerName,
		OwnerCnicOrID:      r.OwnerCnicOrID,
		OwnerContactNumber: r.OwnerContactNumber,
		Attributes:         r.Attributes,
		Currency:           r.Currency,
	}
}

// UpdateUnitRequest is the HTTP request body for PATCH /units/{id}. Omitted
// keys are left untouched; explicit nulls clear nullable fields.
type UpdateUnitRequest struct {
	UnitType           patch.Field[string] `json:"unitType"`
	UnitNumber         patch.Field[string] `json:"unitNumber"`
	FloorNumber        patch.Field[int]    `json:"floorNumber"`
	OwnershipType      patch.Field[string] `json:"ownershipType"`
	OwnerName          patch.Field[string] `json:"ownerName"`
	OwnerCnicOrID      patch.Field[string] `json:"ownerCnicOrId"`
	OwnerContactNumber patch.Field[string] `json:"ownerContactNumber"`
	Currency           patch.Field[string] `json:"currency"`
	models.AttributesPatch

	parsedOwnership patch.Field[models.OwnershipType]
}

// Validate implements httputil.Validatable.
func (r *UpdateUnitRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	required := []struct {
		name string
		null bool
	}{
		{"unitType", r.UnitType.IsNull()},
		{"unitNumber", r.UnitNumber.IsNull()},
		{"floorNumber", r.FloorNumber.IsNull()},
		{"ownershipType", r.OwnershipType.IsNull()},
	}
	for _, f := range required {
		if f.null {
			return dErrors.New(dErrors.CodeValidation, f.name+" cannot be null")
		}
	}

	if v, ok := r.UnitNumber.Get(); ok {
		v = strings.TrimSpace(v)
		if v == "" {
			return dErrors.New(dErrors.CodeValidation, "unitNumber cannot be empty")
		}
		r.UnitNumber = patch.Value(v)
	}
	if v, ok := r.UnitType.Get(); ok {
		v = strings.TrimSpace(v)
		if v == "" {
			return dErrors.New(dErrors.CodeValidation, "unitType cannot be empty")
		}
		r.UnitType = patch.Value(v)
	}
	if v, ok := r.Currency.Get(); ok {
		r.Currency = patch.Value(strings.TrimSpace(v))
	}
	if err := r.checkLimits(); err != nil {
		return err
	}
	if v, ok := r.OwnershipType.Get(); ok {
		ownership, err := models.ParseOwnershipType(v)
		if err != nil {
			return err
		}
		r.parsedOwnership = patch.Value(ownership)
	}
	return nil
}

func (r *UpdateUnitRequest) checkLimits() error {
	if err := models.CheckOptionalPatchLength("unitNumber", r.UnitNumber, models.MaxUnitNumberLength); err != nil {
		return err
	}
	if err := models.CheckOptionalPatchLength("unitType", r.UnitType, models.MaxUnitTypeLength); err != nil {
		return err
	}
	if v, ok := r.FloorNumber.Get(); ok {
		if err := models.CheckInt32("floorNumber", v); err != nil {
			return err
		}
	}
	if err := models.CheckOptionalPatchLength("ownerName", r.OwnerName, models.MaxOwnerNameLength); err != nil {
		return err
	}
	if err := models.CheckOptionalPatchLength("ownerCnicOrId", r.OwnerCnicOrID, models.MaxOwnerCnicOrIDLength); err != nil {
		return err
	}
	if err := models.CheckOptionalPatchLength("ownerContactNumber", r.OwnerContactNumber, models.MaxOwnerContactNumberLength); err != nil {
		return err
	}
	if err := models.CheckOptionalPatchLength("currency", r.Currency, models.MaxCurrencyLength); err != nil {
		return err
	}
	return r.AttributesPatch.CheckLimits()
}

// ToModel converts the validated body into a registry update.
func (r *UpdateUnitRequest) ToModel() models.UpdateUnitRequest {
	return models.UpdateUnitRequest{
		UnitType:           r.UnitType,
		UnitNumber:         r.UnitNumber,
		FloorNumber:        r.FloorNumber,
		OwnershipType:      r.parsedOwnership,
		OwnerName:          r.OwnerName,
		OwnerCnicOrID:      r.OwnerCnicOrID,
		OwnerContactNumber: r.OwnerContactNumber,
		Attributes:         r.AttributesPatch,
		Currency:           r.Currency,
	}
}

// AssignRequest is the HTTP request body for POST /occupancy/assign.
type AssignRequest struct {
	LegacyTenantID   int64  `json:"legacyTenantId"`
	LegacyBuildingID int64  `json:"legacyBuildingId"`
	UnitNumber       string `json:"unitNumber"`
	StartDate        string `json:"startDate"`

	parsedStartDate *time.Time
}

// Validate implements httputil.Validatable.
func (r *AssignRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.UnitNumber = strings.TrimSpace(r.UnitNumber)
	if r.LegacyTenantID <= 0 {
		return dErrors.New(dErrors.CodeValidation, "legacyTenantId must be a positive integer")
	}
	if r.LegacyBuildingID <= 0 {
		return dErrors.New(dErrors.CodeValidation, "legacyBuildingId must be a positive integer")
	}
	if r.UnitNumber == "" {
		return dErrors.New(dErrors.CodeValidation, "unitNumber is required")
	}
	if err := models.CheckLength("unitNumber", r.UnitNumber, models.MaxUnitNumberLength); err != nil {
		return err
	}
	start, err := parseDate("startDate", r.StartDate)
	if err != nil {
		return err
	}
	r.parsedStartDate = start
	return nil
}

func (r *AssignRequest) ToService() service.AssignRequest {
	return service.AssignRequest{
		LegacyTenantID:   r.LegacyTenantID,
		LegacyBuildingID: r.LegacyBuildingID,
		UnitNumber:       r.UnitNumber,
		StartDate:        r.parsedStartDate,
	}
}

// UnassignRequest is the HTTP request body for POST /occupancy/unassign.
type UnassignRequest struct {
	LegacyTenantID int64  `json:"legacyTenantId"`
	EndDate        string `json:"endDate"`

	parsedEndDate *time.Time
}

// Validate implements httputil.Validatable.
func (r *UnassignRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.LegacyTenantID <= 0 {
		return dErrors.New(dErrors.CodeValidation, "legacyTenantId must be a positive integer")
	}
	end, err := parseDate("endDate", r.EndDate)
	if err != nil {
		return err
	}
	r.parsedEndDate = end
	return nil
}

func (r *UnassignRequest) ToService() service.UnassignRequest {
	return service.UnassignRequest{
		LegacyTenantID: r.LegacyTenantID,
		EndDate:        r.parsedEndDate,
	}
}

// parseDate accepts RFC 3339 timestamps or plain YYYY-MM-DD dates (UTC
// midnight). An empty value yields nil.
func parseDate(field, raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeValidation, field+" must be an RFC 3339 timestamp or a YYYY-MM-DD date")
	}
	return &t, nil
}

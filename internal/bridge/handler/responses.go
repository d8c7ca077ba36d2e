package handler

import (
	occupancymodels "unitbridge/internal/occupancy/models"
	registrymodels "unitbridge/internal/registry/models"
	"unitbridge/pkg/pagination"
)

// UnitListResponse is one page of units.
type UnitListResponse struct {
	Units  []*registrymodels.UnitView `json:"units"`
	Limit  int                        `json:"limit"`
	Offset int                        `json:"offset"`
}

func toUnitList(units []*registrymodels.UnitView, page pagination.Page) *UnitListResponse {
	if units == nil {
		units = []*registrymodels.UnitView{}
	}
	return &UnitListResponse{Units: units, Limit: page.Limit, Offset: page.Offset}
}

// OccupancyListResponse is one page of a tenant's occupancy history.
type OccupancyListResponse struct {
	Occupancies []*occupancymodels.OccupancyView `json:"occupancies"`
	Limit       int                              `json:"limit"`
	Offset      int                              `json:"offset"`
}

func toOccupancyList(views []*occupancymodels.OccupancyView, page pagination.Page) *OccupancyListResponse {
	if views == nil {
		views = []*occupancymodels.OccupancyView{}
	}
	return &OccupancyListResponse{Occupancies: views, Limit: page.Limit, Offset: page.Offset}
}

// BuildingListResponse lists an admin's buildings.
type BuildingListResponse struct {
	Buildings []*registrymodels.Building `json:"buildings"`
}

func toBuildingList(buildings []*registrymodels.Building) *BuildingListResponse {
	if buildings == nil {
		buildings = []*registrymodels.Building{}
	}
	return &BuildingListResponse{Buildings: buildings}
}

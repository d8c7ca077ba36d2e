package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"unitbridge/internal/bridge/service"
	occupancymodels "unitbridge/internal/occupancy/models"
	registrymodels "unitbridge/internal/registry/models"
	dErrors "unitbridge/pkg/domain-errors"
	"unitbridge/pkg/pagination"
	"unitbridge/pkg/platform/httputil"
	"unitbridge/pkg/requestcontext"
)

// Service defines the bridge operations exposed over HTTP.
type Service interface {
	GetBuilding(ctx context.Context, legacyBuildingID int64) (*registrymodels.Building, error)
	ListBuildingsByAdmin(ctx context.Context, legacyAdminID int64) ([]*registrymodels.Building, error)
	CreateUnit(ctx context.Context, req registrymodels.CreateUnitRequest) (*registrymodels.UnitView, error)
	UpdateUnit(ctx context.Context, unitID uuid.UUID, req registrymodels.UpdateUnitRequest) (*registrymodels.UnitView, error)
	GetUnit(ctx context.Context, unitID uuid.UUID) (*registrymodels.UnitView, error)
	ListUnitsByAdmin(ctx context.Context, legacyAdminID int64, page pagination.Page) ([]*registrymodels.UnitView, error)
	ListUnitsByBuilding(ctx context.Context, legacyBuildingID int64, page pagination.Page) ([]*registrymodels.UnitView, error)
	AssignOccupancy(ctx context.Context, req service.AssignRequest) (*occupancymodels.OccupancyView, error)
	UnassignOccupancy(ctx context.Context, req service.UnassignRequest) (*occupancymodels.OccupancyView, error)
	ListOccupanciesByTenant(ctx context.Context, legacyTenantID int64, page pagination.Page) ([]*occupancymodels.OccupancyView, error)
}

// Handler wires the unit, building and occupancy endpoints to the bridge
// service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the bridge endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/units", h.HandleCreateUnit)
	r.Get("/units/by-admin/{legacyAdminId}", h.HandleListUnitsByAdmin)
	r.Get("/units/by-building/{legacyBuildingId}", h.HandleListUnitsByBuilding)
	r.Get("/units/{id}", h.HandleGetUnit)
	r.Patch("/units/{id}", h.HandleUpdateUnit)
	r.Get("/buildings/by-admin/{legacyAdminId}", h.HandleListBuildingsByAdmin)
	r.Get("/buildings/{legacyBuildingId}", h.HandleGetBuilding)
	r.Post("/occupancy/assign", h.HandleAssign)
	r.Post("/occupancy/unassign", h.HandleUnassign)
	r.Get("/occupancy/by-tenant/{legacyTenantId}", h.HandleListOccupanciesByTenant)
}

// HandleCreateUnit handles POST /units.
func (h *Handler) HandleCreateUnit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateUnitRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	unit, err := h.service.CreateUnit(ctx, req.ToModel())
	if err != nil {
		h.fail(ctx, w, "create unit failed", err,
			"legacy_building_id", req.LegacyBuildingID,
			"legacy_admin_id", req.LegacyAdminID,
		)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, unit)
}

// HandleUpdateUnit handles PATCH /units/{id}.
func (h *Handler) HandleUpdateUnit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	unitID, err := uuidParam(r, "id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[UpdateUnitRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	unit, err := h.service.UpdateUnit(ctx, unitID, req.ToModel())
	if err != nil {
		h.fail(ctx, w, "update unit failed", err, "unit_id", unitID)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, unit)
}

// HandleGetUnit handles GET /units/{id}.
func (h *Handler) HandleGetUnit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	unitID, err := uuidParam(r, "id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	unit, err := h.service.GetUnit(ctx, unitID)
	if err != nil {
		h.fail(ctx, w, "get unit failed", err, "unit_id", unitID)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, unit)
}

func (h *Handler) HandleListUnitsByAdmin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	adminID, page, err := legacyIDAndPage(r, "legacyAdminId")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	units, err := h.service.ListUnitsByAdmin(ctx, adminID, page)
	if err != nil {
		h.fail(ctx, w, "list units by admin failed", err, "legacy_admin_id", adminID)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toUnitList(units, page))
}

func (h *Handler) HandleListUnitsByBuilding(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	buildingID, page, err := legacyIDAndPage(r, "legacyBuildingId")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	units, err := h.service.ListUnitsByBuilding(ctx, buildingID, page)
	if err != nil {
		h.fail(ctx, w, "list units by building failed", err, "legacy_building_id", buildingID)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toUnitList(units, page))
}

// HandleGetBuilding handles GET /buildings/{legacyBuildingId}.
func (h *Handler) HandleGetBuilding(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	buildingID, err := legacyIDParam(r, "legacyBuildingId")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	b, err := h.service.GetBuilding(ctx, buildingID)
	if err != nil {
		h.fail(ctx, w, "get building failed", err, "legacy_building_id", buildingID)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, b)
}

func (h *Handler) HandleListBuildingsByAdmin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	adminID, err := legacyIDParam(r, "legacyAdminId")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	buildings, err := h.service.ListBuildingsByAdmin(ctx, adminID)
	if err != nil {
		h.fail(ctx, w, "list buildings by admin failed", err, "legacy_admin_id", adminID)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toBuildingList(buildings))
}

// HandleAssign handles POST /occupancy/assign.
func (h *Handler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[AssignRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	occupancy, err := h.service.AssignOccupancy(ctx, req.ToService())
	if err != nil {
		h.fail(ctx, w, "assign failed", err,
			"legacy_tenant_id", req.LegacyTenantID,
			"legacy_building_id", req.LegacyBuildingID,
		)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, occupancy)
}

// HandleUnassign handles POST /occupancy/unassign.
func (h *Handler) HandleUnassign(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[UnassignRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	occupancy, err := h.service.UnassignOccupancy(ctx, req.ToService())
	if err != nil {
		h.fail(ctx, w, "unassign failed", err, "legacy_tenant_id", req.LegacyTenantID)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, occupancy)
}

func (h *Handler) HandleListOccupanciesByTenant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenantID, page, err := legacyIDAndPage(r, "legacyTenantId")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	views, err := h.service.ListOccupanciesByTenant(ctx, tenantID, page)
	if err != nil {
		h.fail(ctx, w, "list occupancies failed", err, "legacy_tenant_id", tenantID)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toOccupancyList(views, page))
}

// fail logs err at a level matching its code and writes the error response.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error, attrs ...any) {
	attrs = append(attrs, "request_id", requestcontext.RequestID(ctx), "error", err)
	if httputil.StatusFor(dErrors.CodeOf(err)) >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg, attrs...)
	} else {
		h.logger.WarnContext(ctx, msg, attrs...)
	}
	httputil.WriteError(w, err)
}

func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeValidation, name+" must be a UUID")
	}
	return id, nil
}

func legacyIDParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, dErrors.New(dErrors.CodeValidation, name+" must be a positive integer")
	}
	return id, nil
}

func legacyIDAndPage(r *http.Request, name string) (int64, pagination.Page, error) {
	id, err := legacyIDParam(r, name)
	if err != nil {
		return 0, pagination.Page{}, err
	}
	page, err := pagination.FromQuery(r.URL.Query())
	if err != nil {
		return 0, pagination.Page{}, err
	}
	return id, page, nil
}

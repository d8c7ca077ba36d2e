package handler_test

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unitbridge/internal/app"
	"unitbridge/internal/bridge/handler"
	occupancymodels "unitbridge/internal/occupancy/models"
	registrymodels "unitbridge/internal/registry/models"
	httpmetrics "unitbridge/internal/platform/metrics"
	"unitbridge/pkg/testutil"
)

func newInMemoryRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := prometheus.NewRegistry()
	backend := app.NewInMemoryBackend()
	return app.NewRouter(app.NewService(backend, logger, reg), app.RouterConfig{
		Logger:   logger,
		Metrics:  httpmetrics.New(reg),
		Gatherer: reg,
		Health:   backend.Health,
	})
}

// TestAssignmentLifecycle drives create, assign, conflicting assign, unassign
// and history listing through the full router on the in-memory backend.
func TestAssignmentLifecycle(t *testing.T) {
	router := newInMemoryRouter(t)
	var unitID string

	testutil.Given(t, "a unit created in an unseen building", func(t *testing.T) {
		rr := testutil.Serve(t, router, http.MethodPost, "/units", map[string]any{
			"legacyAdminId":    1,
			"legacyBuildingId": 100,
			"buildingName":     "Tower A",
			"unitType":         "apartment",
			"unitNumber":       "12A",
			"floorNumber":      12,
			"ownershipType":    "individual",
			"ownerName":        "Ayesha Khan",
		})
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		unit := testutil.Decode[registrymodels.UnitView](t, rr)
		assert.Equal(t, registrymodels.UnitStatusAvailable, unit.Status)
		assert.Equal(t, "PKR", unit.Currency)
		unitID = unit.ID.String()

		rr = testutil.Serve(t, router, http.MethodPost, "/units", map[string]any{
			"legacyAdminId": 1, "legacyBuildingId": 100, "unitType": "apartment",
			"unitNumber": "14", "floorNumber": 14, "ownershipType": "building",
		})
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	})

	testutil.When(t, "an equivalent unit number is created", func(t *testing.T) {
		rr := testutil.Serve(t, router, http.MethodPost, "/units", map[string]any{
			"legacyAdminId": 1, "legacyBuildingId": 100, "unitType": "apartment",
			"unitNumber": "12 a", "ownershipType": "building",
		})
		testutil.AssertStatusAndError(t, rr, http.StatusConflict, "conflict")
	})

	testutil.When(t, "the tenant is assigned by raw unit number", func(t *testing.T) {
		rr := testutil.Serve(t, router, http.MethodPost, "/occupancy/assign",
			map[string]any{"legacyTenantId": 9001, "legacyBuildingId": 100, "unitNumber": "12a"})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		occ := testutil.Decode[occupancymodels.OccupancyView](t, rr)
		assert.Equal(t, "12A", occ.Unit.UnitNumber)
		assert.Nil(t, occ.EndDate)

		rr = testutil.Serve(t, router, http.MethodGet, "/units/"+unitID, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, registrymodels.UnitStatusOccupied, testutil.Decode[registrymodels.UnitView](t, rr).Status)
	})

	testutil.Then(t, "the same tenant cannot take a second unit", func(t *testing.T) {
		rr := testutil.Serve(t, router, http.MethodPost, "/occupancy/assign",
			map[string]any{"legacyTenantId": 9001, "legacyBuildingId": 100, "unitNumber": "14"})
		testutil.AssertStatusAndError(t, rr, http.StatusConflict, "conflict")
	})

	testutil.Then(t, "another tenant cannot take the occupied unit", func(t *testing.T) {
		rr := testutil.Serve(t, router, http.MethodPost, "/occupancy/assign",
			map[string]any{"legacyTenantId": 9002, "legacyBuildingId": 100, "unitNumber": "12A"})
		testutil.AssertStatusAndError(t, rr, http.StatusConflict, "conflict")
	})

	testutil.When(t, "the tenant is unassigned", func(t *testing.T) {
		rr := testutil.Serve(t, router, http.MethodPost, "/occupancy/unassign", map[string]any{"legacyTenantId": 9001})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		assert.NotNil(t, testutil.Decode[occupancymodels.OccupancyView](t, rr).EndDate)

		rr = testutil.Serve(t, router, http.MethodGet, "/units/"+unitID, nil)
		assert.Equal(t, registrymodels.UnitStatusAvailable, testutil.Decode[registrymodels.UnitView](t, rr).Status)

		rr = testutil.Serve(t, router, http.MethodPost, "/occupancy/unassign", map[string]any{"legacyTenantId": 9001})
		testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")
	})

	testutil.Then(t, "the tenant history holds one ended record", func(t *testing.T) {
		rr := testutil.Serve(t, router, http.MethodGet, "/occupancy/by-tenant/9001", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		list := testutil.Decode[handler.OccupancyListResponse](t, rr)
		require.Len(t, list.Occupancies, 1)
		assert.NotNil(t, list.Occupancies[0].EndDate)
	})
}

func TestOwnershipSwitchClearsOwnerFields(t *testing.T) {
	router := newInMemoryRouter(t)

	rr := testutil.Serve(t, router, http.MethodPost, "/units", map[string]any{
		"legacyAdminId": 3, "legacyBuildingId": 300, "buildingName": "Annex",
		"unitType": "shop", "unitNumber": "G-1", "ownershipType": "individual",
		"ownerName": "Bilal", "ownerContactNumber": "0300-0000000",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	unit := testutil.Decode[registrymodels.UnitView](t, rr)
	require.NotNil(t, unit.OwnerName)

	rr = testutil.Serve(t, router, http.MethodPatch, "/units/"+unit.ID.String(), `{"ownershipType":"building"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	updated := testutil.Decode[registrymodels.UnitView](t, rr)
	assert.Nil(t, updated.OwnerName)
	assert.Nil(t, updated.OwnerContactNumber)

	rr = testutil.Serve(t, router, http.MethodPatch, "/units/"+unit.ID.String(), `{"ownerName":"Bilal"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Nil(t, testutil.Decode[registrymodels.UnitView](t, rr).OwnerName, "owner fields stay gated by building ownership")
}

func TestUnseenBuildingWithoutNameIsBadRequest(t *testing.T) {
	router := newInMemoryRouter(t)

	rr := testutil.Serve(t, router, http.MethodPost, "/units", map[string]any{
		"legacyAdminId": 1, "legacyBuildingId": 555, "unitType": "apartment",
		"unitNumber": "1", "ownershipType": "building",
	})
	testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "bad_request")

	rr = testutil.Serve(t, router, http.MethodGet, "/buildings/555", nil)
	testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")
}

func TestOperationalEndpoints(t *testing.T) {
	router := newInMemoryRouter(t)

	rr := testutil.Serve(t, router, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())

	testutil.Serve(t, router, http.MethodGet, "/units/by-admin/1", nil)
	rr = testutil.Serve(t, router, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `unitbridge_http_requests_total{method="GET",route="/units/by-admin/{legacyAdminId}",status="200"} 1`)
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}

package occupancy

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	GET(path string) error
	POST(path string, body interface{}) error
	GetResponseField(field string) (interface{}, error)
	LegacyID(n int64) int64
}

// RegisterSteps registers assignment lifecycle step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &occupancySteps{tc: tc}

	ctx.Step(`^tenant (\d+) is assigned to unit "([^"]*)" in building (\d+)$`, steps.assign)
	ctx.Step(`^tenant (\d+) is assigned to unit "([^"]*)" in building (\d+) from "([^"]*)"$`, steps.assignFrom)
	ctx.Step(`^tenant (\d+) is unassigned$`, steps.unassign)
	ctx.Step(`^tenant (\d+) is unassigned on "([^"]*)"$`, steps.unassignOn)
	ctx.Step(`^I list the occupancies of tenant (\d+)$`, steps.listByTenant)

	ctx.Step(`^the occupancy should belong to tenant (\d+)$`, steps.occupancyBelongsTo)
}

type occupancySteps struct {
	tc TestContext
}

func (s *occupancySteps) assignBody(tenantID int64, number string, buildingID int64) map[string]interface{} {
	return map[string]interface{}{
		"legacyTenantId":   s.tc.LegacyID(tenantID),
		"legacyBuildingId": s.tc.LegacyID(buildingID),
		"unitNumber":       number,
	}
}

func (s *occupancySteps) assign(ctx context.Context, tenantID int64, number string, buildingID int64) error {
	return s.tc.POST("/occupancy/assign", s.assignBody(tenantID, number, buildingID))
}

func (s *occupancySteps) assignFrom(ctx context.Context, tenantID int64, number string, buildingID int64, start string) error {
	body := s.assignBody(tenantID, number, buildingID)
	body["startDate"] = start
	return s.tc.POST("/occupancy/assign", body)
}

func (s *occupancySteps) unassign(ctx context.Context, tenantID int64) error {
	return s.tc.POST("/occupancy/unassign", map[string]interface{}{
		"legacyTenantId": s.tc.LegacyID(tenantID),
	})
}

func (s *occupancySteps) unassignOn(ctx context.Context, tenantID int64, end string) error {
	return s.tc.POST("/occupancy/unassign", map[string]interface{}{
		"legacyTenantId": s.tc.LegacyID(tenantID),
		"endDate":        end,
	})
}

func (s *occupancySteps) listByTenant(ctx context.Context, tenantID int64) error {
	return s.tc.GET(fmt.Sprintf("/occupancy/by-tenant/%d", s.tc.LegacyID(tenantID)))
}

func (s *occupancySteps) occupancyBelongsTo(ctx context.Context, tenantID int64) error {
	v, err := s.tc.GetResponseField("legacyTenantId")
	if err != nil {
		return err
	}
	got, ok := v.(float64)
	if !ok || int64(got) != s.tc.LegacyID(tenantID) {
		return fmt.Errorf("expected occupancy of tenant %d, got %v", tenantID, v)
	}
	return nil
}

package units

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	GET(path string) error
	POST(path string, body interface{}) error
	PATCH(path string, body interface{}) error
	GetResponseField(field string) (interface{}, error)
	GetLastResponseStatus() int
	LegacyID(n int64) int64
	Save(key, value string)
	Recall(key string) (string, bool)
}

// RegisterSteps registers unit and building step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &unitSteps{tc: tc}

	ctx.Step(`^admin (\d+) creates unit "([^"]*)" in building (\d+) named "([^"]*)"$`, steps.createUnitInNamedBuilding)
	ctx.Step(`^admin (\d+) creates unit "([^"]*)" in building (\d+)$`, steps.createUnit)
	ctx.Step(`^admin (\d+) creates unit "([^"]*)" in building (\d+) owned by "([^"]*)"$`, steps.createIndividualUnit)
	ctx.Step(`^I change the ownership of unit "([^"]*)" to "([^"]*)"$`, steps.changeOwnership)
	ctx.Step(`^I renumber unit "([^"]*)" to "([^"]*)"$`, steps.renumber)
	ctx.Step(`^I fetch unit "([^"]*)"$`, steps.fetchUnit)
	ctx.Step(`^I fetch building (\d+)$`, steps.fetchBuilding)
	ctx.Step(`^I list the units of building (\d+)$`, steps.listByBuilding)
	ctx.Step(`^I list the units of admin (\d+)$`, steps.listByAdmin)
	ctx.Step(`^I list the buildings of admin (\d+)$`, steps.listBuildingsByAdmin)

	ctx.Step(`^the building should be owned by admin (\d+)$`, steps.buildingOwnedBy)
}

type unitSteps struct {
	tc TestContext
}

func (s *unitSteps) create(adminID, buildingID int64, number, buildingName string, extra map[string]interface{}) error {
	body := map[string]interface{}{
		"legacyAdminId":    s.tc.LegacyID(adminID),
		"legacyBuildingId": s.tc.LegacyID(buildingID),
		"unitType":         "apartment",
		"unitNumber":       number,
		"floorNumber":      1,
		"ownershipType":    "building",
	}
	if buildingName != "" {
		body["buildingName"] = buildingName
	}
	for k, v := range extra {
		body[k] = v
	}
	if err := s.tc.POST("/units", body); err != nil {
		return err
	}
	if s.tc.GetLastResponseStatus() == 201 {
		id, err := s.tc.GetResponseField("id")
		if err != nil {
			return err
		}
		s.tc.Save("unit:"+number, fmt.Sprint(id))
	}
	return nil
}

func (s *unitSteps) createUnitInNamedBuilding(ctx context.Context, adminID int64, number string, buildingID int64, name string) error {
	return s.create(adminID, buildingID, number, name, nil)
}

func (s *unitSteps) createUnit(ctx context.Context, adminID int64, number string, buildingID int64) error {
	return s.create(adminID, buildingID, number, "", nil)
}

func (s *unitSteps) createIndividualUnit(ctx context.Context, adminID int64, number string, buildingID int64, owner string) error {
	return s.create(adminID, buildingID, number, "", map[string]interface{}{
		"ownershipType": "individual",
		"ownerName":     owner,
	})
}

func (s *unitSteps) unitID(number string) (string, error) {
	id, ok := s.tc.Recall("unit:" + number)
	if !ok {
		return "", fmt.Errorf("unit %q was not created in this scenario", number)
	}
	return id, nil
}

func (s *unitSteps) patch(number string, body map[string]interface{}) error {
	id, err := s.unitID(number)
	if err != nil {
		return err
	}
	return s.tc.PATCH("/units/"+id, body)
}

func (s *unitSteps) changeOwnership(ctx context.Context, number, ownership string) error {
	return s.patch(number, map[string]interface{}{"ownershipType": ownership})
}

func (s *unitSteps) renumber(ctx context.Context, number, newNumber string) error {
	return s.patch(number, map[string]interface{}{"unitNumber": newNumber})
}

func (s *unitSteps) fetchUnit(ctx context.Context, number string) error {
	id, err := s.unitID(number)
	if err != nil {
		return err
	}
	return s.tc.GET("/units/" + id)
}

func (s *unitSteps) fetchBuilding(ctx context.Context, buildingID int64) error {
	return s.tc.GET(fmt.Sprintf("/buildings/%d", s.tc.LegacyID(buildingID)))
}

func (s *unitSteps) listByBuilding(ctx context.Context, buildingID int64) error {
	return s.tc.GET(fmt.Sprintf("/units/by-building/%d", s.tc.LegacyID(buildingID)))
}

func (s *unitSteps) listByAdmin(ctx context.Context, adminID int64) error {
	return s.tc.GET(fmt.Sprintf("/units/by-admin/%d", s.tc.LegacyID(adminID)))
}

func (s *unitSteps) listBuildingsByAdmin(ctx context.Context, adminID int64) error {
	return s.tc.GET(fmt.Sprintf("/buildings/by-admin/%d", s.tc.LegacyID(adminID)))
}

func (s *unitSteps) buildingOwnedBy(ctx context.Context, adminID int64) error {
	v, err := s.tc.GetResponseField("legacyAdminId")
	if err != nil {
		return err
	}
	got, ok := v.(float64)
	if !ok || int64(got) != s.tc.LegacyID(adminID) {
		return fmt.Errorf("expected building owned by admin %d, got %v", adminID, v)
	}
	return nil
}

package e2e

import (
	"github.com/cucumber/godog"

	"unitbridge/e2e/steps/common"
	"unitbridge/e2e/steps/occupancy"
	"unitbridge/e2e/steps/units"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Generic requests and assertions
	common.RegisterSteps(ctx, tc)

	// Unit and building registry
	units.RegisterSteps(ctx, tc)

	// Assignment lifecycle
	occupancy.RegisterSteps(ctx, tc)
}

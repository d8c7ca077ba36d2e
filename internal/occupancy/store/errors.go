package store

import (
	"fmt"

	"unitbridge/pkg/platform/sentinel"
)

// Both errors match sentinel.ErrAlreadyUsed with errors.Is.
var (
	ErrUnitHasActiveOccupancy   = fmt.Errorf("%w: unit has an active occupancy", sentinel.ErrAlreadyUsed)
	ErrTenantHasActiveOccupancy = fmt.Errorf("%w: tenant has an active occupancy", sentinel.ErrAlreadyUsed)
)

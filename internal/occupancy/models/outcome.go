package models

// Outcome is the result of a ledger operation. Only OutcomeOK commits.
type Outcome string

const (
	OutcomeOK             Outcome = "ok"
	OutcomeMissingUnit    Outcome = "missing_unit"
	OutcomeUnitOccupied   Outcome = "unit_occupied"
	OutcomeTenantOccupied Outcome = "tenant_occupied"
	OutcomeNotFound       Outcome = "not_found"
)

func (o Outcome) String() string {
	return string(o)
}

// AssignResult carries the outcome of an assignment and, on OutcomeOK, the
// created occupancy.
type AssignResult struct {
	Outcome   Outcome
	Occupancy *OccupancyView
}

// UnassignResult carries the outcome of an unassignment and, on OutcomeOK,
// the ended occupancy.
type UnassignResult struct {
	Outcome   Outcome
	Occupancy *OccupancyView
}

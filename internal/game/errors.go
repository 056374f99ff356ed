package game

import "fmt"

// UnsupportedResourceCountError is returned at construction when a starting
// ledger holds more than one resource kind. The prompt layer can only
// express single-object trades.
type UnsupportedResourceCountError struct {
	Role  string
	Count int
}

func (e *UnsupportedResourceCountError) Error() string {
	return fmt.Sprintf("%s starts with %d resource kinds, only one is supported", e.Role, e.Count)
}

// ProposalBudgetError is returned when a player emits a PROPOSAL after
// spending its proposal budget; past the budget only ACCEPT or REJECT are
// allowed.
type ProposalBudgetError struct {
	Role string
	Max  int
}

func (e *ProposalBudgetError) Error() string {
	return fmt.Sprintf("%s exceeded the proposal budget of %d", e.Role, e.Max)
}

package resource

import "fmt"

// NegativeQuantityError is returned when ledger subtraction would drive a
// quantity below zero.
type NegativeQuantityError struct {
	Resource string
	Quantity int
}

func (e *NegativeQuantityError) Error() string {
	return fmt.Sprintf("quantity of %s would become negative (%d)", e.Resource, e.Quantity)
}

// InsufficientResourcesError is returned when a trade offers more of a
// resource than the offering side holds.
type InsufficientResourcesError struct {
	Role     string
	Resource string
	Have     int
	Need     int
}

func (e *InsufficientResourcesError) Error() string {
	return fmt.Sprintf("%s offers %d %s but holds only %d", e.Role, e.Need, e.Resource, e.Have)
}

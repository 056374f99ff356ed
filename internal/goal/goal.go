// Package goal models a player's objective and its utility valuation.
package goal

import (
	"fmt"

	"github.com/tatianab/trade-game/internal/resource"
)

// Kind distinguishes the two sides of the negotiation.
type Kind string

const (
	Buyer  Kind = "BUYER"
	Seller Kind = "SELLER"
)

// Goal is a player objective: the side it plays and a per-resource unit
// valuation used to score the game outcome. Goals are built once at game
// setup and read-only afterwards.
type Goal struct {
	Kind        Kind               `yaml:"kind"`
	Description string             `yaml:"description"`
	Valuation   map[string]float64 `yaml:"valuation"`
}

// New builds a goal for the given side. The valuation maps each resource
// name to its scalar unit worth for this player.
func New(kind Kind, description string, valuation map[string]float64) (Goal, error) {
	if kind != Buyer && kind != Seller {
		return Goal{}, fmt.Errorf("unknown goal kind %q", kind)
	}
	v := make(map[string]float64, len(valuation))
	for name, worth := range valuation {
		v[name] = worth
	}
	return Goal{Kind: kind, Description: description, Valuation: v}, nil
}

// Value scores a resource delta against the goal's valuation. It is pure:
// the utility is the sum of unit worth times signed quantity change, so
// giving away a resource scores negative and acquiring one scores positive.
func (g Goal) Value(delta resource.Delta) float64 {
	var total float64
	for name, qty := range delta {
		total += g.Valuation[name] * float64(qty)
	}
	return total
}

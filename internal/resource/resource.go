// Package resource defines the ledger and trade value types used by the
// negotiation game. Ledgers and trades are never mutated after creation;
// arithmetic always produces a fresh ledger.
package resource

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Ledger maps a resource name to a quantity. Quantities are never negative.
// Treat a Ledger as an immutable value: every operation returns a new map.
type Ledger map[string]int

// NewLedger copies counts into a fresh Ledger.
func NewLedger(counts map[string]int) Ledger {
	l := make(Ledger, len(counts))
	for name, qty := range counts {
		l[name] = qty
	}
	return l
}

// Count returns the quantity held for name, zero if absent.
func (l Ledger) Count(name string) int {
	return l[name]
}

// Names returns the resource names in the ledger, sorted.
func (l Ledger) Names() []string {
	names := make([]string, 0, len(l))
	for name := range l {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Add returns a new ledger with the componentwise sum over the union of
// resource names.
func (l Ledger) Add(other Ledger) Ledger {
	out := NewLedger(l)
	for name, qty := range other {
		out[name] += qty
	}
	return out
}

// Subtract returns a new ledger with other removed componentwise. It returns
// a NegativeQuantityError if any resulting quantity would be negative, in
// which case l is unchanged and no partial result is produced.
func (l Ledger) Subtract(other Ledger) (Ledger, error) {
	out := NewLedger(l)
	for name, qty := range other {
		remaining := out[name] - qty
		if remaining < 0 {
			return nil, &NegativeQuantityError{Resource: name, Quantity: remaining}
		}
		out[name] = remaining
	}
	return out, nil
}

// CanAfford reports whether l holds at least other of every resource. It is
// the non-raising form of Subtract for validating hypothetical trades.
func (l Ledger) CanAfford(other Ledger) bool {
	for name, qty := range other {
		if l[name] < qty {
			return false
		}
	}
	return true
}

// Equal compares two ledgers componentwise over the union of their names,
// so an explicit zero entry and an absent entry compare equal.
func (l Ledger) Equal(other Ledger) bool {
	for name, qty := range l {
		if other[name] != qty {
			return false
		}
	}
	for name, qty := range other {
		if l[name] != qty {
			return false
		}
	}
	return true
}

// String renders the ledger in its canonical form: "Name: qty" pairs joined
// by ", " with names sorted. ParseLedger inverts it exactly.
func (l Ledger) String() string {
	parts := make([]string, 0, len(l))
	for _, name := range l.Names() {
		parts = append(parts, fmt.Sprintf("%s: %d", name, l[name]))
	}
	return strings.Join(parts, ", ")
}

// ParseLedger parses the canonical "Name: qty, Name: qty" form. Quantities
// must be non-negative integers; decimals are rejected.
func ParseLedger(s string) (Ledger, error) {
	l := Ledger{}
	s = strings.TrimSpace(s)
	if s == "" {
		return l, nil
	}
	for _, pair := range strings.Split(s, ",") {
		name, qty, err := parseQuantity(pair)
		if err != nil {
			return nil, err
		}
		if _, ok := l[name]; ok {
			return nil, fmt.Errorf("parse ledger: duplicate resource %q", name)
		}
		l[name] = qty
	}
	return l, nil
}

// parseQuantity parses one "Name: qty" pair.
func parseQuantity(pair string) (string, int, error) {
	name, amount, ok := strings.Cut(pair, ":")
	if !ok {
		return "", 0, fmt.Errorf("parse ledger: %q is not a \"name: quantity\" pair", strings.TrimSpace(pair))
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", 0, fmt.Errorf("parse ledger: empty resource name in %q", strings.TrimSpace(pair))
	}
	qty, err := strconv.Atoi(strings.TrimSpace(amount))
	if err != nil {
		return "", 0, fmt.Errorf("parse ledger: quantity for %s must be an integer, got %q", name, strings.TrimSpace(amount))
	}
	if qty < 0 {
		return "", 0, fmt.Errorf("parse ledger: quantity for %s must not be negative, got %d", name, qty)
	}
	return name, qty, nil
}

// Delta is a signed per-resource difference between two ledgers. Unlike a
// Ledger it may carry negative quantities.
type Delta map[string]int

// Diff returns a - b componentwise over the union of names, keeping only
// nonzero entries.
func Diff(a, b Ledger) Delta {
	d := Delta{}
	for name, qty := range a {
		if diff := qty - b[name]; diff != 0 {
			d[name] = diff
		}
	}
	for name, qty := range b {
		if _, seen := a[name]; !seen && qty != 0 {
			d[name] = -qty
		}
	}
	return d
}

package resource

import (
	"fmt"
	"strings"
)

// Trade is a directed proposal between two named roles: each side names what
// it gives. A nil *Trade is used where the protocol allows the literal NONE.
type Trade struct {
	GiverRole     string `yaml:"giver_role"`
	GiverGives    Ledger `yaml:"giver_gives"`
	ReceiverRole  string `yaml:"receiver_role"`
	ReceiverGives Ledger `yaml:"receiver_gives"`
}

// Execute applies the trade to the two ledgers, keyed by role, and returns
// fresh ledgers with the quantities moved in both directions. It is
// all-or-nothing: if either side lacks what it offers, it returns an
// InsufficientResourcesError and the input ledgers are untouched.
func (t *Trade) Execute(ledgers map[string]Ledger) (map[string]Ledger, error) {
	giver, ok := ledgers[t.GiverRole]
	if !ok {
		return nil, fmt.Errorf("execute trade: no ledger for role %q", t.GiverRole)
	}
	receiver, ok := ledgers[t.ReceiverRole]
	if !ok {
		return nil, fmt.Errorf("execute trade: no ledger for role %q", t.ReceiverRole)
	}

	if err := checkAfford(t.GiverRole, giver, t.GiverGives); err != nil {
		return nil, err
	}
	if err := checkAfford(t.ReceiverRole, receiver, t.ReceiverGives); err != nil {
		return nil, err
	}

	newGiver, err := giver.Subtract(t.GiverGives)
	if err != nil {
		return nil, err
	}
	newReceiver, err := receiver.Subtract(t.ReceiverGives)
	if err != nil {
		return nil, err
	}
	newGiver = newGiver.Add(t.ReceiverGives)
	newReceiver = newReceiver.Add(t.GiverGives)

	return map[string]Ledger{
		t.GiverRole:    newGiver,
		t.ReceiverRole: newReceiver,
	}, nil
}

func checkAfford(role string, have, owes Ledger) error {
	for _, name := range owes.Names() {
		if have.Count(name) < owes.Count(name) {
			return &InsufficientResourcesError{
				Role:     role,
				Resource: name,
				Have:     have.Count(name),
				Need:     owes.Count(name),
			}
		}
	}
	return nil
}

// String renders the trade in the wire grammar:
// "Role Gives Name: qty | Role Gives Name: qty".
func (t *Trade) String() string {
	if t == nil {
		return "NONE"
	}
	return fmt.Sprintf("%s Gives %s | %s Gives %s",
		t.GiverRole, t.GiverGives, t.ReceiverRole, t.ReceiverGives)
}

// ParseTrade parses the trade grammar. The literal "NONE" yields a nil trade.
// Exactly one giver clause and one receiver clause are expected, joined by
// "|"; amounts must be non-negative integers.
func ParseTrade(s string) (*Trade, error) {
	s = strings.TrimSpace(s)
	if s == "NONE" {
		return nil, nil
	}

	clauses := strings.Split(s, "|")
	if len(clauses) != 2 {
		return nil, fmt.Errorf("want exactly two clauses joined by \"|\", got %d", len(clauses))
	}

	giverRole, giverGives, err := parseClause(clauses[0])
	if err != nil {
		return nil, err
	}
	receiverRole, receiverGives, err := parseClause(clauses[1])
	if err != nil {
		return nil, err
	}

	return &Trade{
		GiverRole:     giverRole,
		GiverGives:    giverGives,
		ReceiverRole:  receiverRole,
		ReceiverGives: receiverGives,
	}, nil
}

// parseClause parses "<Role> Gives <Name>: <qty>[, <Name>: <qty>...]".
func parseClause(clause string) (string, Ledger, error) {
	role, rest, ok := strings.Cut(clause, " Gives ")
	if !ok {
		return "", nil, fmt.Errorf("clause %q is missing \"Gives\"", strings.TrimSpace(clause))
	}
	role = strings.TrimSpace(role)
	if role == "" {
		return "", nil, fmt.Errorf("clause %q has an empty role", strings.TrimSpace(clause))
	}
	gives, err := ParseLedger(rest)
	if err != nil {
		return "", nil, err
	}
	if len(gives) == 0 {
		return "", nil, fmt.Errorf("clause for %s names no resources", role)
	}
	return role, gives, nil
}

package resource

import (
	"errors"
	"testing"
)

func sampleTrade() *Trade {
	return &Trade{
		GiverRole:     "Player RED",
		GiverGives:    NewLedger(map[string]int{"X": 1}),
		ReceiverRole:  "Player BLUE",
		ReceiverGives: NewLedger(map[string]int{"ZUP": 6}),
	}
}

func TestParseTrade(t *testing.T) {
	trade, err := ParseTrade("Player RED Gives X: 1 | Player BLUE Gives ZUP: 6")
	if err != nil {
		t.Fatalf("ParseTrade failed: %v", err)
	}
	if trade.GiverRole != "Player RED" || trade.ReceiverRole != "Player BLUE" {
		t.Errorf("unexpected roles %q / %q", trade.GiverRole, trade.ReceiverRole)
	}
	if trade.GiverGives.Count("X") != 1 || trade.ReceiverGives.Count("ZUP") != 6 {
		t.Errorf("unexpected quantities: %s", trade)
	}
}

func TestParseTradeNone(t *testing.T) {
	trade, err := ParseTrade(" NONE ")
	if err != nil {
		t.Fatalf("ParseTrade(NONE) failed: %v", err)
	}
	if trade != nil {
		t.Errorf("expected nil trade, got %s", trade)
	}
}

func TestParseTradeRejectsBadGrammar(t *testing.T) {
	bad := []string{
		"Player RED Gives X: 0.5 | Player BLUE Gives ZUP: 6",
		"Player RED Gives X: 1",
		"Player RED Gives X: 1 | Player BLUE Gives ZUP: 6 | Player GREEN Gives ZUP: 1",
		"Player RED Takes X: 1 | Player BLUE Gives ZUP: 6",
		"Player RED Gives X: -1 | Player BLUE Gives ZUP: 6",
		"Player RED Gives | Player BLUE Gives ZUP: 6",
	}
	for _, s := range bad {
		if _, err := ParseTrade(s); err == nil {
			t.Errorf("ParseTrade(%q) should have failed", s)
		}
	}
}

func TestTradeStringRoundTrip(t *testing.T) {
	trade := sampleTrade()
	parsed, err := ParseTrade(trade.String())
	if err != nil {
		t.Fatalf("re-parse of %q failed: %v", trade, err)
	}
	if parsed.String() != trade.String() {
		t.Errorf("round trip changed trade: %q vs %q", parsed, trade)
	}
}

func TestExecuteTrade(t *testing.T) {
	trade := sampleTrade()
	initial := map[string]Ledger{
		"Player RED":  NewLedger(map[string]int{"X": 1}),
		"Player BLUE": NewLedger(map[string]int{"ZUP": 10}),
	}

	final, err := trade.Execute(initial)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if !final["Player RED"].Equal(NewLedger(map[string]int{"X": 0, "ZUP": 6})) {
		t.Errorf("unexpected seller ledger %q", final["Player RED"])
	}
	if !final["Player BLUE"].Equal(NewLedger(map[string]int{"ZUP": 4, "X": 1})) {
		t.Errorf("unexpected buyer ledger %q", final["Player BLUE"])
	}

	// Resources are conserved componentwise.
	before := initial["Player RED"].Add(initial["Player BLUE"])
	after := final["Player RED"].Add(final["Player BLUE"])
	if !before.Equal(after) {
		t.Errorf("trade created or destroyed resources: %q vs %q", before, after)
	}

	// Inputs are untouched.
	if initial["Player RED"].Count("X") != 1 || initial["Player BLUE"].Count("ZUP") != 10 {
		t.Error("Execute mutated the input ledgers")
	}
}

func TestExecuteInsufficient(t *testing.T) {
	trade := sampleTrade()
	ledgers := map[string]Ledger{
		"Player RED":  NewLedger(map[string]int{"X": 1}),
		"Player BLUE": NewLedger(map[string]int{"ZUP": 3}),
	}

	_, err := trade.Execute(ledgers)
	var insErr *InsufficientResourcesError
	if !errors.As(err, &insErr) {
		t.Fatalf("expected InsufficientResourcesError, got %v", err)
	}
	if insErr.Role != "Player BLUE" || insErr.Resource != "ZUP" {
		t.Errorf("error names wrong side: %v", insErr)
	}

	// No partial execution.
	if ledgers["Player RED"].Count("X") != 1 || ledgers["Player BLUE"].Count("ZUP") != 3 {
		t.Error("failed Execute changed a ledger")
	}
}

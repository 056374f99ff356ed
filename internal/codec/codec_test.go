package codec

import (
	"errors"
	"strings"
	"testing"

	"github.com/tatianab/trade-game/internal/goal"
	"github.com/tatianab/trade-game/internal/resource"
)

const validProposal = `<proposal count> 2 </proposal count>
<my resources> X: 1 </my resources>
<my goals> Sell X for the highest possible ZUP </my goals>
<reason> Anchor high, concede slowly. </reason>
<player answer> PROPOSAL </player answer>
<newly proposed trade> Player RED Gives X: 1 | Player BLUE Gives ZUP: 8 </newly proposed trade>
<message> 8 ZUP and X is yours. </message>`

const validAccept = `<proposal count> 2 </proposal count>
<my resources> ZUP: 10 </my resources>
<my goals> Buy X for minimum ZUP </my goals>
<reason> Below my walk-away price. </reason>
<player answer> ACCEPT </player answer>
<newly proposed trade> NONE </newly proposed trade>
<message> Deal. </message>`

func TestParseProposal(t *testing.T) {
	msg, err := Parse(validProposal)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if msg.Public.Answer != AnswerProposal {
		t.Errorf("expected PROPOSAL, got %s", msg.Public.Answer)
	}
	if msg.Public.Trade == nil || msg.Public.Trade.ReceiverGives.Count("ZUP") != 8 {
		t.Errorf("unexpected trade %s", msg.Public.Trade)
	}
	if msg.Public.Message != "8 ZUP and X is yours." {
		t.Errorf("unexpected message %q", msg.Public.Message)
	}
	if msg.Secret.ProposalCount != 2 {
		t.Errorf("expected proposal count 2, got %d", msg.Secret.ProposalCount)
	}
	if !msg.Secret.Resources.Equal(resource.NewLedger(map[string]int{"X": 1})) {
		t.Errorf("unexpected resources %q", msg.Secret.Resources)
	}
	if msg.Secret.Reasoning != "Anchor high, concede slowly." {
		t.Errorf("unexpected reasoning %q", msg.Secret.Reasoning)
	}
}

func TestParseAccept(t *testing.T) {
	msg, err := Parse(validAccept)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if msg.Public.Answer != AnswerAccept {
		t.Errorf("expected ACCEPT, got %s", msg.Public.Answer)
	}
	if msg.Public.Trade != nil {
		t.Errorf("expected no trade, got %s", msg.Public.Trade)
	}
}

func TestParseMissingTag(t *testing.T) {
	raw := strings.Replace(validProposal, "<reason>", "<thoughts>", 1)
	raw = strings.Replace(raw, "</reason>", "</thoughts>", 1)

	_, err := Parse(raw)
	var tagErr *TagParseError
	if !errors.As(err, &tagErr) {
		t.Fatalf("expected TagParseError, got %v", err)
	}
	if tagErr.Tag != ReasoningTag {
		t.Errorf("error should name the %q tag, got %q", ReasoningTag, tagErr.Tag)
	}
}

func TestParseDuplicatedTag(t *testing.T) {
	raw := validProposal + "\n<message> extra </message>"

	_, err := Parse(raw)
	var tagErr *TagParseError
	if !errors.As(err, &tagErr) {
		t.Fatalf("expected TagParseError, got %v", err)
	}
	if tagErr.Tag != MessageTag {
		t.Errorf("error should name the %q tag, got %q", MessageTag, tagErr.Tag)
	}
}

func TestParseMisorderedTags(t *testing.T) {
	// Move the message tag ahead of everything else.
	raw := "<message> early </message>\n" + strings.Replace(validProposal, "<message> 8 ZUP and X is yours. </message>", "", 1)

	_, err := Parse(raw)
	var tagErr *TagParseError
	if !errors.As(err, &tagErr) {
		t.Fatalf("expected TagParseError, got %v", err)
	}
}

func TestParseUnknownTagsIgnored(t *testing.T) {
	raw := "<preamble> ignore me </preamble>\n" + validProposal
	if _, err := Parse(raw); err != nil {
		t.Fatalf("unknown extra tag should be ignored, got %v", err)
	}
}

func TestParseBadAnswer(t *testing.T) {
	raw := strings.Replace(validProposal, "PROPOSAL", "MAYBE", 1)
	_, err := Parse(raw)
	var tagErr *TagParseError
	if !errors.As(err, &tagErr) || tagErr.Tag != PlayerAnswerTag {
		t.Fatalf("expected TagParseError on %q, got %v", PlayerAnswerTag, err)
	}
}

func TestParseDecimalProposalCount(t *testing.T) {
	raw := strings.Replace(validProposal, "<proposal count> 2 ", "<proposal count> 2.5 ", 1)
	_, err := Parse(raw)
	var tagErr *TagParseError
	if !errors.As(err, &tagErr) || tagErr.Tag != ProposalCountTag {
		t.Fatalf("expected TagParseError on %q, got %v", ProposalCountTag, err)
	}
}

func TestParseDecimalTrade(t *testing.T) {
	raw := strings.Replace(validProposal, "X: 1 |", "X: 0.5 |", 1)
	_, err := Parse(raw)
	var tradeErr *TradeParseError
	if !errors.As(err, &tradeErr) {
		t.Fatalf("expected TradeParseError, got %v", err)
	}
}

func TestParseTradeRequiredUnderProposal(t *testing.T) {
	raw := strings.Replace(validProposal,
		"Player RED Gives X: 1 | Player BLUE Gives ZUP: 8", "NONE", 1)
	_, err := Parse(raw)
	var tradeErr *TradeParseError
	if !errors.As(err, &tradeErr) {
		t.Fatalf("expected TradeParseError, got %v", err)
	}
}

func TestParseNonProposalForcesNone(t *testing.T) {
	raw := strings.Replace(validAccept, "NONE",
		"Player RED Gives X: 1 | Player BLUE Gives ZUP: 8", 1)
	_, err := Parse(raw)
	var tradeErr *TradeParseError
	if !errors.As(err, &tradeErr) {
		t.Fatalf("expected TradeParseError, got %v", err)
	}
}

func TestRenderPublicOmitsSecrets(t *testing.T) {
	msg, err := Parse(validProposal)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	public := msg.RenderPublic()
	secrets := []string{
		"Anchor high",                          // reasoning
		"Sell X for the highest possible ZUP",  // goals
		"<" + ResourcesTag + ">",               // resources tag
		"<" + ProposalCountTag + ">",           // proposal count tag
	}
	for _, s := range secrets {
		if strings.Contains(public, s) {
			t.Errorf("public render leaks secret content %q:\n%s", s, public)
		}
	}

	for _, want := range []string{"PROPOSAL", "ZUP: 8", "8 ZUP and X is yours."} {
		if !strings.Contains(public, want) {
			t.Errorf("public render is missing %q:\n%s", want, public)
		}
	}
}

func TestInstantiatePrompt(t *testing.T) {
	cfg := PromptConfig{
		SellerRole:        "Player RED",
		BuyerRole:         "Player BLUE",
		ObjectName:        "X",
		MoneyToken:        "ZUP",
		StartingResources: resource.NewLedger(map[string]int{"X": 1}),
		GoalKind:          goal.Seller,
		GoalText:          "Sell X for the highest possible ZUP",
		MaxProposals:      4,
		SocialBehaviour:   "Be firm but cordial.",
	}

	prompt, err := InstantiatePrompt(cfg)
	if err != nil {
		t.Fatalf("InstantiatePrompt failed: %v", err)
	}
	for _, want := range []string{
		"Player RED", "Player BLUE", "X: 1",
		"at most 4 proposals", "Be firm but cordial.",
		"<" + ProposedTradeTag + ">",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("seller prompt is missing %q", want)
		}
	}

	// Same config twice yields the same text: the function is pure.
	again, err := InstantiatePrompt(cfg)
	if err != nil {
		t.Fatalf("InstantiatePrompt failed: %v", err)
	}
	if again != prompt {
		t.Error("InstantiatePrompt is not deterministic")
	}

	cfg.GoalKind = goal.Buyer
	buyerPrompt, err := InstantiatePrompt(cfg)
	if err != nil {
		t.Fatalf("InstantiatePrompt(buyer) failed: %v", err)
	}
	if !strings.Contains(buyerPrompt, "SELLER-BELOW-TARGET LOCK") {
		t.Error("buyer prompt should use the ALIGN variant")
	}
}

package codec

import (
	"bytes"
	_ "embed"
	"text/template"

	"github.com/tatianab/trade-game/internal/goal"
	"github.com/tatianab/trade-game/internal/resource"
)

//go:embed prompts/trader.txt
var traderPrompt string

//go:embed prompts/buyer_align.txt
var buyerAlignPrompt string

// PromptConfig carries everything a role-specific game prompt needs. It is
// assembled once at game setup from the game settings.
type PromptConfig struct {
	SellerRole        string
	BuyerRole         string
	ObjectName        string
	MoneyToken        string
	StartingResources resource.Ledger
	GoalKind          goal.Kind
	GoalText          string
	MaxProposals      int
	SocialBehaviour   string
}

// InstantiatePrompt renders the static instruction text for one player. It
// is a pure function of the config: buyers get the structured ALIGN
// negotiation prompt, sellers get the generic trading prompt.
func InstantiatePrompt(cfg PromptConfig) (string, error) {
	text := traderPrompt
	if cfg.GoalKind == goal.Buyer {
		text = buyerAlignPrompt
	}
	tmpl, err := template.New("prompt").Parse(text)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, cfg); err != nil {
		return "", err
	}
	return buf.String(), nil
}

package game

import (
	"github.com/tatianab/trade-game/internal/codec"
	"github.com/tatianab/trade-game/internal/goal"
	"github.com/tatianab/trade-game/internal/resource"
)

// Phase marks where a snapshot sits in the game's lifecycle.
type Phase string

const (
	PhaseStart Phase = "START"
	PhaseTurn  Phase = "TURN"
	PhaseEnd   Phase = "END"
)

// PlayerSettings is the static per-player configuration recorded in the
// START snapshot.
type PlayerSettings struct {
	Role             string          `yaml:"role"`
	Goal             goal.Goal       `yaml:"goal"`
	InitialResources resource.Ledger `yaml:"initial_resources"`
	SocialBehaviour  string          `yaml:"social_behaviour"`
}

// Settings is everything fixed at game construction.
type Settings struct {
	SupportSet   resource.Ledger  `yaml:"support_set"`
	MoneyToken   string           `yaml:"money_token"`
	Iterations   int              `yaml:"iterations"`
	MaxProposals int              `yaml:"max_proposals"`
	Players      []PlayerSettings `yaml:"players"`
}

// Summary records the outcome computed when the game ends.
type Summary struct {
	FinalAnswer      codec.Answer               `yaml:"final_answer"`
	Trade            *resource.Trade            `yaml:"trade"`
	Goals            map[string]goal.Goal       `yaml:"goals"`
	InitialResources map[string]resource.Ledger `yaml:"initial_resources"`
	FinalResources   map[string]resource.Ledger `yaml:"final_resources"`
	Outcome          map[string]float64         `yaml:"outcome"`
}

// Snapshot is one entry of the append-only game history. Exactly one of
// Settings (START), Public+Secret (TURN) or Summary (END, may be absent for
// an immediately terminated game) is populated.
type Snapshot struct {
	Phase     Phase             `yaml:"phase"`
	Iteration int               `yaml:"iteration"`
	Turn      string            `yaml:"turn,omitempty"`
	Settings  *Settings         `yaml:"settings,omitempty"`
	Public    *codec.PublicInfo `yaml:"public,omitempty"`
	Secret    *codec.SecretInfo `yaml:"secret,omitempty"`
	Summary   *Summary          `yaml:"summary,omitempty"`
}

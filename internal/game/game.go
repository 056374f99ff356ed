// Package game runs the alternating-turn negotiation between two agents and
// owns the append-only history of snapshots.
package game

import (
	"context"
	"fmt"

	"github.com/tatianab/trade-game/internal/agent"
	"github.com/tatianab/trade-game/internal/codec"
	"github.com/tatianab/trade-game/internal/goal"
	"github.com/tatianab/trade-game/internal/resource"
)

// DefaultMoneyToken is the currency the buyer pays with.
const DefaultMoneyToken = "ZUP"

// Player pairs an agent backend with its negotiation role.
type Player struct {
	Agent             agent.Agent
	Role              string
	Goal              goal.Goal
	StartingResources resource.Ledger
	SocialBehaviour   string
}

// Config is the construction surface of a game.
type Config struct {
	Players    [2]Player
	Iterations int
	MoneyToken string // defaults to DefaultMoneyToken
}

// Game drives one negotiation to completion. It is single-threaded: turns
// strictly alternate and the engine blocks on each agent response. It is the
// sole writer of its history.
type Game struct {
	settings      Settings
	players       [2]Player
	history       []Snapshot
	conversations [2][]agent.Turn

	// pendingTrade is the most recent PROPOSAL not yet answered. The
	// accepted trade is read from here, never by indexing the history.
	pendingTrade  *resource.Trade
	proposalsUsed [2]int

	observer func(Snapshot)
}

// New validates the configuration, renders each player's role prompt and
// initializes the agents. Construction fails with
// UnsupportedResourceCountError if any starting ledger names more than one
// resource kind.
func New(cfg Config) (*Game, error) {
	if cfg.Iterations < 2 {
		return nil, fmt.Errorf("need at least 2 iterations, got %d", cfg.Iterations)
	}
	moneyToken := cfg.MoneyToken
	if moneyToken == "" {
		moneyToken = DefaultMoneyToken
	}

	var seller, buyer *Player
	for i := range cfg.Players {
		p := &cfg.Players[i]
		if p.Agent == nil {
			return nil, fmt.Errorf("player %s has no agent", p.Role)
		}
		if len(p.StartingResources) != 1 {
			return nil, &UnsupportedResourceCountError{Role: p.Role, Count: len(p.StartingResources)}
		}
		switch p.Goal.Kind {
		case goal.Seller:
			seller = p
		case goal.Buyer:
			buyer = p
		}
	}
	if seller == nil || buyer == nil {
		return nil, fmt.Errorf("need exactly one buyer and one seller")
	}

	// The support set is the single object kind being sold.
	objectName := seller.StartingResources.Names()[0]
	supportSet := resource.NewLedger(map[string]int{objectName: 0})
	maxProposals := cfg.Iterations/2 - 1

	settings := Settings{
		SupportSet:   supportSet,
		MoneyToken:   moneyToken,
		Iterations:   cfg.Iterations,
		MaxProposals: maxProposals,
	}
	for _, p := range cfg.Players {
		settings.Players = append(settings.Players, PlayerSettings{
			Role:             p.Role,
			Goal:             p.Goal,
			InitialResources: p.StartingResources,
			SocialBehaviour:  p.SocialBehaviour,
		})
	}

	g := &Game{
		settings: settings,
		players:  cfg.Players,
	}

	for i := range g.players {
		p := &g.players[i]
		prompt, err := codec.InstantiatePrompt(codec.PromptConfig{
			SellerRole:        seller.Role,
			BuyerRole:         buyer.Role,
			ObjectName:        objectName,
			MoneyToken:        moneyToken,
			StartingResources: p.StartingResources,
			GoalKind:          p.Goal.Kind,
			GoalText:          p.Goal.Description,
			MaxProposals:      maxProposals,
			SocialBehaviour:   p.SocialBehaviour,
		})
		if err != nil {
			return nil, fmt.Errorf("instantiate prompt for %s: %w", p.Role, err)
		}
		p.Agent.InitAgent(prompt, p.Role)
	}

	g.append(Snapshot{Phase: PhaseStart, Settings: &g.settings})
	return g, nil
}

// SetObserver registers a callback invoked for every appended snapshot.
func (g *Game) SetObserver(fn func(Snapshot)) {
	g.observer = fn
}

// Settings returns the game's fixed configuration.
func (g *Game) Settings() Settings {
	return g.settings
}

// History returns the snapshots appended so far, oldest first.
func (g *Game) History() []Snapshot {
	out := make([]Snapshot, len(g.history))
	copy(out, g.history)
	return out
}

// Run plays turns until a terminal answer or the iteration ceiling, then
// appends the END snapshot. Any decode or validation failure aborts the run;
// the engine never skips or defaults a malformed turn.
func (g *Game) Run(ctx context.Context) error {
	for i := 1; i <= g.settings.Iterations; i++ {
		idx := (i - 1) % 2
		msg, err := g.playTurn(ctx, i, idx)
		if err != nil {
			return fmt.Errorf("turn %d (%s): %w", i, g.players[idx].Role, err)
		}
		if msg.Public.Answer.Terminal() || i == g.settings.Iterations {
			return g.finish(i, msg)
		}
	}
	return nil
}

func (g *Game) playTurn(ctx context.Context, iteration, idx int) (codec.AgentMessage, error) {
	player := &g.players[idx]

	raw, err := player.Agent.Generate(ctx, g.conversations[idx])
	if err != nil {
		return codec.AgentMessage{}, err
	}

	msg, err := codec.Parse(raw)
	if err != nil {
		return codec.AgentMessage{}, err
	}

	if msg.Public.Answer == codec.AnswerProposal {
		if err := g.validateProposal(idx, msg.Public.Trade); err != nil {
			return codec.AgentMessage{}, err
		}
		g.proposalsUsed[idx]++
		g.pendingTrade = msg.Public.Trade
	}

	g.append(Snapshot{
		Phase:     PhaseTurn,
		Iteration: iteration,
		Turn:      player.Role,
		Public:    &msg.Public,
		Secret:    &msg.Secret,
	})

	// The acting player keeps its full raw output; the opponent only ever
	// sees the public render.
	g.conversations[idx] = append(g.conversations[idx], agent.Turn{Role: player.Role, Text: raw})
	other := 1 - idx
	g.conversations[other] = append(g.conversations[other], agent.Turn{Role: player.Role, Text: msg.RenderPublic()})

	return msg, nil
}

// validateProposal enforces the business rules on a PROPOSAL: the proposal
// budget, known roles, and feasibility against the initial ledgers.
func (g *Game) validateProposal(idx int, trade *resource.Trade) error {
	if g.proposalsUsed[idx] >= g.settings.MaxProposals {
		return &ProposalBudgetError{Role: g.players[idx].Role, Max: g.settings.MaxProposals}
	}
	ledgers := g.initialLedgers()
	for _, role := range []string{trade.GiverRole, trade.ReceiverRole} {
		if _, ok := ledgers[role]; !ok {
			return fmt.Errorf("trade names unknown role %q", role)
		}
	}
	if _, err := trade.Execute(ledgers); err != nil {
		return err
	}
	return nil
}

func (g *Game) initialLedgers() map[string]resource.Ledger {
	ledgers := make(map[string]resource.Ledger, len(g.players))
	for _, p := range g.players {
		ledgers[p.Role] = p.StartingResources
	}
	return ledgers
}

// finish appends the terminal snapshot. A game that terminated on its very
// first turn has no completed proposal round, so its END snapshot carries no
// summary. Otherwise the pending trade is executed against the initial
// ledgers when the last answer was ACCEPT, and each player's goal valuation
// is evaluated on final minus initial.
func (g *Game) finish(iteration int, last codec.AgentMessage) error {
	if iteration <= 1 {
		g.append(Snapshot{Phase: PhaseEnd, Iteration: iteration})
		return nil
	}

	initial := g.initialLedgers()
	final := initial
	finalAnswer := last.Public.Answer

	if finalAnswer == codec.AnswerAccept && g.pendingTrade != nil {
		executed, err := g.pendingTrade.Execute(initial)
		if err != nil {
			return fmt.Errorf("execute accepted trade: %w", err)
		}
		final = executed
	}

	summary := &Summary{
		FinalAnswer:      finalAnswer,
		Trade:            g.pendingTrade,
		Goals:            make(map[string]goal.Goal, len(g.players)),
		InitialResources: initial,
		FinalResources:   final,
		Outcome:          make(map[string]float64, len(g.players)),
	}
	for _, p := range g.players {
		summary.Goals[p.Role] = p.Goal
		summary.Outcome[p.Role] = p.Goal.Value(resource.Diff(final[p.Role], initial[p.Role]))
	}

	g.append(Snapshot{Phase: PhaseEnd, Iteration: iteration, Summary: summary})
	return nil
}

// append is the single mutation point of the history.
func (g *Game) append(s Snapshot) {
	g.history = append(g.history, s)
	if g.observer != nil {
		g.observer(s)
	}
}

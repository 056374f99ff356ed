// Simulates a full negotiation offline with scripted agents. Useful for
// exercising the engine, codec and persistence without an API key.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/tatianab/trade-game/internal/agent"
	"github.com/tatianab/trade-game/internal/game"
	"github.com/tatianab/trade-game/internal/goal"
	"github.com/tatianab/trade-game/internal/resource"
)

const sellerOpening = `<proposal count> 1 </proposal count>
<my resources> X: 1 </my resources>
<my goals> Sell X for the highest possible ZUP </my goals>
<reason> Open high to anchor the price. </reason>
<player answer> PROPOSAL </player answer>
<newly proposed trade> Player RED Gives X: 1 | Player BLUE Gives ZUP: 9 </newly proposed trade>
<message> X is in high demand. 9 ZUP and it is yours. </message>`

const buyerCounter = `<proposal count> 1 </proposal count>
<my resources> ZUP: 10 </my resources>
<my goals> Buy X for minimum ZUP </my goals>
<reason> 9 is above target. Counter low, leave room to concede. </reason>
<player answer> PROPOSAL </player answer>
<newly proposed trade> Player RED Gives X: 1 | Player BLUE Gives ZUP: 5 </newly proposed trade>
<message> 9 is too steep. I can do 5. </message>`

const sellerCounter = `<proposal count> 2 </proposal count>
<my resources> X: 1 </my resources>
<my goals> Sell X for the highest possible ZUP </my goals>
<reason> Meet closer to the middle, 7 still clears cost. </reason>
<player answer> PROPOSAL </player answer>
<newly proposed trade> Player RED Gives X: 1 | Player BLUE Gives ZUP: 7 </newly proposed trade>
<message> Let's meet in the middle: 7. </message>`

const buyerAccept = `<proposal count> 2 </proposal count>
<my resources> ZUP: 10 </my resources>
<my goals> Buy X for minimum ZUP </my goals>
<reason> 7 is under my walk-away price. Close the deal. </reason>
<player answer> ACCEPT </player answer>
<newly proposed trade> NONE </newly proposed trade>
<message> Deal. 7 ZUP for X. </message>`

func main() {
	seller := agent.NewScriptedAgent(
		agent.Response{Text: sellerOpening},
		agent.Response{Text: sellerCounter},
	)
	buyer := agent.NewScriptedAgent(
		agent.Response{Text: buyerCounter},
		agent.Response{Text: buyerAccept},
	)

	sellerGoal, err := goal.New(goal.Seller, "Sell X for the highest possible ZUP", map[string]float64{"ZUP": 1, "X": -2})
	if err != nil {
		log.Fatalf("Failed to build seller goal: %v", err)
	}
	buyerGoal, err := goal.New(goal.Buyer, "Buy X for minimum ZUP", map[string]float64{"ZUP": 1, "X": 8})
	if err != nil {
		log.Fatalf("Failed to build buyer goal: %v", err)
	}

	g, err := game.New(game.Config{
		Players: [2]game.Player{
			{
				Agent:             seller,
				Role:              "Player RED",
				Goal:              sellerGoal,
				StartingResources: resource.NewLedger(map[string]int{"X": 1}),
				SocialBehaviour:   "Be firm but cordial.",
			},
			{
				Agent:             buyer,
				Role:              "Player BLUE",
				Goal:              buyerGoal,
				StartingResources: resource.NewLedger(map[string]int{"ZUP": 10}),
				SocialBehaviour:   "Be curt and businesslike.",
			},
		},
		Iterations: 10,
	})
	if err != nil {
		log.Fatalf("Failed to construct game: %v", err)
	}

	g.SetObserver(func(s game.Snapshot) {
		switch s.Phase {
		case game.PhaseTurn:
			fmt.Printf("--- Turn %d: %s ---\n", s.Iteration, s.Turn)
			fmt.Printf("Answer: %s\n", s.Public.Answer)
			fmt.Printf("Trade: %s\n", s.Public.Trade)
			fmt.Printf("Message: %s\n\n", s.Public.Message)
		case game.PhaseEnd:
			fmt.Println("--- Game over ---")
		}
	})

	if err := g.Run(context.Background()); err != nil {
		log.Fatalf("Run failed: %v", err)
	}

	history := g.History()
	end := history[len(history)-1]
	if end.Summary == nil {
		fmt.Println("No completed proposal round.")
		return
	}
	fmt.Printf("Final answer: %s\n", end.Summary.FinalAnswer)
	fmt.Printf("Accepted trade: %s\n", end.Summary.Trade)
	for role, score := range end.Summary.Outcome {
		fmt.Printf("%s: final %s, outcome %.2f\n", role, end.Summary.FinalResources[role], score)
	}
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/tatianab/trade-game/internal/agent"
	"github.com/tatianab/trade-game/internal/config"
	"github.com/tatianab/trade-game/internal/game"
	"github.com/tatianab/trade-game/internal/goal"
	"github.com/tatianab/trade-game/internal/resource"
	"github.com/tatianab/trade-game/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	configPath := "game.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is not set")
	}

	ctx := context.Background()

	var players [2]game.Player
	for i, pc := range cfg.Players {
		kind, err := pc.GoalKind()
		if err != nil {
			return err
		}
		playerGoal, err := goal.New(kind, pc.GoalText, pc.Valuation)
		if err != nil {
			return err
		}

		backend, err := agent.NewGeminiAgent(ctx, cfg.GeminiAPIKey, cfg.Model)
		if err != nil {
			return err
		}
		defer backend.Close()

		players[i] = game.Player{
			Agent:             agent.WithRetry(backend, agent.RetryConfig{MaxAttempts: 3}),
			Role:              pc.Role,
			Goal:              playerGoal,
			StartingResources: resource.NewLedger(pc.StartingResources),
			SocialBehaviour:   pc.SocialBehaviour,
		}
	}

	g, err := game.New(game.Config{
		Players:    players,
		Iterations: cfg.Iterations,
		MoneyToken: cfg.MoneyToken,
	})
	if err != nil {
		return err
	}

	return tui.Run(g)
}

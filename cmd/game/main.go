// Command game runs one buyer/seller negotiation headlessly and records the
// result.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/tatianab/trade-game/internal/agent"
	"github.com/tatianab/trade-game/internal/config"
	"github.com/tatianab/trade-game/internal/game"
	"github.com/tatianab/trade-game/internal/goal"
	"github.com/tatianab/trade-game/internal/resource"
	"github.com/tatianab/trade-game/internal/store"
)

func main() {
	configPath := flag.String("config", "game.yaml", "path to the game config")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load .env if present.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.GeminiAPIKey == "" {
		slog.Error("GEMINI_API_KEY is not set")
		os.Exit(1)
	}
	game.SaveDir = cfg.SaveDir

	ctx := context.Background()

	var players [2]game.Player
	for i, pc := range cfg.Players {
		kind, err := pc.GoalKind()
		if err != nil {
			slog.Error("bad player config", "error", err)
			os.Exit(1)
		}
		playerGoal, err := goal.New(kind, pc.GoalText, pc.Valuation)
		if err != nil {
			slog.Error("bad player goal", "role", pc.Role, "error", err)
			os.Exit(1)
		}

		backend, err := agent.NewGeminiAgent(ctx, cfg.GeminiAPIKey, cfg.Model)
		if err != nil {
			slog.Error("failed to create agent", "role", pc.Role, "error", err)
			os.Exit(1)
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
		slog.Error("failed to construct game", "error", err)
		os.Exit(1)
	}

	g.SetObserver(func(s game.Snapshot) {
		switch s.Phase {
		case game.PhaseTurn:
			slog.Info("turn played",
				"iteration", s.Iteration,
				"player", s.Turn,
				"answer", s.Public.Answer,
				"trade", s.Public.Trade.String(),
			)
		case game.PhaseEnd:
			slog.Info("game over", "iteration", s.Iteration)
		}
	})

	if err := g.Run(ctx); err != nil {
		slog.Error("run aborted", "error", err)
		os.Exit(1)
	}

	history := g.History()
	runName := time.Now().UTC().Format("20060102-150405")
	if err := game.SaveHistory(runName, history); err != nil {
		slog.Error("failed to save history", "error", err)
		os.Exit(1)
	}
	slog.Info("history saved", "run", runName, "dir", cfg.SaveDir)

	buyerRole, sellerRole := rolesByKind(players)
	db, err := store.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open results store", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	rec, err := db.RecordRun(history, buyerRole, sellerRole)
	if err != nil {
		slog.Error("failed to record run", "error", err)
		os.Exit(1)
	}

	end := history[len(history)-1]
	if end.Summary == nil {
		slog.Info("game ended with no completed proposal round", "run_id", rec.ID)
		return
	}
	slog.Info("outcome",
		"run_id", rec.ID,
		"final_answer", end.Summary.FinalAnswer,
		"trade", end.Summary.Trade.String(),
	)
	for role, score := range end.Summary.Outcome {
		fmt.Printf("%s: final %s, outcome %.2f\n",
			role, end.Summary.FinalResources[role], score)
	}
}

func rolesByKind(players [2]game.Player) (buyerRole, sellerRole string) {
	for _, p := range players {
		switch p.Goal.Kind {
		case goal.Buyer:
			buyerRole = p.Role
		case goal.Seller:
			sellerRole = p.Role
		}
	}
	return buyerRole, sellerRole
}

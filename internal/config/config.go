// Package config loads the game configuration: a YAML file describing the
// players and negotiation parameters, plus the API key from the
// environment.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tatianab/trade-game/internal/goal"
)

// PlayerConfig describes one negotiating player.
type PlayerConfig struct {
	Role              string             `yaml:"role"`
	Goal              string             `yaml:"goal"` // "buyer" or "seller"
	GoalText          string             `yaml:"goal_text"`
	Valuation         map[string]float64 `yaml:"valuation"`
	StartingResources map[string]int     `yaml:"starting_resources"`
	SocialBehaviour   string             `yaml:"social_behaviour"`
}

// Config holds the full application configuration.
type Config struct {
	Model      string         `yaml:"model"`
	Iterations int            `yaml:"iterations"`
	MoneyToken string         `yaml:"money_token"`
	SaveDir    string         `yaml:"save_dir"`
	DBPath     string         `yaml:"db_path"`
	Players    []PlayerConfig `yaml:"players"`

	GeminiAPIKey string `yaml:"-"`
}

// Load reads the YAML config at path and the GEMINI_API_KEY environment
// variable.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{
		Model:      "gemini-2.5-flash",
		Iterations: 10,
		SaveDir:    ".runs",
		DBPath:     "runs.db",
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	return cfg, nil
}

// Validate checks the structural constraints the engine relies on.
func (c *Config) Validate() error {
	if len(c.Players) != 2 {
		return fmt.Errorf("config must declare exactly 2 players, got %d", len(c.Players))
	}
	if c.Iterations < 2 {
		return fmt.Errorf("iterations must be at least 2, got %d", c.Iterations)
	}
	for _, p := range c.Players {
		if p.Role == "" {
			return fmt.Errorf("every player needs a role label")
		}
		if _, err := p.GoalKind(); err != nil {
			return err
		}
		if len(p.StartingResources) != 1 {
			return fmt.Errorf("player %s must start with exactly one resource kind, got %d", p.Role, len(p.StartingResources))
		}
	}
	return nil
}

// GoalKind maps the config's goal string to its typed kind.
func (p PlayerConfig) GoalKind() (goal.Kind, error) {
	switch p.Goal {
	case "buyer":
		return goal.Buyer, nil
	case "seller":
		return goal.Seller, nil
	}
	return "", fmt.Errorf("player %s: goal must be \"buyer\" or \"seller\", got %q", p.Role, p.Goal)
}

// MaxProposals derives the per-player proposal budget from the iteration
// ceiling.
func (c *Config) MaxProposals() int {
	return c.Iterations/2 - 1
}

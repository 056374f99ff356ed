// Package agent defines the collaborator contract the game engine speaks to
// and the backends that implement it.
package agent

import "context"

// Turn is one entry of a player's accumulated conversation context. Role is
// the conversation label of whoever produced it.
type Turn struct {
	Role string
	Text string
}

// Agent is one negotiating player's language backend. InitAgent is called
// once at game setup with the role-specific instruction prompt; Generate is
// called once per turn with the player's full accumulated conversation and
// must return the raw tagged response text.
type Agent interface {
	InitAgent(prompt, role string)
	Generate(ctx context.Context, conversation []Turn) (string, error)
}

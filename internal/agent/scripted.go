package agent

import (
	"context"
	"fmt"
	"sync"
)

// Response configures one scripted turn.
type Response struct {
	Text string
	Err  error
}

// ScriptedAgent replays a fixed sequence of responses. It is used by tests
// and by the offline simulation to drive games deterministically.
type ScriptedAgent struct {
	mu        sync.Mutex
	index     int
	responses []Response

	Prompt string
	Role   string
}

func NewScriptedAgent(responses ...Response) *ScriptedAgent {
	cloned := make([]Response, len(responses))
	copy(cloned, responses)
	return &ScriptedAgent{responses: cloned}
}

var _ Agent = (*ScriptedAgent)(nil)

func (a *ScriptedAgent) InitAgent(prompt, role string) {
	a.Prompt = prompt
	a.Role = role
}

func (a *ScriptedAgent) Generate(_ context.Context, _ []Turn) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.index >= len(a.responses) {
		return "", fmt.Errorf("script exhausted at step %d", a.index+1)
	}
	current := a.responses[a.index]
	a.index++
	if current.Err != nil {
		return "", current.Err
	}
	return current.Text, nil
}

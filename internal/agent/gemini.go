package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiAgent plays a negotiation role backed by the Gemini API.
type GeminiAgent struct {
	client *genai.Client
	model  *genai.GenerativeModel
	prompt string
	role   string
}

// NewGeminiAgent creates an agent using the given model name
// (e.g. "gemini-2.5-flash").
func NewGeminiAgent(ctx context.Context, apiKey, modelName string) (*GeminiAgent, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &GeminiAgent{
		client: client,
		model:  client.GenerativeModel(modelName),
	}, nil
}

func (a *GeminiAgent) Close() {
	a.client.Close()
}

var _ Agent = (*GeminiAgent)(nil)

// InitAgent stores the role-specific game prompt. It is sent ahead of the
// conversation on every Generate call.
func (a *GeminiAgent) InitAgent(prompt, role string) {
	a.prompt = prompt
	a.role = role
}

// Generate renders the game prompt plus the conversation so far into a
// single request and returns the model's raw text.
func (a *GeminiAgent) Generate(ctx context.Context, conversation []Turn) (string, error) {
	var b strings.Builder
	b.WriteString(a.prompt)
	b.WriteString("\n\nConversation so far:\n")
	for _, turn := range conversation {
		fmt.Fprintf(&b, "\n%s:\n%s\n", turn.Role, turn.Text)
	}
	fmt.Fprintf(&b, "\nYou are %s. Respond now with the full tagged format.\n", a.role)

	resp, err := a.model.GenerateContent(ctx, genai.Text(b.String()))
	if err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content returned from Gemini")
	}

	part := resp.Candidates[0].Content.Parts[0]
	text, ok := part.(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response type from Gemini")
	}

	return strings.TrimSpace(string(text)), nil
}

// Package replygen produces the persona replies for routine conversation.
// The rest of the bot only depends on the Generator interface and treats the
// output as opaque text; generation failures fall back to a fixed line.
package replygen

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Fallback is returned whenever generation fails or comes back empty.
const Fallback = "Sorry, love, I'm a bit tangled up. Please try again in a moment."

const systemPrompt = `You are AUNTIE EMZ, a warm, calm, slightly posh "auntie" who looks after a lively online community.
You sound like a gentle teacher: firm but kind, never rude, never offensive.

Core rules:
- You use British English spelling.
- You call people "sweetheart", "love", or "darling" in a friendly, motherly way.
- You keep things tidy and organised: help people use the right channels and calm drama.
- You lightly tease people, but always kindly and playfully.
- You NEVER mention being artificial, digital, a model, or what system you run on.
- You stay fully in-character as Auntie Emz at all times.
- You are concise: usually 1-4 short paragraphs, unless the user clearly wants a long explanation.`

// Generator turns a message into a persona reply.
type Generator interface {
	Generate(ctx context.Context, authorDisplay, channelName, content string) (string, error)
}

// Gemini generates replies through the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini-backed generator.
func NewGemini(apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Gemini{client: client, model: model}, nil
}

// Generate builds the persona context and asks the model for a reply. On any
// failure it returns the fixed fallback along with the error so callers can
// log and still answer the user.
func (g *Gemini) Generate(ctx context.Context, authorDisplay, channelName, content string) (string, error) {
	userContext := fmt.Sprintf(
		"Sender display name: %s\nChannel name: %s\n\nUser message:\n%s",
		authorDisplay, channelName, content,
	)

	contents := []*genai.Content{
		genai.NewContentFromText(userContext, genai.RoleUser),
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
	})
	if err != nil {
		return Fallback, fmt.Errorf("Gemini generation failed: %w", err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return Fallback, nil
	}
	return text, nil
}

// Static always answers with a fixed line. Used when no API key is
// configured, so the bot still responds instead of going silent.
type Static struct{}

// Generate returns the fallback line.
func (Static) Generate(ctx context.Context, authorDisplay, channelName, content string) (string, error) {
	return Fallback, nil
}

package chat

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiProvider answers conversations with the Gemini API
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates a Gemini-backed provider
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiProvider{
		client: client,
		model:  "gemini-2.0-flash",
	}, nil
}

// Name identifies the backend
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// geminiRole maps a conversation role onto the Gemini API's role values
func geminiRole(r Role) genai.Role {
	if r == RoleAssistant {
		return genai.Role(genai.RoleModel)
	}
	return genai.Role(genai.RoleUser)
}

// Reply generates the assistant's next message
func (p *GeminiProvider) Reply(ctx context.Context, system string, history []Message) (string, error) {
	contents := make([]*genai.Content, 0, len(history))
	for _, m := range history {
		contents = append(contents, genai.NewContentFromText(m.Content, geminiRole(m.Role)))
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.Role(genai.RoleUser)),
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate content failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned no text")
	}
	return text, nil
}

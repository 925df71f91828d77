package chat

import (
	"context"
	"errors"
)

// Role identifies who wrote a chat message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of a conversation
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ErrNoProvider is returned when no assistant backend is configured
var ErrNoProvider = errors.New("no chat provider configured")

// Provider answers a conversation. The full history is sent on every
// turn; providers are stateless.
type Provider interface {
	// Name identifies the backend in logs and the provider-selection API
	Name() string

	// Reply generates the assistant's next message. systemPrompt frames
	// the conversation for a child audience.
	Reply(ctx context.Context, systemPrompt string, history []Message) (string, error)
}

// systemPrompt frames every conversation. The assistant talks to
// children, so answers stay short, simple, and in French.
const systemPrompt = "Tu es un assistant pour enfants. Reponds toujours en francais, " +
	"avec des phrases courtes et simples. Sois gentil et encourageant. " +
	"Ne donne jamais de contenu inapproprie pour un enfant."

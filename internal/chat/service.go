package chat

import (
	"context"
	"fmt"
	"sync"
)

// maxHistoryMessages bounds how much conversation is kept and resent
// per profile. Older turns are dropped from the front.
const maxHistoryMessages = 40

// Service runs the child assistant. Each profile has its own
// conversation history, kept in memory and cleared when the profile's
// conversation is reset. Providers are selectable per request so the
// tablets can switch between backends.
type Service struct {
	mu        sync.Mutex
	providers map[string]Provider
	defaultP  string
	histories map[string][]Message
}

// NewService creates a chat service over the given providers. The first
// registered provider becomes the default.
func NewService(providers ...Provider) *Service {
	s := &Service{
		providers: make(map[string]Provider),
		histories: make(map[string][]Message),
	}
	for _, p := range providers {
		if p == nil {
			continue
		}
		if s.defaultP == "" {
			s.defaultP = p.Name()
		}
		s.providers[p.Name()] = p
	}
	return s
}

// Providers lists the registered backend names
func (s *Service) Providers() []string {
	names := make([]string, 0, len(s.providers))
	for name := range s.providers {
		names = append(names, name)
	}
	return names
}

// Send appends the child's message to the profile's conversation and
// returns the assistant's reply. providerName may be empty to use the
// default backend.
func (s *Service) Send(ctx context.Context, profileName, providerName, text string) (string, error) {
	provider, err := s.pick(providerName)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	history := append(append([]Message(nil), s.histories[profileName]...), Message{Role: RoleUser, Content: text})
	s.mu.Unlock()

	reply, err := provider.Reply(ctx, systemPrompt, history)
	if err != nil {
		return "", fmt.Errorf("chat reply failed: %w", err)
	}

	// Re-read the stored history before appending: another send for the
	// same profile may have finished while the provider was replying.
	s.mu.Lock()
	stored := append(s.histories[profileName],
		Message{Role: RoleUser, Content: text},
		Message{Role: RoleAssistant, Content: reply},
	)
	if len(stored) > maxHistoryMessages {
		stored = stored[len(stored)-maxHistoryMessages:]
	}
	s.histories[profileName] = stored
	s.mu.Unlock()

	return reply, nil
}

// History returns a copy of a profile's conversation
func (s *Service) History(profileName string) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.histories[profileName]...)
}

// Reset clears a profile's conversation
func (s *Service) Reset(profileName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.histories, profileName)
}

func (s *Service) pick(name string) (Provider, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" {
		name = s.defaultP
	}
	provider, ok := s.providers[name]
	if !ok {
		return nil, ErrNoProvider
	}
	return provider, nil
}

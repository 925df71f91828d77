package chat

import (
	"context"
	"fmt"
	"sync"
	"testing"
)

// echoProvider replies with a canned transformation of the last message
type echoProvider struct {
	mu    sync.Mutex
	name  string
	calls int
	seen  []Message
}

func (p *echoProvider) Name() string { return p.name }

func (p *echoProvider) Reply(ctx context.Context, system string, history []Message) (string, error) {
	p.mu.Lock()
	p.calls++
	p.seen = append([]Message(nil), history...)
	p.mu.Unlock()
	if system == "" {
		return "", fmt.Errorf("missing system prompt")
	}
	last := history[len(history)-1]
	return "echo: " + last.Content, nil
}

func TestSendKeepsPerProfileHistory(t *testing.T) {
	provider := &echoProvider{name: "echo"}
	s := NewService(provider)

	reply, err := s.Send(context.Background(), "emma", "", "Bonjour")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if reply != "echo: Bonjour" {
		t.Errorf("reply = %q", reply)
	}

	if _, err := s.Send(context.Background(), "emma", "", "Qui est Zeus ?"); err != nil {
		t.Fatalf("Send: %v", err)
	}

	// Full history is resent on the second turn
	if len(provider.seen) != 3 {
		t.Fatalf("provider saw %d messages, want 3 (user, assistant, user)", len(provider.seen))
	}
	if provider.seen[1].Role != RoleAssistant {
		t.Errorf("second message role = %s, want assistant", provider.seen[1].Role)
	}

	// Another profile starts fresh
	if _, err := s.Send(context.Background(), "lucas", "", "Salut"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(provider.seen) != 1 {
		t.Errorf("new profile should start with one message, provider saw %d", len(provider.seen))
	}

	if got := len(s.History("emma")); got != 4 {
		t.Errorf("emma history length = %d, want 4", got)
	}
}

func TestResetClearsHistory(t *testing.T) {
	s := NewService(&echoProvider{name: "echo"})

	if _, err := s.Send(context.Background(), "emma", "", "Bonjour"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	s.Reset("emma")
	if got := len(s.History("emma")); got != 0 {
		t.Errorf("history after reset = %d messages, want 0", got)
	}
}

func TestProviderSelection(t *testing.T) {
	first := &echoProvider{name: "first"}
	second := &echoProvider{name: "second"}
	s := NewService(first, second)

	if _, err := s.Send(context.Background(), "emma", "second", "Bonjour"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if second.calls != 1 || first.calls != 0 {
		t.Errorf("selected provider not used: first=%d second=%d", first.calls, second.calls)
	}

	if _, err := s.Send(context.Background(), "emma", "missing", "Bonjour"); err != ErrNoProvider {
		t.Errorf("unknown provider = %v, want ErrNoProvider", err)
	}
}

func TestServiceWithNoProviders(t *testing.T) {
	s := NewService()
	if _, err := s.Send(context.Background(), "emma", "", "Bonjour"); err != ErrNoProvider {
		t.Errorf("no providers = %v, want ErrNoProvider", err)
	}
}

func TestConcurrentSendsKeepBothTurns(t *testing.T) {
	s := NewService(&echoProvider{name: "echo"})

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := s.Send(context.Background(), "emma", "", fmt.Sprintf("message %d", i)); err != nil {
				t.Errorf("Send: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if got := len(s.History("emma")); got != 4 {
		t.Errorf("history length = %d, want 4 (no turn dropped)", got)
	}
}

func TestHistoryIsBounded(t *testing.T) {
	s := NewService(&echoProvider{name: "echo"})

	for i := 0; i < maxHistoryMessages; i++ {
		if _, err := s.Send(context.Background(), "emma", "", fmt.Sprintf("message %d", i)); err != nil {
			t.Fatalf("Send: %v", err)
		}
	}
	if got := len(s.History("emma")); got != maxHistoryMessages {
		t.Errorf("history length = %d, want capped at %d", got, maxHistoryMessages)
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spiritually/spiritually/internal/domain"
)

// ChatProvider is the external chat-completion service a chat turn is
// forwarded to.
type ChatProvider interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// ChatService turns a tradition record and a user message into a
// chat-completion request against the provider.
type ChatService struct {
	knowledge *KnowledgeService
	provider  ChatProvider
}

// NewChatService creates a new ChatService.
func NewChatService(knowledge *KnowledgeService, provider ChatProvider) *ChatService {
	return &ChatService{knowledge: knowledge, provider: provider}
}

// Chat resolves the tradition, builds its system prompt, and forwards the
// user message to the provider. Provider failures surface as ErrUpstream
// with the provider's message preserved.
func (s *ChatService) Chat(ctx context.Context, tag, id, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("%w: message is required", domain.ErrInvalidInput)
	}

	tradition, err := s.knowledge.GetByID(ctx, tag, id)
	if err != nil {
		return "", err
	}

	reply, err := s.provider.Complete(ctx, systemPrompt(tradition), message)
	if err != nil {
		if errors.Is(err, domain.ErrUpstream) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	return reply, nil
}

// systemPrompt formats a tradition into the fixed chat persona prompt.
// Facet lists appear as labeled lines in a fixed order (principles,
// practices, elements, sub-traditions); empty lists are skipped.
func systemPrompt(t *domain.Tradition) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a wise teacher representing %s. ", t.Name)
	b.WriteString("Provide guidance and insights based on this tradition's principles.\n\n")
	fmt.Fprintf(&b, "About %s:\n%s\n\nKey aspects:", t.Name, t.Description)

	facets := []struct {
		label  string
		values []string
	}{
		{"Key Principles", t.KeyPrinciples},
		{"Practices", t.Practices},
		{"Elements", t.Elements},
		{"Traditions", t.Traditions},
	}
	for _, f := range facets {
		if len(f.values) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s: %s", f.label, strings.Join(f.values, ", "))
	}
	return b.String()
}

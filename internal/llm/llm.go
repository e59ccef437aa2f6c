package llm

import "context"

// Message is one chat turn sent to a completion provider.
type Message struct {
	Role    string
	Content string
}

// Completer abstracts chat-completion providers.
type Completer interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// SystemUser builds the common two-message conversation.
func SystemUser(system, user string) []Message {
	return []Message{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}
}

// Package assistant formats wardrobe data for the styling assistant and
// defines the client interface its backends implement.
package assistant

import "context"

// Message is one conversation turn. Images are inline data URIs attached
// alongside the text.
type Message struct {
	Role   string
	Text   string
	Images []string
}

// Client sends a conversation to a chat model and returns the reply text.
type Client interface {
	Send(ctx context.Context, systemPrompt string, messages []Message) (string, error)
}

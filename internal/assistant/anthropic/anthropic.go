// Package anthropic adapts the assistant client interface to the
// Anthropic Messages API.
package anthropic

import (
	"context"
	"fmt"
	"strings"

	"github.com/closetd/closetd/internal/assistant"
	anthropicapi "github.com/liushuangls/go-anthropic/v2"
)

const maxTokens = 2048

type Client struct {
	api   *anthropicapi.Client
	model string
}

func New(apiKey, model string) *Client {
	return &Client{
		api:   anthropicapi.NewClient(apiKey),
		model: model,
	}
}

func (c *Client) Send(ctx context.Context, systemPrompt string, messages []assistant.Message) (string, error) {
	converted := make([]anthropicapi.Message, 0, len(messages))
	for _, m := range messages {
		msg, err := convertMessage(m)
		if err != nil {
			return "", err
		}
		converted = append(converted, msg)
	}

	resp, err := c.api.CreateMessages(ctx, anthropicapi.MessagesRequest{
		Model:     anthropicapi.Model(c.model),
		System:    systemPrompt,
		Messages:  converted,
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to call anthropic: %w", err)
	}

	reply := resp.GetFirstContentText()
	if reply == "" {
		return "", fmt.Errorf("no response from model")
	}
	return reply, nil
}

func convertMessage(m assistant.Message) (anthropicapi.Message, error) {
	role := anthropicapi.RoleUser
	if m.Role == "assistant" {
		role = anthropicapi.RoleAssistant
	}

	if len(m.Images) == 0 {
		return anthropicapi.Message{
			Role:    role,
			Content: []anthropicapi.MessageContent{anthropicapi.NewTextMessageContent(m.Text)},
		}, nil
	}

	content := make([]anthropicapi.MessageContent, 0, len(m.Images)+1)
	for _, img := range m.Images {
		mediaType, data, err := splitDataURI(img)
		if err != nil {
			return anthropicapi.Message{}, err
		}
		content = append(content, anthropicapi.NewImageMessageContent(
			anthropicapi.NewMessageContentSource(anthropicapi.MessagesContentSourceTypeBase64, mediaType, data),
		))
	}
	content = append(content, anthropicapi.NewTextMessageContent(m.Text))

	return anthropicapi.Message{Role: role, Content: content}, nil
}

// splitDataURI breaks "data:<media>;base64,<payload>" into its media type
// and base64 payload.
func splitDataURI(uri string) (string, string, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", "", fmt.Errorf("not a data URI")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", "", fmt.Errorf("malformed data URI")
	}
	mediaType, _, _ := strings.Cut(meta, ";")
	if mediaType == "" {
		mediaType = "image/jpeg"
	}
	return mediaType, payload, nil
}

package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/closetd/closetd/internal/assistant"
	"github.com/closetd/closetd/internal/domain"
	"github.com/closetd/closetd/internal/imagestore"
)

var (
	// ErrAssistantDisabled is returned when no assistant backend is
	// configured.
	ErrAssistantDisabled = errors.New("assistant is not configured")

	// ErrSendInProgress is returned when a conversation already has a
	// message in flight.
	ErrSendInProgress = errors.New("a reply is already being generated for this conversation")

	// ErrAssistantFailure wraps backend errors so callers can treat the
	// upstream model as a bad gateway.
	ErrAssistantFailure = errors.New("assistant request failed")
)

const titleLimit = 30

type conversationRepository interface {
	List(ctx context.Context) ([]domain.Conversation, error)
	Get(ctx context.Context, id string) (domain.Conversation, error)
	Add(ctx context.Context, conversation domain.Conversation) error
	Update(ctx context.Context, id string, fn func(*domain.Conversation)) (domain.Conversation, error)
	Delete(ctx context.Context, id string) error
}

// ChatService owns conversations and talks to the configured assistant
// backend. client may be nil, in which case every send fails with
// ErrAssistantDisabled but conversation CRUD still works.
type ChatService struct {
	conversations conversationRepository
	items         itemRepository
	outfits       outfitRepository
	wearLogs      wearLogRepository
	images        imageRepository
	client        assistant.Client
	logger        *slog.Logger

	mu       sync.Mutex
	inFlight map[string]bool
}

func NewChatService(
	conversations conversationRepository,
	items itemRepository,
	outfits outfitRepository,
	wearLogs wearLogRepository,
	images imageRepository,
	client assistant.Client,
	logger *slog.Logger,
) *ChatService {
	return &ChatService{
		conversations: conversations,
		items:         items,
		outfits:       outfits,
		wearLogs:      wearLogs,
		images:        images,
		client:        client,
		logger:        logger,
		inFlight:      make(map[string]bool),
	}
}

// Enabled reports whether an assistant backend is configured.
func (s *ChatService) Enabled() bool {
	return s.client != nil
}

func (s *ChatService) CreateConversation(ctx context.Context) (domain.Conversation, error) {
	now := domain.Now()
	conversation := domain.Conversation{
		ID:        domain.NewID(),
		Title:     "New Chat",
		Messages:  []domain.ChatMessage{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.conversations.Add(ctx, conversation); err != nil {
		return domain.Conversation{}, err
	}
	return conversation, nil
}

func (s *ChatService) ListConversations(ctx context.Context) ([]domain.Conversation, error) {
	return s.conversations.List(ctx)
}

func (s *ChatService) GetConversation(ctx context.Context, id string) (domain.Conversation, error) {
	return s.conversations.Get(ctx, id)
}

func (s *ChatService) DeleteConversation(ctx context.Context, id string) error {
	return s.conversations.Delete(ctx, id)
}

// SendMessage appends the user message, asks the assistant for a reply
// and appends that too. The conversation title is derived from the first
// message. One send per conversation runs at a time.
func (s *ChatService) SendMessage(ctx context.Context, conversationID, content string, referencedItemIDs []string) (domain.Conversation, error) {
	var zero domain.Conversation
	if s.client == nil {
		return zero, ErrAssistantDisabled
	}
	if content == "" {
		return zero, invalidf("message content is required")
	}

	if !s.acquire(conversationID) {
		return zero, ErrSendInProgress
	}
	defer s.release(conversationID)

	userMessage := domain.ChatMessage{
		ID:                domain.NewID(),
		Role:              domain.RoleUser,
		Content:           content,
		Timestamp:         domain.Now(),
		ReferencedItemIDs: referencedItemIDs,
	}

	conversation, err := s.conversations.Update(ctx, conversationID, func(c *domain.Conversation) {
		if len(c.Messages) == 0 {
			c.Title = truncateTitle(content)
		}
		c.Messages = append(c.Messages, userMessage)
		c.UpdatedAt = domain.Now()
	})
	if err != nil {
		return zero, err
	}

	items, err := s.items.List(ctx)
	if err != nil {
		return zero, err
	}
	outfits, err := s.outfits.List(ctx)
	if err != nil {
		return zero, err
	}
	wearLogs, err := s.wearLogs.List(ctx)
	if err != nil {
		return zero, err
	}

	systemPrompt := assistant.BuildSystemPrompt(items, outfits, wearLogs, time.Now())
	history := s.buildHistory(ctx, conversation.Messages, items)

	s.logger.Info("assistant request started", "conversation_id", conversationID, "messages", len(history))
	reply, err := s.client.Send(ctx, systemPrompt, history)
	if err != nil {
		return zero, fmt.Errorf("%w: %v", ErrAssistantFailure, err)
	}
	s.logger.Info("assistant request complete", "conversation_id", conversationID, "reply_bytes", len(reply))

	return s.conversations.Update(ctx, conversationID, func(c *domain.Conversation) {
		c.Messages = append(c.Messages, domain.ChatMessage{
			ID:        domain.NewID(),
			Role:      domain.RoleAssistant,
			Content:   reply,
			Timestamp: domain.Now(),
		})
		c.UpdatedAt = domain.Now()
	})
}

func (s *ChatService) acquire(conversationID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[conversationID] {
		return false
	}
	s.inFlight[conversationID] = true
	return true
}

func (s *ChatService) release(conversationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, conversationID)
}

// buildHistory converts stored messages into assistant messages,
// attaching the full-resolution photo of each referenced item as a data
// URI. Missing items or blobs are skipped silently.
func (s *ChatService) buildHistory(ctx context.Context, messages []domain.ChatMessage, items []domain.WardrobeItem) []assistant.Message {
	byID := make(map[string]domain.WardrobeItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	history := make([]assistant.Message, 0, len(messages))
	for _, msg := range messages {
		out := assistant.Message{Role: string(msg.Role), Text: msg.Content}
		if msg.Role == domain.RoleUser {
			for _, itemID := range msg.ReferencedItemIDs {
				item, ok := byID[itemID]
				if !ok {
					continue
				}
				record, err := s.images.Get(ctx, item.ImageID)
				if err != nil {
					if !errors.Is(err, imagestore.ErrNotFound) {
						s.logger.Error("failed to load referenced image", "item_id", itemID, "error", err)
					}
					continue
				}
				out.Images = append(out.Images, "data:image/jpeg;base64,"+base64.StdEncoding.EncodeToString(record.Data))
			}
		}
		history = append(history, out)
	}
	return history
}

func truncateTitle(content string) string {
	if utf8.RuneCountInString(content) <= titleLimit {
		return content
	}
	runes := []rune(content)
	return string(runes[:titleLimit]) + "..."
}

package store

import (
	"context"
	"testing"

	"github.com/closetd/closetd/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWearLogForDate(t *testing.T) {
	kv := openTestKV(t)
	logs := NewWearLogStore(kv)
	ctx := context.Background()

	add := func(id, date string) {
		require.NoError(t, logs.Add(ctx, domain.WearLogEntry{
			ID: id, Date: date, ItemIDs: []string{"item-1"}, CreatedAt: domain.Now(),
		}))
	}
	add("w1", "2026-08-01")
	add("w2", "2026-08-01")
	add("w3", "2026-08-02")

	matched, err := logs.ForDate(ctx, "2026-08-01")
	require.NoError(t, err)
	assert.Len(t, matched, 2)

	matched, err = logs.ForDate(ctx, "2026-08-03")
	require.NoError(t, err)
	assert.Empty(t, matched)
}

func TestEventForDate(t *testing.T) {
	kv := openTestKV(t)
	events := NewEventStore(kv)
	ctx := context.Background()

	now := domain.Now()
	require.NoError(t, events.Add(ctx, domain.PlannedEvent{
		ID: "e1", Name: "Wedding", Date: "2026-09-12", Occasion: domain.OccasionFormal,
		CreatedAt: now, UpdatedAt: now,
	}))

	matched, err := events.ForDate(ctx, "2026-09-12")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "Wedding", matched[0].Name)
}

func TestConversationStoreDropsKeyWhenEmpty(t *testing.T) {
	kv := openTestKV(t)
	convs := NewConversationStore(kv)
	ctx := context.Background()

	now := domain.Now()
	require.NoError(t, convs.Add(ctx, domain.Conversation{
		ID: "c1", Title: "New conversation", Messages: []domain.ChatMessage{},
		CreatedAt: now, UpdatedAt: now,
	}))

	_, ok, err := kv.Get(ctx, KeyConversations)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, convs.Delete(ctx, "c1"))

	// Removing the last conversation removes the stored key entirely.
	_, ok, err = kv.Get(ctx, KeyConversations)
	require.NoError(t, err)
	assert.False(t, ok)
}

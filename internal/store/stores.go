package store

import (
	"context"

	"github.com/closetd/closetd/internal/domain"
)

// One store per entity type. Each owns its collection exclusively; cross-
// entity references are plain id strings resolved by the service layer.

type ItemStore struct {
	*Collection[domain.WardrobeItem]
}

func NewItemStore(kv *KV) *ItemStore {
	return &ItemStore{NewCollection(kv, KeyItems, func(i domain.WardrobeItem) string { return i.ID })}
}

type OutfitStore struct {
	*Collection[domain.Outfit]
}

func NewOutfitStore(kv *KV) *OutfitStore {
	return &OutfitStore{NewCollection(kv, KeyOutfits, func(o domain.Outfit) string { return o.ID })}
}

type WearLogStore struct {
	*Collection[domain.WearLogEntry]
}

func NewWearLogStore(kv *KV) *WearLogStore {
	return &WearLogStore{NewCollection(kv, KeyWearLogs, func(w domain.WearLogEntry) string { return w.ID })}
}

// ForDate returns the entries logged for a YYYY-MM-DD day.
func (s *WearLogStore) ForDate(ctx context.Context, date string) ([]domain.WearLogEntry, error) {
	logs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	var matched []domain.WearLogEntry
	for _, l := range logs {
		if l.Date == date {
			matched = append(matched, l)
		}
	}
	return matched, nil
}

type NoteStore struct {
	*Collection[domain.Note]
}

func NewNoteStore(kv *KV) *NoteStore {
	return &NoteStore{NewCollection(kv, KeyNotes, func(n domain.Note) string { return n.ID })}
}

type StorageSpaceStore struct {
	*Collection[domain.StorageSpace]
}

func NewStorageSpaceStore(kv *KV) *StorageSpaceStore {
	return &StorageSpaceStore{NewCollection(kv, KeyStorageSpaces, func(s domain.StorageSpace) string { return s.ID })}
}

type EventStore struct {
	*Collection[domain.PlannedEvent]
}

func NewEventStore(kv *KV) *EventStore {
	return &EventStore{NewCollection(kv, KeyEvents, func(e domain.PlannedEvent) string { return e.ID })}
}

// ForDate returns the events planned for a YYYY-MM-DD day.
func (s *EventStore) ForDate(ctx context.Context, date string) ([]domain.PlannedEvent, error) {
	events, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	var matched []domain.PlannedEvent
	for _, e := range events {
		if e.Date == date {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

type ConversationStore struct {
	*Collection[domain.Conversation]
}

func NewConversationStore(kv *KV) *ConversationStore {
	c := NewCollection(kv, KeyConversations, func(c domain.Conversation) string { return c.ID })
	// Deleting the last conversation removes the stored key rather than
	// leaving an empty array behind.
	c.dropKeyWhenEmpty = true
	return &ConversationStore{c}
}

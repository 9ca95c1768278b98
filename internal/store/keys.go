package store

import (
	"context"
	"strconv"
)

// Persisted record-store keys. These names are part of the backup
// compatibility contract and must not change.
const (
	KeyItems         = "wardrobe_items"
	KeyOutfits       = "wardrobe_outfits"
	KeyWearLogs      = "wardrobe_wear_logs"
	KeyNotes         = "wardrobe_notes"
	KeyStorageSpaces = "wardrobe_storage_spaces"
	KeyEvents        = "wardrobe_events"
	KeyConversations = "wardrobe_conversations"
	KeyVersion       = "wardrobe_version"
)

// CurrentVersion is the schema version stamped into the record store.
const CurrentVersion = 1

// Version returns the stored schema version, or 0 when absent or
// malformed.
func Version(ctx context.Context, kv *KV) (int, error) {
	raw, ok, err := kv.Get(ctx, KeyVersion)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, nil
	}
	return v, nil
}

// InitializeVersion stamps CurrentVersion when the store is new or behind.
// Migration hooks for future versions go here.
func InitializeVersion(ctx context.Context, kv *KV) error {
	v, err := Version(ctx, kv)
	if err != nil {
		return err
	}
	if v < CurrentVersion {
		return kv.Set(ctx, KeyVersion, strconv.Itoa(CurrentVersion))
	}
	return nil
}

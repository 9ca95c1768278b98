package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/closetd/closetd/internal/assistant"
	"github.com/closetd/closetd/internal/assistant/anthropic"
	"github.com/closetd/closetd/internal/assistant/openai"
	"github.com/closetd/closetd/internal/backup"
	"github.com/closetd/closetd/internal/config"
	"github.com/closetd/closetd/internal/db"
	"github.com/closetd/closetd/internal/imagestore"
	"github.com/closetd/closetd/internal/logging"
	"github.com/closetd/closetd/internal/service"
	"github.com/closetd/closetd/internal/store"
	"github.com/closetd/closetd/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	kv := store.NewKV(database)
	if err := store.InitializeVersion(context.Background(), kv); err != nil {
		logger.Error("failed to initialize schema version", "error", err)
		return
	}

	images, err := imagestore.Open(cfg.ImageDBPath)
	if err != nil {
		logger.Error("failed to open image database", "error", err)
		return
	}
	defer func() {
		if err := images.Close(); err != nil {
			logger.Error("failed to close image database", "error", err)
		}
	}()

	items := store.NewItemStore(kv)
	outfits := store.NewOutfitStore(kv)
	wearLogs := store.NewWearLogStore(kv)
	notes := store.NewNoteStore(kv)
	spaces := store.NewStorageSpaceStore(kv)
	events := store.NewEventStore(kv)
	conversations := store.NewConversationStore(kv)

	client := newAssistantClient(cfg, logger)

	wardrobe := service.NewWardrobeService(items, outfits, wearLogs, notes, spaces, events, images, logger)
	chat := service.NewChatService(conversations, items, outfits, wearLogs, images, client, logger)
	bk := backup.New(items, outfits, wearLogs, notes, spaces, events, images, logger)

	server := web.NewServer(wardrobe, chat, bk, logger)
	if err := server.ListenAndServe(cfg.ListenAddr); err != nil {
		logger.Error("server error", "error", err)
	}
}

// newAssistantClient picks the chat backend. A missing API key disables
// the assistant; the rest of the application works without it.
func newAssistantClient(cfg *config.Config, logger *slog.Logger) assistant.Client {
	if !cfg.AssistantEnabled() {
		logger.Info("assistant disabled: no API key configured")
		return nil
	}
	switch cfg.AIBackend {
	case "anthropic":
		logger.Info("using Anthropic assistant backend", "model", cfg.AIModel)
		return anthropic.New(cfg.AIAPIKey, cfg.AIModel)
	default:
		logger.Info("using OpenAI-compatible assistant backend", "base_url", cfg.AIBaseURL, "model", cfg.AIModel)
		return openai.New(cfg.AIBaseURL, cfg.AIAPIKey, cfg.AIModel)
	}
}

// Package backup serializes every collection plus all image blobs into a
// single JSON document, and restores from one. The document shape is the
// durable backup contract: field names must stay compatible with backups
// written by earlier versions.
package backup

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/closetd/closetd/internal/domain"
	"github.com/closetd/closetd/internal/imagestore"
	"github.com/closetd/closetd/internal/store"
)

type ImageExport struct {
	ID        string `json:"id"`
	Data      string `json:"data"`
	Thumbnail string `json:"thumbnail"`
	CreatedAt string `json:"createdAt"`
}

type Document struct {
	Version       int                   `json:"version"`
	Items         []domain.WardrobeItem `json:"items"`
	Outfits       []domain.Outfit       `json:"outfits"`
	WearLogs      []domain.WearLogEntry `json:"wearLogs"`
	Notes         []domain.Note         `json:"notes"`
	StorageSpaces []domain.StorageSpace `json:"storageSpaces,omitempty"`
	Events        []domain.PlannedEvent `json:"events,omitempty"`
	Images        []ImageExport         `json:"images"`
	ExportedAt    string                `json:"exportedAt"`
}

type ImportResult struct {
	Items   int `json:"itemCount"`
	Outfits int `json:"outfitCount"`
	Images  int `json:"imageCount"`
}

type Service struct {
	items    *store.ItemStore
	outfits  *store.OutfitStore
	wearLogs *store.WearLogStore
	notes    *store.NoteStore
	spaces   *store.StorageSpaceStore
	events   *store.EventStore
	images   *imagestore.Store
	logger   *slog.Logger
}

func New(
	items *store.ItemStore,
	outfits *store.OutfitStore,
	wearLogs *store.WearLogStore,
	notes *store.NoteStore,
	spaces *store.StorageSpaceStore,
	events *store.EventStore,
	images *imagestore.Store,
	logger *slog.Logger,
) *Service {
	return &Service{
		items:    items,
		outfits:  outfits,
		wearLogs: wearLogs,
		notes:    notes,
		spaces:   spaces,
		events:   events,
		images:   images,
		logger:   logger,
	}
}

// Export reads every collection and every stored image into one document.
func (s *Service) Export(ctx context.Context) (*Document, error) {
	doc := &Document{
		Version:    store.CurrentVersion,
		ExportedAt: domain.Now(),
	}

	var err error
	if doc.Items, err = s.items.List(ctx); err != nil {
		return nil, fmt.Errorf("failed to export items: %w", err)
	}
	if doc.Outfits, err = s.outfits.List(ctx); err != nil {
		return nil, fmt.Errorf("failed to export outfits: %w", err)
	}
	if doc.WearLogs, err = s.wearLogs.List(ctx); err != nil {
		return nil, fmt.Errorf("failed to export wear logs: %w", err)
	}
	if doc.Notes, err = s.notes.List(ctx); err != nil {
		return nil, fmt.Errorf("failed to export notes: %w", err)
	}
	if doc.StorageSpaces, err = s.spaces.List(ctx); err != nil {
		return nil, fmt.Errorf("failed to export storage spaces: %w", err)
	}
	if doc.Events, err = s.events.List(ctx); err != nil {
		return nil, fmt.Errorf("failed to export events: %w", err)
	}

	records, err := s.images.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export images: %w", err)
	}
	doc.Images = make([]ImageExport, 0, len(records))
	for _, r := range records {
		doc.Images = append(doc.Images, ImageExport{
			ID:        r.ID,
			Data:      toDataURI(r.Data),
			Thumbnail: toDataURI(r.Thumbnail),
			CreatedAt: r.CreatedAt,
		})
	}

	s.logger.Info("export complete",
		"items", len(doc.Items),
		"outfits", len(doc.Outfits),
		"wear_logs", len(doc.WearLogs),
		"images", len(doc.Images),
	)
	return doc, nil
}

// Import restores a backup document: parse and validate first, then clear
// every collection and image, then repopulate. The clear-then-write
// sequence is not transactional across the two databases; a failure
// mid-import can leave storage partially populated.
func (s *Service) Import(ctx context.Context, data []byte) (*ImportResult, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid backup file: %w", err)
	}
	if doc.Version < 1 {
		return nil, fmt.Errorf("invalid backup file: missing version")
	}

	// Decode every image before touching storage so a corrupt data URI
	// fails the import without clearing anything.
	type decodedImage struct {
		id        string
		data      []byte
		thumbnail []byte
	}
	decoded := make([]decodedImage, 0, len(doc.Images))
	for _, img := range doc.Images {
		full, err := fromDataURI(img.Data)
		if err != nil {
			return nil, fmt.Errorf("invalid backup file: image %s: %w", img.ID, err)
		}
		thumb, err := fromDataURI(img.Thumbnail)
		if err != nil {
			return nil, fmt.Errorf("invalid backup file: image %s: %w", img.ID, err)
		}
		decoded = append(decoded, decodedImage{id: img.ID, data: full, thumbnail: thumb})
	}

	if err := s.items.Replace(ctx, doc.Items); err != nil {
		return nil, fmt.Errorf("failed to import items: %w", err)
	}
	if err := s.outfits.Replace(ctx, doc.Outfits); err != nil {
		return nil, fmt.Errorf("failed to import outfits: %w", err)
	}
	if err := s.wearLogs.Replace(ctx, doc.WearLogs); err != nil {
		return nil, fmt.Errorf("failed to import wear logs: %w", err)
	}
	if err := s.notes.Replace(ctx, doc.Notes); err != nil {
		return nil, fmt.Errorf("failed to import notes: %w", err)
	}
	if err := s.spaces.Replace(ctx, doc.StorageSpaces); err != nil {
		return nil, fmt.Errorf("failed to import storage spaces: %w", err)
	}
	if err := s.events.Replace(ctx, doc.Events); err != nil {
		return nil, fmt.Errorf("failed to import events: %w", err)
	}

	if err := s.images.Clear(ctx); err != nil {
		return nil, fmt.Errorf("failed to clear images: %w", err)
	}
	for _, img := range decoded {
		if err := s.images.Save(ctx, img.id, img.data, img.thumbnail); err != nil {
			return nil, fmt.Errorf("failed to import image %s: %w", img.id, err)
		}
	}

	s.logger.Info("import complete",
		"items", len(doc.Items),
		"outfits", len(doc.Outfits),
		"images", len(decoded),
	)
	return &ImportResult{
		Items:   len(doc.Items),
		Outfits: len(doc.Outfits),
		Images:  len(decoded),
	}, nil
}

func toDataURI(data []byte) string {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(data)
}

func fromDataURI(uri string) ([]byte, error) {
	_, payload, found := strings.Cut(uri, ",")
	if !found {
		return nil, fmt.Errorf("malformed data URI")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("malformed data URI: %w", err)
	}
	return data, nil
}

// Package service implements the application logic on top of the record
// and image stores. Cross-entity references are plain id strings; deletes
// cascade explicitly where the UI depends on it and stay lenient
// everywhere else.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/closetd/closetd/internal/domain"
	"github.com/closetd/closetd/internal/imagestore"
	"github.com/closetd/closetd/internal/imaging"
	"github.com/closetd/closetd/internal/organizer"
	"github.com/closetd/closetd/internal/store"
)

// ErrInvalid marks request validation failures so the web layer can map
// them to a 400 response.
var ErrInvalid = errors.New("invalid input")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// itemRepository is the subset of store.ItemStore that WardrobeService requires.
type itemRepository interface {
	List(ctx context.Context) ([]domain.WardrobeItem, error)
	Get(ctx context.Context, id string) (domain.WardrobeItem, error)
	Add(ctx context.Context, item domain.WardrobeItem) error
	Update(ctx context.Context, id string, fn func(*domain.WardrobeItem)) (domain.WardrobeItem, error)
	Delete(ctx context.Context, id string) error
}

type outfitRepository interface {
	List(ctx context.Context) ([]domain.Outfit, error)
	Get(ctx context.Context, id string) (domain.Outfit, error)
	Add(ctx context.Context, outfit domain.Outfit) error
	Update(ctx context.Context, id string, fn func(*domain.Outfit)) (domain.Outfit, error)
	Delete(ctx context.Context, id string) error
}

type wearLogRepository interface {
	List(ctx context.Context) ([]domain.WearLogEntry, error)
	ForDate(ctx context.Context, date string) ([]domain.WearLogEntry, error)
	Add(ctx context.Context, entry domain.WearLogEntry) error
	Update(ctx context.Context, id string, fn func(*domain.WearLogEntry)) (domain.WearLogEntry, error)
	Delete(ctx context.Context, id string) error
}

type noteRepository interface {
	List(ctx context.Context) ([]domain.Note, error)
	Get(ctx context.Context, id string) (domain.Note, error)
	Add(ctx context.Context, note domain.Note) error
	Update(ctx context.Context, id string, fn func(*domain.Note)) (domain.Note, error)
	Delete(ctx context.Context, id string) error
}

type spaceRepository interface {
	List(ctx context.Context) ([]domain.StorageSpace, error)
	Get(ctx context.Context, id string) (domain.StorageSpace, error)
	Add(ctx context.Context, space domain.StorageSpace) error
	Update(ctx context.Context, id string, fn func(*domain.StorageSpace)) (domain.StorageSpace, error)
	Delete(ctx context.Context, id string) error
}

type eventRepository interface {
	List(ctx context.Context) ([]domain.PlannedEvent, error)
	ForDate(ctx context.Context, date string) ([]domain.PlannedEvent, error)
	Get(ctx context.Context, id string) (domain.PlannedEvent, error)
	Add(ctx context.Context, event domain.PlannedEvent) error
	Update(ctx context.Context, id string, fn func(*domain.PlannedEvent)) (domain.PlannedEvent, error)
	Delete(ctx context.Context, id string) error
}

// imageRepository is the subset of imagestore.Store that WardrobeService requires.
type imageRepository interface {
	Save(ctx context.Context, id string, data, thumbnail []byte) error
	Get(ctx context.Context, id string) (*imagestore.ImageRecord, error)
	Delete(ctx context.Context, id string) error
}

type WardrobeService struct {
	items    itemRepository
	outfits  outfitRepository
	wearLogs wearLogRepository
	notes    noteRepository
	spaces   spaceRepository
	events   eventRepository
	images   imageRepository
	logger   *slog.Logger
}

func NewWardrobeService(
	items itemRepository,
	outfits outfitRepository,
	wearLogs wearLogRepository,
	notes noteRepository,
	spaces spaceRepository,
	events eventRepository,
	images imageRepository,
	logger *slog.Logger,
) *WardrobeService {
	return &WardrobeService{
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

func validateItem(item *domain.WardrobeItem) error {
	if item.Name == "" {
		return invalidf("item name is required")
	}
	if !item.Category.Valid() {
		return invalidf("unknown category %q", item.Category)
	}
	for _, season := range item.Seasons {
		if !season.Valid() {
			return invalidf("unknown season %q", season)
		}
	}
	if !item.Fit.Valid() {
		return invalidf("unknown fit %q", item.Fit)
	}
	return nil
}

// AddItem compresses the uploaded image, derives a thumbnail, stores the
// blob and then the record. The blob is rolled back if the record write
// fails.
func (s *WardrobeService) AddItem(ctx context.Context, item domain.WardrobeItem, imageData []byte) (domain.WardrobeItem, error) {
	var zero domain.WardrobeItem
	if err := validateItem(&item); err != nil {
		return zero, err
	}

	s.logger.Info("add item started", "name", item.Name, "category", item.Category, "bytes", len(imageData))

	compressed, err := imaging.Compress(imageData, imaging.MaxImageBytes)
	if err != nil {
		return zero, invalidf("failed to process image: %v", err)
	}
	thumbnail, err := imaging.Thumbnail(imageData, imaging.ThumbnailSize)
	if err != nil {
		return zero, invalidf("failed to create thumbnail: %v", err)
	}

	imageID := domain.NewID()
	if err := s.images.Save(ctx, imageID, compressed, thumbnail); err != nil {
		return zero, fmt.Errorf("failed to save image: %w", err)
	}

	now := domain.Now()
	item.ID = domain.NewID()
	item.ImageID = imageID
	item.CreatedAt = now
	item.UpdatedAt = now

	if err := s.items.Add(ctx, item); err != nil {
		_ = s.images.Delete(ctx, imageID)
		return zero, fmt.Errorf("failed to save item record: %w", err)
	}

	s.logger.Info("add item complete", "item_id", item.ID, "image_id", imageID)
	return item, nil
}

func (s *WardrobeService) ListItems(ctx context.Context) ([]domain.WardrobeItem, error) {
	return s.items.List(ctx)
}

func (s *WardrobeService) GetItem(ctx context.Context, id string) (domain.WardrobeItem, error) {
	return s.items.Get(ctx, id)
}

// UpdateItem replaces the mutable fields of an item. The image and
// createdAt are immutable; use ReplaceItemImage to change the photo.
func (s *WardrobeService) UpdateItem(ctx context.Context, id string, updated domain.WardrobeItem) (domain.WardrobeItem, error) {
	if err := validateItem(&updated); err != nil {
		return domain.WardrobeItem{}, err
	}
	return s.items.Update(ctx, id, func(item *domain.WardrobeItem) {
		updated.ID = item.ID
		updated.ImageID = item.ImageID
		updated.CreatedAt = item.CreatedAt
		updated.UpdatedAt = domain.Now()
		*item = updated
	})
}

// DeleteItem removes the record and then the image blob. A missing blob
// is tolerated so a half-deleted item can still be removed.
func (s *WardrobeService) DeleteItem(ctx context.Context, id string) error {
	item, err := s.items.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.items.Delete(ctx, id); err != nil {
		return err
	}
	if item.ImageID != "" {
		if err := s.images.Delete(ctx, item.ImageID); err != nil && !errors.Is(err, imagestore.ErrNotFound) {
			return fmt.Errorf("failed to delete image: %w", err)
		}
	}
	s.logger.Info("item deleted", "item_id", id)
	return nil
}

// ItemImage returns the stored blob pair for an item's photo.
func (s *WardrobeService) ItemImage(ctx context.Context, itemID string) (*imagestore.ImageRecord, error) {
	item, err := s.items.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}
	record, err := s.images.Get(ctx, item.ImageID)
	if err != nil {
		if errors.Is(err, imagestore.ErrNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return record, nil
}

// ReplaceItemImage recompresses a new upload and overwrites the item's
// blob in place, keeping the image id stable.
func (s *WardrobeService) ReplaceItemImage(ctx context.Context, itemID string, imageData []byte) (domain.WardrobeItem, error) {
	var zero domain.WardrobeItem
	item, err := s.items.Get(ctx, itemID)
	if err != nil {
		return zero, err
	}

	compressed, err := imaging.Compress(imageData, imaging.MaxImageBytes)
	if err != nil {
		return zero, invalidf("failed to process image: %v", err)
	}
	thumbnail, err := imaging.Thumbnail(imageData, imaging.ThumbnailSize)
	if err != nil {
		return zero, invalidf("failed to create thumbnail: %v", err)
	}

	imageID := item.ImageID
	if imageID == "" {
		imageID = domain.NewID()
	}
	if err := s.images.Save(ctx, imageID, compressed, thumbnail); err != nil {
		return zero, fmt.Errorf("failed to save image: %w", err)
	}

	return s.items.Update(ctx, itemID, func(item *domain.WardrobeItem) {
		item.ImageID = imageID
		item.UpdatedAt = domain.Now()
	})
}

// AssignItemsToSpace bulk-assigns items to a storage space. An empty
// spaceID unassigns. Unknown item ids are skipped.
func (s *WardrobeService) AssignItemsToSpace(ctx context.Context, itemIDs []string, spaceID string) error {
	if spaceID != "" {
		if _, err := s.spaces.Get(ctx, spaceID); err != nil {
			return err
		}
	}
	for _, id := range itemIDs {
		_, err := s.items.Update(ctx, id, func(item *domain.WardrobeItem) {
			item.StorageSpaceID = spaceID
			item.UpdatedAt = domain.Now()
		})
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}
	}
	return nil
}

func validateOutfit(outfit *domain.Outfit) error {
	if outfit.Name == "" {
		return invalidf("outfit name is required")
	}
	if len(outfit.Items) < 2 {
		return invalidf("an outfit needs at least 2 items")
	}
	return nil
}

func (s *WardrobeService) CreateOutfit(ctx context.Context, outfit domain.Outfit) (domain.Outfit, error) {
	var zero domain.Outfit
	if err := validateOutfit(&outfit); err != nil {
		return zero, err
	}
	now := domain.Now()
	outfit.ID = domain.NewID()
	outfit.CreatedAt = now
	outfit.UpdatedAt = now
	if err := s.outfits.Add(ctx, outfit); err != nil {
		return zero, err
	}
	return outfit, nil
}

func (s *WardrobeService) ListOutfits(ctx context.Context) ([]domain.Outfit, error) {
	return s.outfits.List(ctx)
}

func (s *WardrobeService) GetOutfit(ctx context.Context, id string) (domain.Outfit, error) {
	return s.outfits.Get(ctx, id)
}

func (s *WardrobeService) UpdateOutfit(ctx context.Context, id string, updated domain.Outfit) (domain.Outfit, error) {
	if err := validateOutfit(&updated); err != nil {
		return domain.Outfit{}, err
	}
	return s.outfits.Update(ctx, id, func(outfit *domain.Outfit) {
		updated.ID = outfit.ID
		updated.CreatedAt = outfit.CreatedAt
		updated.UpdatedAt = domain.Now()
		*outfit = updated
	})
}

// DeleteOutfit leaves wear logs and events that reference the outfit
// untouched; those references dangle and are resolved leniently.
func (s *WardrobeService) DeleteOutfit(ctx context.Context, id string) error {
	return s.outfits.Delete(ctx, id)
}

func validateDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return invalidf("date must be YYYY-MM-DD, got %q", date)
	}
	return nil
}

func (s *WardrobeService) CreateWearLog(ctx context.Context, entry domain.WearLogEntry) (domain.WearLogEntry, error) {
	var zero domain.WearLogEntry
	if err := validateDate(entry.Date); err != nil {
		return zero, err
	}
	if len(entry.ItemIDs) == 0 {
		return zero, invalidf("a wear log needs at least one item")
	}
	entry.ID = domain.NewID()
	entry.CreatedAt = domain.Now()
	if err := s.wearLogs.Add(ctx, entry); err != nil {
		return zero, err
	}
	return entry, nil
}

func (s *WardrobeService) ListWearLogs(ctx context.Context) ([]domain.WearLogEntry, error) {
	return s.wearLogs.List(ctx)
}

func (s *WardrobeService) WearLogsForDate(ctx context.Context, date string) ([]domain.WearLogEntry, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}
	return s.wearLogs.ForDate(ctx, date)
}

func (s *WardrobeService) UpdateWearLog(ctx context.Context, id string, updated domain.WearLogEntry) (domain.WearLogEntry, error) {
	var zero domain.WearLogEntry
	if err := validateDate(updated.Date); err != nil {
		return zero, err
	}
	if len(updated.ItemIDs) == 0 {
		return zero, invalidf("a wear log needs at least one item")
	}
	return s.wearLogs.Update(ctx, id, func(entry *domain.WearLogEntry) {
		updated.ID = entry.ID
		updated.CreatedAt = entry.CreatedAt
		*entry = updated
	})
}

func (s *WardrobeService) DeleteWearLog(ctx context.Context, id string) error {
	return s.wearLogs.Delete(ctx, id)
}

func (s *WardrobeService) CreateNote(ctx context.Context, note domain.Note) (domain.Note, error) {
	var zero domain.Note
	if note.Content == "" {
		return zero, invalidf("note content is required")
	}
	now := domain.Now()
	note.ID = domain.NewID()
	note.CreatedAt = now
	note.UpdatedAt = now
	if err := s.notes.Add(ctx, note); err != nil {
		return zero, err
	}
	return note, nil
}

func (s *WardrobeService) ListNotes(ctx context.Context) ([]domain.Note, error) {
	return s.notes.List(ctx)
}

func (s *WardrobeService) GetNote(ctx context.Context, id string) (domain.Note, error) {
	return s.notes.Get(ctx, id)
}

func (s *WardrobeService) UpdateNote(ctx context.Context, id string, updated domain.Note) (domain.Note, error) {
	if updated.Content == "" {
		return domain.Note{}, invalidf("note content is required")
	}
	return s.notes.Update(ctx, id, func(note *domain.Note) {
		updated.ID = note.ID
		updated.CreatedAt = note.CreatedAt
		updated.UpdatedAt = domain.Now()
		*note = updated
	})
}

func (s *WardrobeService) DeleteNote(ctx context.Context, id string) error {
	return s.notes.Delete(ctx, id)
}

func validateSpace(space *domain.StorageSpace) error {
	if space.Name == "" {
		return invalidf("storage space name is required")
	}
	if !space.Type.Valid() {
		return invalidf("unknown storage space type %q", space.Type)
	}
	return nil
}

func (s *WardrobeService) CreateStorageSpace(ctx context.Context, space domain.StorageSpace) (domain.StorageSpace, error) {
	var zero domain.StorageSpace
	if err := validateSpace(&space); err != nil {
		return zero, err
	}
	now := domain.Now()
	space.ID = domain.NewID()
	space.CreatedAt = now
	space.UpdatedAt = now
	if err := s.spaces.Add(ctx, space); err != nil {
		return zero, err
	}
	return space, nil
}

func (s *WardrobeService) ListStorageSpaces(ctx context.Context) ([]domain.StorageSpace, error) {
	return s.spaces.List(ctx)
}

func (s *WardrobeService) GetStorageSpace(ctx context.Context, id string) (domain.StorageSpace, error) {
	return s.spaces.Get(ctx, id)
}

func (s *WardrobeService) UpdateStorageSpace(ctx context.Context, id string, updated domain.StorageSpace) (domain.StorageSpace, error) {
	if err := validateSpace(&updated); err != nil {
		return domain.StorageSpace{}, err
	}
	return s.spaces.Update(ctx, id, func(space *domain.StorageSpace) {
		updated.ID = space.ID
		updated.CreatedAt = space.CreatedAt
		updated.UpdatedAt = domain.Now()
		*space = updated
	})
}

// DeleteStorageSpace unassigns every item stored in the space before
// removing it, so items never point at a space that is gone.
func (s *WardrobeService) DeleteStorageSpace(ctx context.Context, id string) error {
	if _, err := s.spaces.Get(ctx, id); err != nil {
		return err
	}
	items, err := s.items.List(ctx)
	if err != nil {
		return err
	}
	for _, item := range items {
		if item.StorageSpaceID != id {
			continue
		}
		_, err := s.items.Update(ctx, item.ID, func(item *domain.WardrobeItem) {
			item.StorageSpaceID = ""
			item.UpdatedAt = domain.Now()
		})
		if err != nil {
			return fmt.Errorf("failed to unassign item %s: %w", item.ID, err)
		}
	}
	return s.spaces.Delete(ctx, id)
}

func validateEvent(event *domain.PlannedEvent) error {
	if event.Name == "" {
		return invalidf("event name is required")
	}
	if err := validateDate(event.Date); err != nil {
		return err
	}
	if !event.Occasion.Valid() {
		return invalidf("unknown occasion %q", event.Occasion)
	}
	return nil
}

func (s *WardrobeService) CreateEvent(ctx context.Context, event domain.PlannedEvent) (domain.PlannedEvent, error) {
	var zero domain.PlannedEvent
	if err := validateEvent(&event); err != nil {
		return zero, err
	}
	now := domain.Now()
	event.ID = domain.NewID()
	event.CreatedAt = now
	event.UpdatedAt = now
	if err := s.events.Add(ctx, event); err != nil {
		return zero, err
	}
	return event, nil
}

func (s *WardrobeService) ListEvents(ctx context.Context) ([]domain.PlannedEvent, error) {
	return s.events.List(ctx)
}

func (s *WardrobeService) EventsForDate(ctx context.Context, date string) ([]domain.PlannedEvent, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}
	return s.events.ForDate(ctx, date)
}

func (s *WardrobeService) GetEvent(ctx context.Context, id string) (domain.PlannedEvent, error) {
	return s.events.Get(ctx, id)
}

func (s *WardrobeService) UpdateEvent(ctx context.Context, id string, updated domain.PlannedEvent) (domain.PlannedEvent, error) {
	if err := validateEvent(&updated); err != nil {
		return domain.PlannedEvent{}, err
	}
	return s.events.Update(ctx, id, func(event *domain.PlannedEvent) {
		updated.ID = event.ID
		updated.CreatedAt = event.CreatedAt
		updated.UpdatedAt = domain.Now()
		*event = updated
	})
}

func (s *WardrobeService) DeleteEvent(ctx context.Context, id string) error {
	return s.events.Delete(ctx, id)
}

// Suggestions runs the organizer heuristics over the current wardrobe.
func (s *WardrobeService) Suggestions(ctx context.Context) ([]organizer.Suggestion, error) {
	items, err := s.items.List(ctx)
	if err != nil {
		return nil, err
	}
	wearLogs, err := s.wearLogs.List(ctx)
	if err != nil {
		return nil, err
	}
	return organizer.GenerateSuggestions(items, wearLogs, time.Now()), nil
}

func (s *WardrobeService) Stats(ctx context.Context) (organizer.Stats, error) {
	var zero organizer.Stats
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
	return organizer.ComputeStats(items, outfits, wearLogs), nil
}

func (s *WardrobeService) SpaceStats(ctx context.Context, spaceID string) (organizer.SpaceStats, error) {
	var zero organizer.SpaceStats
	if _, err := s.spaces.Get(ctx, spaceID); err != nil {
		return zero, err
	}
	items, err := s.items.List(ctx)
	if err != nil {
		return zero, err
	}
	return organizer.ComputeSpaceStats(spaceID, items), nil
}

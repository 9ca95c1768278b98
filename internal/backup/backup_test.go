package backup

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/closetd/closetd/internal/domain"
	"github.com/closetd/closetd/internal/imagestore"
	"github.com/closetd/closetd/internal/store"
)

type fixture struct {
	svc      *Service
	items    *store.ItemStore
	outfits  *store.OutfitStore
	wearLogs *store.WearLogStore
	notes    *store.NoteStore
	spaces   *store.StorageSpaceStore
	events   *store.EventStore
	images   *imagestore.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dir := t.TempDir()
	db, err := sql.Open("sqlite", filepath.Join(dir, "records.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	_, err = db.Exec(`CREATE TABLE records (key TEXT PRIMARY KEY, value TEXT NOT NULL)`)
	require.NoError(t, err)

	images, err := imagestore.Open(filepath.Join(dir, "images.db"))
	require.NoError(t, err)
	t.Cleanup(func() { images.Close() })

	kv := store.NewKV(db)
	f := &fixture{
		items:    store.NewItemStore(kv),
		outfits:  store.NewOutfitStore(kv),
		wearLogs: store.NewWearLogStore(kv),
		notes:    store.NewNoteStore(kv),
		spaces:   store.NewStorageSpaceStore(kv),
		events:   store.NewEventStore(kv),
		images:   images,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.svc = New(f.items, f.outfits, f.wearLogs, f.notes, f.spaces, f.events, images, logger)
	return f
}

func TestExportEmpty(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	doc, err := f.svc.Export(ctx)
	require.NoError(t, err)

	assert.Equal(t, store.CurrentVersion, doc.Version)
	assert.Empty(t, doc.Items)
	assert.Empty(t, doc.Images)
	assert.NotEmpty(t, doc.ExportedAt)
}

func TestExportImportRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item := domain.WardrobeItem{
		ID:        domain.NewID(),
		Name:      "Denim Jacket",
		Category:  domain.CategoryOuterwear,
		Color:     "blue",
		ImageID:   "img-1",
		CreatedAt: domain.Now(),
		UpdatedAt: domain.Now(),
	}
	require.NoError(t, f.items.Add(ctx, item))
	require.NoError(t, f.outfits.Add(ctx, domain.Outfit{
		ID:   domain.NewID(),
		Name: "Weekend",
		Items: []domain.OutfitItem{
			{ItemID: item.ID, Position: domain.Placement{X: 50, Y: 50, Scale: 1}},
		},
	}))
	require.NoError(t, f.wearLogs.Add(ctx, domain.WearLogEntry{
		ID:      domain.NewID(),
		ItemIDs: []string{item.ID},
		Date:    "2026-08-30",
	}))
	require.NoError(t, f.notes.Add(ctx, domain.Note{ID: domain.NewID(), Content: "hemming"}))
	require.NoError(t, f.spaces.Add(ctx, domain.StorageSpace{ID: domain.NewID(), Name: "Closet"}))
	require.NoError(t, f.events.Add(ctx, domain.PlannedEvent{ID: domain.NewID(), Name: "Wedding", Date: "2026-09-12"}))
	require.NoError(t, f.images.Save(ctx, "img-1", []byte("full-bytes"), []byte("thumb-bytes")))

	doc, err := f.svc.Export(ctx)
	require.NoError(t, err)
	payload, err := json.Marshal(doc)
	require.NoError(t, err)

	// Restore into a fresh pair of databases.
	g := newFixture(t)
	result, err := g.svc.Import(ctx, payload)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Items)
	assert.Equal(t, 1, result.Outfits)
	assert.Equal(t, 1, result.Images)

	items, err := g.items.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, item, items[0])

	notes, err := g.notes.List(ctx)
	require.NoError(t, err)
	assert.Len(t, notes, 1)

	spaces, err := g.spaces.List(ctx)
	require.NoError(t, err)
	assert.Len(t, spaces, 1)

	events, err := g.events.List(ctx)
	require.NoError(t, err)
	assert.Len(t, events, 1)

	img, err := g.images.Get(ctx, "img-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("full-bytes"), img.Data)
	assert.Equal(t, []byte("thumb-bytes"), img.Thumbnail)
}

func TestImportReplacesExistingData(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.items.Add(ctx, domain.WardrobeItem{ID: "old", Name: "Old Coat"}))
	require.NoError(t, f.images.Save(ctx, "old-img", []byte("x"), []byte("y")))

	payload, err := json.Marshal(Document{
		Version:    store.CurrentVersion,
		Items:      []domain.WardrobeItem{{ID: "new", Name: "New Coat"}},
		ExportedAt: domain.Now(),
	})
	require.NoError(t, err)

	_, err = f.svc.Import(ctx, payload)
	require.NoError(t, err)

	items, err := f.items.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "new", items[0].ID)

	_, err = f.images.Get(ctx, "old-img")
	assert.ErrorIs(t, err, imagestore.ErrNotFound)
}

func TestImportRejectsMalformedJSON(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.items.Add(ctx, domain.WardrobeItem{ID: "keep", Name: "Keeper"}))

	_, err := f.svc.Import(ctx, []byte("{not json"))
	require.Error(t, err)

	// Rejected imports must not disturb existing data.
	items, err := f.items.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestImportRejectsMissingVersion(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Import(context.Background(), []byte(`{"items":[]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing version")
}

func TestImportRejectsCorruptImageBeforeClearing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.images.Save(ctx, "keep", []byte("a"), []byte("b")))

	payload, err := json.Marshal(Document{
		Version: store.CurrentVersion,
		Images: []ImageExport{
			{ID: "bad", Data: "data:image/jpeg;base64,@@@", Thumbnail: "data:image/jpeg;base64,@@@"},
		},
		ExportedAt: domain.Now(),
	})
	require.NoError(t, err)

	_, err = f.svc.Import(ctx, payload)
	require.Error(t, err)

	_, err = f.images.Get(ctx, "keep")
	assert.NoError(t, err)
}

func TestImageDataURIRoundTrip(t *testing.T) {
	uri := toDataURI([]byte("jpeg-bytes"))
	assert.Contains(t, uri, "data:image/jpeg;base64,")

	data, err := fromDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), data)

	_, err = fromDataURI("no-comma-here")
	assert.Error(t, err)
}

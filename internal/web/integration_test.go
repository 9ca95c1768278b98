package web_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/closetd/closetd/internal/assistant"
	"github.com/closetd/closetd/internal/backup"
	"github.com/closetd/closetd/internal/db"
	"github.com/closetd/closetd/internal/domain"
	"github.com/closetd/closetd/internal/imagestore"
	"github.com/closetd/closetd/internal/service"
	"github.com/closetd/closetd/internal/store"
	"github.com/closetd/closetd/internal/web"
)

// scriptedAssistant returns a canned reply for every send.
type scriptedAssistant struct {
	reply string
}

func (a *scriptedAssistant) Send(_ context.Context, _ string, _ []assistant.Message) (string, error) {
	return a.reply, nil
}

func newTestServer(t *testing.T, client assistant.Client) *httptest.Server {
	t.Helper()

	dir := t.TempDir()
	database, err := db.Open(filepath.Join(dir, "records.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	images, err := imagestore.Open(filepath.Join(dir, "images.db"))
	require.NoError(t, err)
	t.Cleanup(func() { images.Close() })

	kv := store.NewKV(database)
	items := store.NewItemStore(kv)
	outfits := store.NewOutfitStore(kv)
	wearLogs := store.NewWearLogStore(kv)
	notes := store.NewNoteStore(kv)
	spaces := store.NewStorageSpaceStore(kv)
	events := store.NewEventStore(kv)
	conversations := store.NewConversationStore(kv)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	wardrobe := service.NewWardrobeService(items, outfits, wearLogs, notes, spaces, events, images, logger)
	chat := service.NewChatService(conversations, items, outfits, wearLogs, images, client, logger)
	bk := backup.New(items, outfits, wearLogs, notes, spaces, events, images, logger)

	srv := httptest.NewServer(web.NewServer(wardrobe, chat, bk, logger))
	t.Cleanup(srv.Close)
	return srv
}

func testJPEG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 48, 48))
	for x := 0; x < 48; x++ {
		for y := 0; y < 48; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 5), G: uint8(y * 5), B: 99, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

// createItem posts a multipart item form and decodes the created record.
func createItem(t *testing.T, srv *httptest.Server, name, category string, extra map[string]string) domain.WardrobeItem {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("name", name))
	require.NoError(t, mw.WriteField("category", category))
	for k, v := range extra {
		require.NoError(t, mw.WriteField(k, v))
	}
	fw, err := mw.CreateFormFile("image", "item.jpg")
	require.NoError(t, err)
	_, err = fw.Write(testJPEG(t))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := http.Post(srv.URL+"/api/items", mw.FormDataContentType(), &body)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var item domain.WardrobeItem
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&item))
	return item
}

func postJSON(t *testing.T, srv *httptest.Server, path string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	resp, err := http.Post(srv.URL+path, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	return resp
}

func do(t *testing.T, method, url string, body io.Reader) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestItemLifecycle(t *testing.T) {
	srv := newTestServer(t, nil)

	item := createItem(t, srv, "Wool Coat", "outerwear", map[string]string{"color": "camel"})
	assert.NotEmpty(t, item.ID)
	assert.NotEmpty(t, item.ImageID)
	assert.Equal(t, "camel", item.Color)

	resp, err := http.Get(srv.URL + "/api/items")
	require.NoError(t, err)
	items := decode[[]domain.WardrobeItem](t, resp)
	require.Len(t, items, 1)

	resp, err = http.Get(srv.URL + "/api/items/" + item.ID + "/thumbnail")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/jpeg", resp.Header.Get("Content-Type"))

	item.Name = "Camel Coat"
	body, err := json.Marshal(item)
	require.NoError(t, err)
	resp = do(t, http.MethodPut, srv.URL+"/api/items/"+item.ID, bytes.NewReader(body))
	updated := decode[domain.WardrobeItem](t, resp)
	assert.Equal(t, "Camel Coat", updated.Name)

	resp = do(t, http.MethodDelete, srv.URL+"/api/items/"+item.ID, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/api/items/" + item.ID)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateItemRejectsNonImage(t *testing.T) {
	srv := newTestServer(t, nil)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("name", "Broken"))
	require.NoError(t, mw.WriteField("category", "tops"))
	fw, err := mw.CreateFormFile("image", "item.txt")
	require.NoError(t, err)
	_, err = fw.Write([]byte("plain text, not an image"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := http.Post(srv.URL+"/api/items", mw.FormDataContentType(), &body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestOutfitValidation(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := postJSON(t, srv, "/api/outfits", domain.Outfit{
		Name:  "Solo",
		Items: []domain.OutfitItem{{ItemID: "a"}},
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = postJSON(t, srv, "/api/outfits", domain.Outfit{
		Name:  "Pair",
		Items: []domain.OutfitItem{{ItemID: "a"}, {ItemID: "b"}},
	})
	outfit := decode[domain.Outfit](t, resp)
	assert.NotEmpty(t, outfit.ID)
}

func TestWearLogDateFilter(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := postJSON(t, srv, "/api/wear-logs", domain.WearLogEntry{Date: "2026-08-30", ItemIDs: []string{"a"}})
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = postJSON(t, srv, "/api/wear-logs", domain.WearLogEntry{Date: "2026-08-31", ItemIDs: []string{"b"}})
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	httpResp, err := http.Get(srv.URL + "/api/wear-logs?date=2026-08-31")
	require.NoError(t, err)
	logs := decode[[]domain.WearLogEntry](t, httpResp)
	require.Len(t, logs, 1)
	assert.Equal(t, []string{"b"}, logs[0].ItemIDs)

	httpResp, err = http.Get(srv.URL + "/api/wear-logs?date=31-08-2026")
	require.NoError(t, err)
	httpResp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, httpResp.StatusCode)
}

func TestSpaceAssignmentAndStats(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := postJSON(t, srv, "/api/spaces", domain.StorageSpace{Name: "Hall Closet", Type: domain.SpaceHanging})
	space := decode[domain.StorageSpace](t, resp)

	item := createItem(t, srv, "Raincoat", "outerwear", nil)

	resp = postJSON(t, srv, "/api/items/assign", map[string]any{
		"itemIds":        []string{item.ID},
		"storageSpaceId": space.ID,
	})
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	httpResp, err := http.Get(srv.URL + "/api/spaces/" + space.ID + "/stats")
	require.NoError(t, err)
	stats := decode[map[string]any](t, httpResp)
	assert.Equal(t, float64(1), stats["itemCount"])

	// Deleting the space unassigns the item rather than deleting it.
	delResp := do(t, http.MethodDelete, srv.URL+"/api/spaces/"+space.ID, nil)
	delResp.Body.Close()
	require.Equal(t, http.StatusNoContent, delResp.StatusCode)

	httpResp, err = http.Get(srv.URL + "/api/items/" + item.ID)
	require.NoError(t, err)
	got := decode[domain.WardrobeItem](t, httpResp)
	assert.Empty(t, got.StorageSpaceID)
}

func TestSuggestionsAndStatsEndpoints(t *testing.T) {
	srv := newTestServer(t, nil)

	createItem(t, srv, "White Tee", "tops", nil)

	resp, err := http.Get(srv.URL + "/api/suggestions")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	statsResp, err := http.Get(srv.URL + "/api/stats")
	require.NoError(t, err)
	stats := decode[map[string]any](t, statsResp)
	assert.Equal(t, float64(1), stats["totalItems"])
}

func TestExportImportOverHTTP(t *testing.T) {
	src := newTestServer(t, nil)
	item := createItem(t, src, "Linen Shirt", "tops", nil)

	resp, err := http.Get(src.URL + "/api/export")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
	payload, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)

	dst := newTestServer(t, nil)
	importResp, err := http.Post(dst.URL+"/api/import", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	result := decode[map[string]any](t, importResp)
	assert.Equal(t, float64(1), result["itemCount"])
	assert.Equal(t, float64(1), result["imageCount"])

	getResp, err := http.Get(dst.URL + "/api/items/" + item.ID)
	require.NoError(t, err)
	restored := decode[domain.WardrobeItem](t, getResp)
	assert.Equal(t, "Linen Shirt", restored.Name)

	imgResp, err := http.Get(dst.URL + "/api/items/" + item.ID + "/image")
	require.NoError(t, err)
	defer imgResp.Body.Close()
	assert.Equal(t, http.StatusOK, imgResp.StatusCode)
}

func TestImportRejectsGarbage(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, err := http.Post(srv.URL+"/api/import", "application/json", bytes.NewReader([]byte("{broken")))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestChatEndpoints(t *testing.T) {
	srv := newTestServer(t, &scriptedAssistant{reply: "Wear the linen shirt."})

	resp, err := http.Get(srv.URL + "/api/assistant/status")
	require.NoError(t, err)
	status := decode[map[string]bool](t, resp)
	assert.True(t, status["configured"])

	createResp := do(t, http.MethodPost, srv.URL+"/api/conversations", nil)
	conv := decode[domain.Conversation](t, createResp)
	assert.Equal(t, "New Chat", conv.Title)

	sendResp := postJSON(t, srv, "/api/conversations/"+conv.ID+"/messages", map[string]any{
		"content": "What should I wear?",
	})
	updated := decode[domain.Conversation](t, sendResp)
	require.Len(t, updated.Messages, 2)
	assert.Equal(t, "Wear the linen shirt.", updated.Messages[1].Content)
	assert.Equal(t, "What should I wear?", updated.Title)

	delResp := do(t, http.MethodDelete, srv.URL+"/api/conversations/"+conv.ID, nil)
	delResp.Body.Close()
	assert.Equal(t, http.StatusNoContent, delResp.StatusCode)
}

func TestChatDisabled(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + "/api/assistant/status")
	require.NoError(t, err)
	status := decode[map[string]bool](t, resp)
	assert.False(t, status["configured"])

	createResp := do(t, http.MethodPost, srv.URL+"/api/conversations", nil)
	conv := decode[domain.Conversation](t, createResp)

	sendResp := postJSON(t, srv, "/api/conversations/"+conv.ID+"/messages", map[string]any{
		"content": "hello",
	})
	sendResp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, sendResp.StatusCode)
}

func TestNotFoundResponsesAreJSON(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + "/api/items/missing")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "not found", body["error"])
}

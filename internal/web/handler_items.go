package web

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/closetd/closetd/internal/domain"
	"github.com/closetd/closetd/internal/service"
)

const maxUploadSize = 50 * 1024 * 1024 // 50 MB

// allowedImageTypes is the set of MIME types accepted for uploaded photos.
// The pipeline re-encodes everything to JPEG, so only formats the decoder
// understands are allowed in.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

func allowedImageMIME(data []byte) (string, bool) {
	mime := http.DetectContentType(data)
	if allowedImageTypes[mime] {
		return mime, true
	}
	return "", false
}

// readUpload pulls the "image" part out of a multipart request and
// sniffs its type.
func readUpload(r *http.Request) ([]byte, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return nil, fmt.Errorf("%w: failed to parse form", service.ErrInvalid)
	}
	file, _, err := r.FormFile("image")
	if err != nil {
		return nil, fmt.Errorf("%w: image file required", service.ErrInvalid)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if _, ok := allowedImageMIME(data); !ok {
		return nil, fmt.Errorf("%w: unsupported image format", service.ErrInvalid)
	}
	return data, nil
}

// itemFromForm maps the multipart form fields onto an item record.
// Repeated fields (seasons, tags) arrive as repeated form values.
func itemFromForm(r *http.Request) (domain.WardrobeItem, error) {
	item := domain.WardrobeItem{
		Name:           r.FormValue("name"),
		Category:       domain.Category(r.FormValue("category")),
		Color:          r.FormValue("color"),
		Brand:          r.FormValue("brand"),
		PurchaseDate:   r.FormValue("purchaseDate"),
		Notes:          r.FormValue("notes"),
		Size:           r.FormValue("size"),
		Fit:            domain.Fit(r.FormValue("fit")),
		SaleLink:       r.FormValue("saleLink"),
		StorageSpaceID: r.FormValue("storageSpaceId"),
	}
	for _, season := range r.Form["seasons"] {
		item.Seasons = append(item.Seasons, domain.Season(season))
	}
	item.Tags = append(item.Tags, r.Form["tags"]...)

	if raw := r.FormValue("price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return item, fmt.Errorf("%w: price must be a number", service.ErrInvalid)
		}
		item.Price = &price
	}
	if raw := r.FormValue("forSale"); raw != "" {
		forSale, err := strconv.ParseBool(raw)
		if err != nil {
			return item, fmt.Errorf("%w: forSale must be a boolean", service.ErrInvalid)
		}
		item.ForSale = forSale
	}
	return item, nil
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.wardrobe.ListItems(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if items == nil {
		items = []domain.WardrobeItem{}
	}
	s.writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	imageData, err := readUpload(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	item, err := itemFromForm(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	created, err := s.wardrobe.AddItem(r.Context(), item, imageData)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	item, err := s.wardrobe.GetItem(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	var item domain.WardrobeItem
	if err := decodeJSON(r, &item); err != nil {
		s.writeError(w, r, err)
		return
	}
	updated, err := s.wardrobe.UpdateItem(r.Context(), r.PathValue("id"), item)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := s.wardrobe.DeleteItem(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleItemImage(w http.ResponseWriter, r *http.Request) {
	record, err := s.wardrobe.ItemImage(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/jpeg")
	_, _ = w.Write(record.Data)
}

func (s *Server) handleItemThumbnail(w http.ResponseWriter, r *http.Request) {
	record, err := s.wardrobe.ItemImage(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/jpeg")
	_, _ = w.Write(record.Thumbnail)
}

func (s *Server) handleReplaceItemImage(w http.ResponseWriter, r *http.Request) {
	imageData, err := readUpload(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	updated, err := s.wardrobe.ReplaceItemImage(r.Context(), r.PathValue("id"), imageData)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, updated)
}

type assignRequest struct {
	ItemIDs        []string `json:"itemIds"`
	StorageSpaceID string   `json:"storageSpaceId"`
}

func (s *Server) handleAssignItems(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.wardrobe.AssignItemsToSpace(r.Context(), req.ItemIDs, req.StorageSpaceID); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

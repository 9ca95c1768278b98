package domain

import (
	"time"

	"github.com/google/uuid"
)

// Timestamps are persisted as RFC 3339 UTC strings so that records
// round-trip byte-identically through the backup format.

type WardrobeItem struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Category       Category `json:"category"`
	Color          string   `json:"color"`
	Seasons        []Season `json:"seasons"`
	ImageID        string   `json:"imageId"`
	Brand          string   `json:"brand,omitempty"`
	PurchaseDate   string   `json:"purchaseDate,omitempty"`
	Price          *float64 `json:"price,omitempty"`
	Notes          string   `json:"notes,omitempty"`
	Size           string   `json:"size,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	Fit            Fit      `json:"fit,omitempty"`
	ForSale        bool     `json:"forSale,omitempty"`
	SaleLink       string   `json:"saleLink,omitempty"`
	StorageSpaceID string   `json:"storageSpaceId,omitempty"`
	CreatedAt      string   `json:"createdAt"`
	UpdatedAt      string   `json:"updatedAt"`
}

// Placement positions an item on the outfit canvas. X and Y are
// percentages of the canvas, not pixels.
type Placement struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Scale  float64 `json:"scale"`
	ZIndex int     `json:"zIndex"`
}

type OutfitItem struct {
	ItemID   string    `json:"itemId"`
	Position Placement `json:"position"`
}

type Outfit struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Items       []OutfitItem `json:"items"`
	CreatedAt   string       `json:"createdAt"`
	UpdatedAt   string       `json:"updatedAt"`
}

// WearLogEntry records that items were worn on a calendar day. Date is
// YYYY-MM-DD; multiple entries per day are allowed.
type WearLogEntry struct {
	ID        string   `json:"id"`
	Date      string   `json:"date"`
	OutfitID  string   `json:"outfitId,omitempty"`
	ItemIDs   []string `json:"itemIds"`
	Notes     string   `json:"notes,omitempty"`
	CreatedAt string   `json:"createdAt"`
}

type PlannedEvent struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Date      string   `json:"date"`
	Occasion  Occasion `json:"occasion"`
	OutfitID  string   `json:"outfitId,omitempty"`
	Notes     string   `json:"notes,omitempty"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
}

type Note struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type StorageSpace struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Type      StorageSpaceType `json:"type"`
	Location  string           `json:"location,omitempty"`
	CreatedAt string           `json:"createdAt"`
	UpdatedAt string           `json:"updatedAt"`
}

type ChatMessage struct {
	ID                string   `json:"id"`
	Role              ChatRole `json:"role"`
	Content           string   `json:"content"`
	Timestamp         string   `json:"timestamp"`
	ReferencedItemIDs []string `json:"referencedItemIds,omitempty"`
}

type Conversation struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Messages  []ChatMessage `json:"messages"`
	CreatedAt string        `json:"createdAt"`
	UpdatedAt string        `json:"updatedAt"`
}

// NewID returns a fresh record identifier.
func NewID() string {
	return uuid.NewString()
}

// Timestamp renders t in the persisted timestamp format.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// Now returns the current time in the persisted timestamp format.
func Now() string {
	return Timestamp(time.Now())
}

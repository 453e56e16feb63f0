package storage

import "time"

// Message types stored in the transcript.
const (
	MessageTypeText  = "TEXT"
	MessageTypeImage = "IMAGE"
	MessageTypeRead  = "READ"
)

// AssistantSenderID is the reserved sender id for assistant messages.
const AssistantSenderID = "assistant"

// ItemStatusInCloset marks items still available to wear. Sold or donated
// items carry other statuses and are excluded from recommendations.
const ItemStatusInCloset = "IN_CLOSET"

// User is a profile record. Read-only to the assistant core.
type User struct {
	ID            int64   `json:"id" db:"id"`
	Nickname      string  `json:"nickname" db:"nickname"`
	Address       string  `json:"address" db:"address"`
	EcoPoints     int64   `json:"eco_points" db:"eco_points"`
	CarbonSavedKg float64 `json:"carbon_saved_kg" db:"carbon_saved_kg"`
}

// WardrobeItem is a catalog/inventory record owned by one user.
type WardrobeItem struct {
	ID        int64     `json:"id" db:"id"`
	OwnerID   int64     `json:"owner_id" db:"owner_id"`
	Name      string    `json:"name" db:"name"`
	Category  string    `json:"category" db:"category"`
	Brand     string    `json:"brand" db:"brand"`
	Color     string    `json:"color" db:"color"`
	Season    string    `json:"season" db:"season"` // comma-separated labels, empty or 사계절 = all
	Status    string    `json:"status" db:"status"`
	ForSale   bool      `json:"for_sale" db:"for_sale"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CalendarEvent is a planned-outfit entry keyed by date (YYYY-MM-DD).
type CalendarEvent struct {
	ID        int64  `json:"id" db:"id"`
	OwnerID   int64  `json:"owner_id" db:"owner_id"`
	EventDate string `json:"event_date" db:"event_date"`
	Title     string `json:"title" db:"title"`
	HasImage  bool   `json:"has_image" db:"has_image"`
}

// Thread is the durable 1:1 conversation between a user and the assistant.
// Created lazily on first message, never deleted.
type Thread struct {
	ID        string    `json:"id" db:"id"`
	OwnerID   int64     `json:"owner_id" db:"owner_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Message is one immutable utterance in a thread. Append-only.
type Message struct {
	ID        string    `json:"id" db:"id"`
	ThreadID  string    `json:"thread_id" db:"thread_id"`
	SenderID  string    `json:"sender_id" db:"sender_id"`
	Type      string    `json:"type" db:"type"`
	Body      string    `json:"body" db:"body"`
	ImageURL  string    `json:"image_url,omitempty" db:"image_url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

package store

import "time"

type Photo struct {
	ID           string    `json:"id"`
	URL          string    `json:"url"`
	Caption      string    `json:"caption"`
	UploadedBy   string    `json:"uploaded_by"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

type Message struct {
	ID          string    `json:"id"`
	AuthorName  string    `json:"author_name"`
	MessageText string    `json:"message_text"`
	IsApproved  bool      `json:"is_approved"`
	CreatedAt   time.Time `json:"created_at"`
}

// GreetingCard is a singleton: at most one row is ever consumed.
// Rows are created and edited outside this system.
type GreetingCard struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	MainMessage string    `json:"main_message"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewPhoto is the insert shape for the photos collection.
type NewPhoto struct {
	URL          string `json:"url"`
	Caption      string `json:"caption"`
	UploadedBy   string `json:"uploaded_by"`
	DisplayOrder int    `json:"display_order"`
}

// NewMessage is the insert shape for the messages collection.
// IsApproved is set by the submitting client; there is no moderation
// gate behind it (kept as-is from the original system, not fixed here).
type NewMessage struct {
	AuthorName  string `json:"author_name"`
	MessageText string `json:"message_text"`
	IsApproved  bool   `json:"is_approved"`
}

// PhotoBefore reports whether a sorts before b in display order:
// ascending display_order, ties broken by newest created_at first.
func PhotoBefore(a, b Photo) bool {
	if a.DisplayOrder != b.DisplayOrder {
		return a.DisplayOrder < b.DisplayOrder
	}
	return a.CreatedAt.After(b.CreatedAt)
}

// MessageBefore reports whether a sorts before b on the board:
// newest created_at first.
func MessageBefore(a, b Message) bool {
	return a.CreatedAt.After(b.CreatedAt)
}

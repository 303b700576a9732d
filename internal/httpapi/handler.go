package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"memory-album/internal/store"
)

// RecordStore is what the handlers need from the record store.
type RecordStore interface {
	ListPhotos(ctx context.Context) ([]store.Photo, error)
	InsertPhoto(ctx context.Context, p store.NewPhoto) error
	ListMessages(ctx context.Context) ([]store.Message, error)
	InsertMessage(ctx context.Context, m store.NewMessage) error
	Greeting(ctx context.Context) (*store.GreetingCard, error)
}

// Handler serves the album record collections over JSON. Inserts apply
// the same validation rules as the client controllers, so a misbehaving
// client cannot slip an empty record past the store.
type Handler struct {
	store RecordStore
}

func NewHandler(s RecordStore) *Handler {
	return &Handler{store: s}
}

func (h *Handler) ListPhotos(w http.ResponseWriter, r *http.Request) {
	photos, err := h.store.ListPhotos(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if photos == nil {
		photos = []store.Photo{}
	}
	json.NewEncoder(w).Encode(photos)
}

func (h *Handler) CreatePhoto(w http.ResponseWriter, r *http.Request) {
	var req store.NewPhoto
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.URL) == "" {
		http.Error(w, "url is required", http.StatusBadRequest)
		return
	}
	if req.UploadedBy == "" {
		req.UploadedBy = "anonymous"
	}
	// display_order is not caller-controlled
	req.DisplayOrder = 0

	if err := h.store.InsertPhoto(r.Context(), req); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.store.ListMessages(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if messages == nil {
		messages = []store.Message{}
	}
	json.NewEncoder(w).Encode(messages)
}

func (h *Handler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	var req store.NewMessage
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	req.AuthorName = strings.TrimSpace(req.AuthorName)
	req.MessageText = strings.TrimSpace(req.MessageText)
	if req.AuthorName == "" || req.MessageText == "" {
		http.Error(w, "author_name and message_text are required", http.StatusBadRequest)
		return
	}
	// Approval is asserted by the submitting client; there is no
	// moderation gate behind it.
	req.IsApproved = true

	if err := h.store.InsertMessage(r.Context(), req); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) GetGreeting(w http.ResponseWriter, r *http.Request) {
	card, err := h.store.Greeting(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if card == nil {
		http.Error(w, "no greeting card", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(card)
}

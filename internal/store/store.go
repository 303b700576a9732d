package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

// Store is a thin typed accessor over the three record collections.
// It builds requests and hydrates rows; it holds no logic beyond that.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListPhotos(ctx context.Context) ([]Photo, error) {
	query := `
		SELECT id, url, caption, uploaded_by, display_order, created_at
		FROM photos
		ORDER BY display_order ASC, created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []Photo
	for rows.Next() {
		var p Photo
		if err := rows.Scan(&p.ID, &p.URL, &p.Caption, &p.UploadedBy, &p.DisplayOrder, &p.CreatedAt); err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

func (s *Store) InsertPhoto(ctx context.Context, p NewPhoto) error {
	query := `
		INSERT INTO photos (id, url, caption, uploaded_by, display_order)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query, uuid.NewString(), p.URL, p.Caption, p.UploadedBy, p.DisplayOrder)
	return err
}

// ListMessages returns approved messages only, newest first.
func (s *Store) ListMessages(ctx context.Context) ([]Message, error) {
	query := `
		SELECT id, author_name, message_text, is_approved, created_at
		FROM messages
		WHERE is_approved = TRUE
		ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.AuthorName, &m.MessageText, &m.IsApproved, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (s *Store) InsertMessage(ctx context.Context, m NewMessage) error {
	query := `
		INSERT INTO messages (id, author_name, message_text, is_approved)
		VALUES ($1, $2, $3, $4)
	`
	_, err := s.db.ExecContext(ctx, query, uuid.NewString(), m.AuthorName, m.MessageText, m.IsApproved)
	return err
}

// Greeting reads the greeting card singleton. Absence is valid and
// returns (nil, nil).
func (s *Store) Greeting(ctx context.Context) (*GreetingCard, error) {
	query := `
		SELECT id, title, main_message, created_at, updated_at
		FROM greeting_card
		LIMIT 1
	`
	g := &GreetingCard{}
	err := s.db.QueryRowContext(ctx, query).Scan(&g.ID, &g.Title, &g.MainMessage, &g.CreatedAt, &g.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

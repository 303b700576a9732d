package board

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"memory-album/internal/store"
)

// ErrValidation marks submissions rejected locally, before any network
// call is made.
var ErrValidation = errors.New("validation failed")

// MessageStore is what the controller needs from the record store.
type MessageStore interface {
	ListMessages(ctx context.Context) ([]store.Message, error)
	InsertMessage(ctx context.Context, m store.NewMessage) error
}

// Form is the dedication form state.
type Form struct {
	AuthorName  string
	MessageText string
}

// Controller owns the dedication board list and submission form. It
// mirrors the gallery controller without a selection concept, and the
// same load semantics apply: full reload after a successful insert,
// overlapping loads resolve in arrival order.
type Controller struct {
	store MessageStore

	mu       sync.Mutex
	messages []store.Message
	form     Form
	formOpen bool
	lastErr  error
}

func NewController(s MessageStore) *Controller {
	return &Controller{store: s}
}

// Load replaces the whole list. On failure the prior list is retained
// and the error is kept for the caller to surface and retry.
func (c *Controller) Load(ctx context.Context) error {
	messages, err := c.store.ListMessages(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.lastErr = err
		return err
	}
	sort.SliceStable(messages, func(i, j int) bool {
		return store.MessageBefore(messages[i], messages[j])
	})
	c.messages = messages
	c.lastErr = nil
	return nil
}

// Submit inserts a dedication. Both fields must be non-empty after
// trimming or the submission is rejected locally with zero network
// calls. The inserted record is approved by the submitting client
// itself; there is no moderation gate behind it.
func (c *Controller) Submit(ctx context.Context, authorName, messageText string) error {
	c.mu.Lock()
	c.form = Form{AuthorName: authorName, MessageText: messageText}
	c.mu.Unlock()

	authorName = strings.TrimSpace(authorName)
	messageText = strings.TrimSpace(messageText)
	if authorName == "" || messageText == "" {
		return fmt.Errorf("%w: author name and message are required", ErrValidation)
	}

	err := c.store.InsertMessage(ctx, store.NewMessage{
		AuthorName:  authorName,
		MessageText: messageText,
		IsApproved:  true,
	})
	if err != nil {
		c.mu.Lock()
		c.lastErr = err
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	c.form = Form{}
	c.formOpen = false
	c.mu.Unlock()

	_ = c.Load(ctx)
	return nil
}

func (c *Controller) Messages() []store.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.messages
}

func (c *Controller) OpenForm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.formOpen = true
}

func (c *Controller) CloseForm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.formOpen = false
}

func (c *Controller) FormOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.formOpen
}

func (c *Controller) Form() Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// LastError reports the most recent load or insert failure, nil after
// a clean load.
func (c *Controller) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

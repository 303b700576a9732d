package gallery

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"memory-album/internal/store"
)

// AnonymousUploader labels photos submitted without a name.
const AnonymousUploader = "anonymous"

// ErrValidation marks submissions rejected locally, before any network
// call is made.
var ErrValidation = errors.New("validation failed")

// PhotoStore is what the controller needs from the record store.
type PhotoStore interface {
	ListPhotos(ctx context.Context) ([]store.Photo, error)
	InsertPhoto(ctx context.Context, p store.NewPhoto) error
}

// Form is the submission form state.
type Form struct {
	URL        string
	Caption    string
	UploadedBy string
}

// Controller owns the gallery list, the submission form and the
// lightbox selection. Lists are always re-derived by a full reload
// after a successful insert; there is no optimistic merge.
//
// Overlapping Load calls are not de-duplicated: responses apply in
// arrival order, so a slow stale response can overwrite a newer one.
// The mutex only keeps that memory-safe.
type Controller struct {
	store PhotoStore

	mu       sync.Mutex
	photos   []store.Photo
	selected *store.Photo
	form     Form
	formOpen bool
	lastErr  error
}

func NewController(s PhotoStore) *Controller {
	return &Controller{store: s}
}

// Load replaces the whole list. On failure the prior list is retained
// and the error is kept for the caller to surface and retry.
func (c *Controller) Load(ctx context.Context) error {
	photos, err := c.store.ListPhotos(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.lastErr = err
		return err
	}
	sort.SliceStable(photos, func(i, j int) bool {
		return store.PhotoBefore(photos[i], photos[j])
	})
	c.photos = photos
	c.lastErr = nil
	return nil
}

// Submit inserts a photo. A blank url is rejected locally with zero
// network calls and the form stays open. On insert success the form is
// cleared and hidden and the list is fully reloaded; on store failure
// the form stays open and populated.
func (c *Controller) Submit(ctx context.Context, url, caption, uploadedBy string) error {
	c.mu.Lock()
	c.form = Form{URL: url, Caption: caption, UploadedBy: uploadedBy}
	c.mu.Unlock()

	if strings.TrimSpace(url) == "" {
		return fmt.Errorf("%w: url is required", ErrValidation)
	}

	if uploadedBy == "" {
		uploadedBy = AnonymousUploader
	}

	err := c.store.InsertPhoto(ctx, store.NewPhoto{
		URL:          url,
		Caption:      caption,
		UploadedBy:   uploadedBy,
		DisplayOrder: 0,
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

	// Reload so the displayed order is authoritative; a reload failure
	// is recorded by Load itself.
	_ = c.Load(ctx)
	return nil
}

// Select opens the lightbox on one photo. Pure local state.
func (c *Controller) Select(p store.Photo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = &p
}

// ClearSelection closes the lightbox.
func (c *Controller) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = nil
}

func (c *Controller) Selected() *store.Photo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

func (c *Controller) Photos() []store.Photo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.photos
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

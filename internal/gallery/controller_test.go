package gallery

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memory-album/internal/store"
)

type fakeStore struct {
	photos    []store.Photo
	listErr   error
	insertErr error

	listCalls int
	inserted  []store.NewPhoto
}

func (f *fakeStore) ListPhotos(context.Context) ([]store.Photo, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.photos, nil
}

func (f *fakeStore) InsertPhoto(_ context.Context, p store.NewPhoto) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, p)
	return nil
}

func TestSubmitBlankURLRejectedLocally(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{name: "empty", url: ""},
		{name: "whitespace", url: "   "},
		{name: "tabs and newlines", url: "\t\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := &fakeStore{}
			c := NewController(fs)
			c.OpenForm()

			err := c.Submit(context.Background(), tt.url, "a caption", "Dana")
			require.ErrorIs(t, err, ErrValidation)

			assert.Empty(t, fs.inserted, "no insert for blank url")
			assert.Zero(t, fs.listCalls, "no reload for blank url")
			assert.True(t, c.FormOpen(), "form stays open")
			assert.Equal(t, "Dana", c.Form().UploadedBy, "form stays populated")
		})
	}
}

func TestSubmitInsertsThenReloads(t *testing.T) {
	fs := &fakeStore{}
	c := NewController(fs)
	c.OpenForm()

	err := c.Submit(context.Background(), "https://example.com/p.jpg", "the beach", "Dana")
	require.NoError(t, err)

	require.Len(t, fs.inserted, 1, "exactly one insert")
	got := fs.inserted[0]
	assert.Equal(t, "https://example.com/p.jpg", got.URL)
	assert.Equal(t, "the beach", got.Caption)
	assert.Equal(t, "Dana", got.UploadedBy)
	assert.Zero(t, got.DisplayOrder)

	assert.Equal(t, 1, fs.listCalls, "full reload after insert, no in-place append")
	assert.False(t, c.FormOpen(), "form hidden after success")
	assert.Equal(t, Form{}, c.Form(), "form cleared after success")
}

func TestSubmitDefaultsAnonymousUploader(t *testing.T) {
	fs := &fakeStore{}
	c := NewController(fs)

	require.NoError(t, c.Submit(context.Background(), "https://example.com/p.jpg", "", ""))
	require.Len(t, fs.inserted, 1)
	assert.Equal(t, AnonymousUploader, fs.inserted[0].UploadedBy)
}

func TestSubmitStoreFailureKeepsFormOpen(t *testing.T) {
	fs := &fakeStore{insertErr: errors.New("store unreachable")}
	c := NewController(fs)
	c.OpenForm()

	err := c.Submit(context.Background(), "https://example.com/p.jpg", "cap", "Dana")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrValidation)

	assert.Zero(t, fs.listCalls, "no reload after failed insert")
	assert.True(t, c.FormOpen())
	assert.Equal(t, "https://example.com/p.jpg", c.Form().URL)
	assert.Error(t, c.LastError())
}

func TestLoadFailureRetainsPriorList(t *testing.T) {
	fs := &fakeStore{photos: []store.Photo{{ID: "p1", URL: "u1"}}}
	c := NewController(fs)
	require.NoError(t, c.Load(context.Background()))
	require.Len(t, c.Photos(), 1)

	fs.listErr = errors.New("store unreachable")
	require.Error(t, c.Load(context.Background()))
	assert.Len(t, c.Photos(), 1, "prior list retained on failed load")
	assert.Error(t, c.LastError(), "failure surfaced, not swallowed")

	// Retry is just another Load.
	fs.listErr = nil
	require.NoError(t, c.Load(context.Background()))
	assert.NoError(t, c.LastError())
}

func TestLoadOrdering(t *testing.T) {
	t1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	t3 := t2.Add(time.Hour)

	fs := &fakeStore{photos: []store.Photo{
		{ID: "a", DisplayOrder: 2, CreatedAt: t1},
		{ID: "b", DisplayOrder: 1, CreatedAt: t2},
		{ID: "c", DisplayOrder: 1, CreatedAt: t3},
	}}
	c := NewController(fs)
	require.NoError(t, c.Load(context.Background()))

	got := c.Photos()
	require.Len(t, got, 3)
	// display_order ascending, ties newest-created first
	assert.Equal(t, "c", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
	assert.Equal(t, "a", got[2].ID)
}

func TestLightboxSelection(t *testing.T) {
	c := NewController(&fakeStore{})
	require.Nil(t, c.Selected())

	p := store.Photo{ID: "p1", URL: "u1"}
	c.Select(p)
	require.NotNil(t, c.Selected())
	assert.Equal(t, "p1", c.Selected().ID)

	c.ClearSelection()
	assert.Nil(t, c.Selected())
}

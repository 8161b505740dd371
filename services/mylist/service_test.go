package mylist

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streamflixtv/internal/prefs"
	"streamflixtv/models"
)

func newTestService(t *testing.T) (*Service, prefs.Store) {
	t.Helper()
	store, err := prefs.NewFileStore(afero.NewMemMapFs(), "prefs", Namespace)
	require.NoError(t, err)
	svc, err := NewService(store)
	require.NoError(t, err)
	return svc, store
}

type brokenStore struct{}

func (brokenStore) Get(string) (string, bool, error) { return "", false, errors.New("disk gone") }
func (brokenStore) Put(string, string) error         { return errors.New("disk gone") }
func (brokenStore) Remove(string) error              { return errors.New("disk gone") }
func (brokenStore) Close() error                     { return nil }

func TestToggleAddsThenRemoves(t *testing.T) {
	svc, _ := newTestService(t)
	movie := models.Movie{Slug: "bo-gia", Name: "Bố Già"}

	assert.False(t, svc.Contains(movie))

	inList, err := svc.Toggle(movie)
	require.NoError(t, err)
	assert.True(t, inList)
	assert.True(t, svc.Contains(movie))
	assert.True(t, svc.HasItems())

	inList, err = svc.Toggle(movie)
	require.NoError(t, err)
	assert.False(t, inList)
	assert.False(t, svc.Contains(movie))
	assert.False(t, svc.HasItems())
}

func TestAddIsIdempotentAndNewestFirst(t *testing.T) {
	svc, _ := newTestService(t)

	require.NoError(t, svc.Add(models.Movie{Slug: "a"}))
	require.NoError(t, svc.Add(models.Movie{Slug: "b"}))
	require.NoError(t, svc.Add(models.Movie{Slug: "a", Name: "duplicate"}))

	list := svc.List()
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[0].Slug)
	assert.Equal(t, "a", list[1].Slug)
	assert.Empty(t, list[1].Name, "existing entry must not be replaced")
}

func TestRemoveMissingIsNoop(t *testing.T) {
	svc, _ := newTestService(t)
	require.NoError(t, svc.Add(models.Movie{Slug: "a"}))
	require.NoError(t, svc.Remove(models.Movie{Slug: "zzz"}))
	assert.Len(t, svc.List(), 1)
}

func TestSlugRequired(t *testing.T) {
	svc, _ := newTestService(t)
	assert.ErrorIs(t, svc.Add(models.Movie{Name: "no slug"}), ErrSlugRequired)
	assert.ErrorIs(t, svc.Remove(models.Movie{}), ErrSlugRequired)
	_, err := svc.Toggle(models.Movie{Slug: "  "})
	assert.ErrorIs(t, err, ErrSlugRequired)
	assert.False(t, svc.Contains(models.Movie{}))
}

func TestMalformedBlobIsEmpty(t *testing.T) {
	svc, store := newTestService(t)
	require.NoError(t, store.Put(Key, "{this is not an array"))

	assert.Empty(t, svc.List())
	assert.NotNil(t, svc.List())
	assert.False(t, svc.HasItems())

	// the next write replaces the bad blob
	require.NoError(t, svc.Add(models.Movie{Slug: "a"}))
	assert.Len(t, svc.List(), 1)
}

func TestStoreFailures(t *testing.T) {
	svc, err := NewService(brokenStore{})
	require.NoError(t, err)

	assert.Empty(t, svc.List())
	assert.False(t, svc.HasItems())
	assert.Error(t, svc.Add(models.Movie{Slug: "a"}))

	_, err = NewService(nil)
	assert.ErrorIs(t, err, ErrStoreRequired)
}

func TestSearchFoldsDiacritics(t *testing.T) {
	svc, _ := newTestService(t)
	require.NoError(t, svc.Add(models.Movie{Slug: "bo-gia", Name: "Bố Già"}))
	require.NoError(t, svc.Add(models.Movie{Slug: "mat-biec", Name: "Mắt Biếc"}))
	require.NoError(t, svc.Add(models.Movie{Slug: "inception", Title: "Inception"}))

	hits := svc.Search("bo gia")
	require.Len(t, hits, 1)
	assert.Equal(t, "bo-gia", hits[0].Slug)

	hits = svc.Search("MAT")
	require.Len(t, hits, 1)
	assert.Equal(t, "mat-biec", hits[0].Slug)

	assert.Empty(t, svc.Search(""))
}

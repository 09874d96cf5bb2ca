package images

import (
	"bytes"
	"context"
	"image/color"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/lepinkainen/binder/internal/card"
	"github.com/lepinkainen/binder/internal/reconcile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImageServer(t *testing.T, width int) *httptest.Server {
	t.Helper()

	img := imaging.New(width, width, color.NRGBA{R: 200, G: 30, B: 30, A: 255})
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(buf.Bytes())
	}))
	t.Cleanup(server.Close)
	return server
}

func testCards() []reconcile.Card {
	return []reconcile.Card{
		{Card: card.Card{Name: "Bulbasaur", CardID: "10001"}},
		{Card: card.Card{Name: "Ivysaur", CardID: "10002"}},
		{Card: card.Card{Name: "No ID"}},
	}
}

func TestFetchAll(t *testing.T) {
	server := testImageServer(t, 100)
	dir := t.TempDir()

	fetcher := NewFetcher(dir, false)
	fetcher.SetBaseURL(server.URL)

	result := fetcher.FetchAll(context.Background(), testCards())
	assert.Equal(t, 2, result.Fetched)
	assert.Equal(t, 1, result.Skipped) // missing card ID
	assert.Equal(t, 0, result.Failed)

	assert.True(t, Exists(dir, "10001"))
	assert.True(t, Exists(dir, "10002"))
}

func TestFetchAllSkipsCachedThumbnails(t *testing.T) {
	server := testImageServer(t, 100)
	dir := t.TempDir()

	fetcher := NewFetcher(dir, false)
	fetcher.SetBaseURL(server.URL)

	fetcher.FetchAll(context.Background(), testCards())
	result := fetcher.FetchAll(context.Background(), testCards())
	assert.Equal(t, 0, result.Fetched)
	assert.Equal(t, 3, result.Skipped)
}

func TestFetchAllUpdateRefetches(t *testing.T) {
	server := testImageServer(t, 100)
	dir := t.TempDir()

	fetcher := NewFetcher(dir, false)
	fetcher.SetBaseURL(server.URL)
	fetcher.FetchAll(context.Background(), testCards())

	updater := NewFetcher(dir, true)
	updater.SetBaseURL(server.URL)
	result := updater.FetchAll(context.Background(), testCards())
	assert.Equal(t, 2, result.Fetched)
}

func TestFetchAllResizesWideImages(t *testing.T) {
	server := testImageServer(t, 600)
	dir := t.TempDir()

	fetcher := NewFetcher(dir, false)
	fetcher.SetBaseURL(server.URL)
	fetcher.FetchAll(context.Background(), testCards()[:1])

	img, err := imaging.Open(Path(dir, "10001"))
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())
}

func TestFetchAllServerFailureIsNonFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)
	dir := t.TempDir()

	fetcher := NewFetcher(dir, false)
	fetcher.SetBaseURL(server.URL)

	result := fetcher.FetchAll(context.Background(), testCards())
	assert.Equal(t, 0, result.Fetched)
	assert.Equal(t, 2, result.Failed)
	assert.Equal(t, 1, result.Skipped)
}

func TestFetchAllCancelledContext(t *testing.T) {
	server := testImageServer(t, 100)
	dir := t.TempDir()

	fetcher := NewFetcher(dir, false)
	fetcher.SetBaseURL(server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := fetcher.FetchAll(ctx, testCards())
	assert.Equal(t, 0, result.Fetched)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExistsEmptyCardID(t *testing.T) {
	assert.False(t, Exists(t.TempDir(), ""))
}

package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lepinkainen/binder/internal/card"
	"github.com/lepinkainen/binder/internal/reconcile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable(t *testing.T) *reconcile.Table {
	t.Helper()

	catalog := []card.Card{
		{Name: "Bulbasaur", Source: card.SourceCatalog, SetName: "Scarlet & Violet 151", SetCode: "MEW", Number: "001", TotalCount: "165", Variant: card.VariantNormal, HasCard: true, CardID: "10001"},
		{Name: "Ivysaur", Source: card.SourceCatalog, SetName: "Scarlet & Violet 151", SetCode: "MEW", Number: "002", TotalCount: "165", Variant: card.VariantNormal},
		{Name: "Mew ex", Source: card.SourceCatalog, SetName: "Scarlet & Violet 151", SetCode: "MEW", Number: "205", TotalCount: "165", Variant: card.VariantNormal},
		{Name: "Pikachu", Source: card.SourceCatalog, SetName: "Surging Sparks", SetCode: "SSP", Number: "057", TotalCount: "191", Variant: card.VariantNormal, HasCard: true},
	}
	market := []card.Card{
		{Name: "Ivysaur", Source: card.SourceMarketplace, SetName: "Set MEW", SetCode: "MEW", Number: "002", Variant: card.VariantNormal},
	}

	table, err := reconcile.Merge(catalog, market)
	require.NoError(t, err)
	return table
}

func TestRenderOverview(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(dir)

	require.NoError(t, r.RenderOverview(testTable(t)))

	content, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	page := string(content)

	assert.Contains(t, page, "Scarlet &amp; Violet 151")
	assert.Contains(t, page, "Surging Sparks")
	assert.Contains(t, page, "Set Code: MEW")
	// Set page links use the sanitized filename.
	assert.Contains(t, page, `href="Scarlet_and_Violet_151.html"`)
	// Overall stats cover both sets.
	assert.Contains(t, page, `<div class="stat-number">4</div>`)
}

func TestRenderOverviewSortsByProgress(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(dir)

	require.NoError(t, r.RenderOverview(testTable(t)))

	content, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	page := string(content)

	// Surging Sparks is 100% owned, listed before the partial set.
	ssp := strings.Index(page, "Surging Sparks")
	mew := strings.Index(page, "Scarlet &amp; Violet 151")
	assert.Less(t, ssp, mew)
}

func TestRenderSetPage(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(dir)
	bySet := testTable(t).BySet()

	require.NoError(t, r.RenderSetPage("Scarlet & Violet 151", bySet["Scarlet & Violet 151"]))

	content, err := os.ReadFile(filepath.Join(dir, "Scarlet_and_Violet_151.html"))
	require.NoError(t, err)
	page := string(content)

	assert.Contains(t, page, "Scarlet &amp; Violet 151 (MEW)")
	assert.Contains(t, page, `<tr class="has-card">`)
	assert.Contains(t, page, `<tr class="pending">`)
	assert.Contains(t, page, string(card.StatusPending))
	// Secret card summary: Mew ex 205 > 165.
	assert.Contains(t, page, "secret cards: 0/1 owned")
	// No thumbnail cached, no camera icon.
	assert.NotContains(t, page, "camera-icon")
}

func TestRenderSetPageCameraIconWhenThumbnailCached(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(dir)

	require.NoError(t, os.MkdirAll(r.ImagesDir(), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(r.ImagesDir(), "10001.jpg"), []byte("jpg"), 0o644))

	bySet := testTable(t).BySet()
	require.NoError(t, r.RenderSetPage("Scarlet & Violet 151", bySet["Scarlet & Violet 151"]))

	content, err := os.ReadFile(filepath.Join(dir, "Scarlet_and_Violet_151.html"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "camera-icon")
	assert.Contains(t, string(content), "images/10001.jpg")
}

func TestRenderLegacy(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(dir)

	require.NoError(t, r.RenderLegacy(testTable(t)))

	content, err := os.ReadFile(filepath.Join(dir, "card_collection_report.html"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "legacy single-page report")
	assert.Contains(t, string(content), "4 cards tracked, 2 owned, 1 pending purchase.")
}

func TestRenderAllSelectiveRegeneration(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(dir)
	table := testTable(t)

	require.NoError(t, r.RenderAll(table, nil, true))

	mewPage := filepath.Join(dir, "Scarlet_and_Violet_151.html")
	sspPage := filepath.Join(dir, "Surging_Sparks.html")
	require.FileExists(t, mewPage)
	require.FileExists(t, sspPage)

	// Remove one page and mark only the other changed: the missing page
	// is still regenerated, the unchanged one is left alone.
	require.NoError(t, os.Remove(sspPage))
	require.NoError(t, os.WriteFile(mewPage, []byte("sentinel"), 0o644))

	require.NoError(t, r.RenderAll(table, map[string]bool{}, false))
	require.FileExists(t, sspPage)
	content, err := os.ReadFile(mewPage)
	require.NoError(t, err)
	assert.Equal(t, "sentinel", string(content))

	require.NoError(t, r.RenderAll(table, map[string]bool{"Scarlet & Violet 151": true}, false))
	content, err = os.ReadFile(mewPage)
	require.NoError(t, err)
	assert.NotEqual(t, "sentinel", string(content))
}

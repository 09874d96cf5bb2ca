package report

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSummaryNote(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(dir)

	require.NoError(t, r.WriteSummaryNote(testTable(t)))

	content := readFile(t, filepath.Join(dir, "Card Collection.md"))

	assert.True(t, strings.HasPrefix(content, "---\n"))
	assert.Contains(t, content, "total_cards: 4")
	assert.Contains(t, content, "cards_owned: 2")
	assert.Contains(t, content, "cards_pending: 1")
	assert.Contains(t, content, "completion: 50.0%")
	assert.Contains(t, content, "tags: [card-collection, pokemon]")

	assert.Contains(t, content, "# Card Collection")
	assert.Contains(t, content, "| Scarlet & Violet 151 | 1 | 3 | 33.3% |")
	assert.Contains(t, content, "| Surging Sparks | 1 | 1 | 100.0% |")
}

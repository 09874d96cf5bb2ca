package obsidian

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteBuild(t *testing.T) {
	fm := NewFrontmatter()
	fm.Set("title", "Card Collection")
	fm.Set("total_cards", 420)
	fm.Set("tags", []string{"pokemon", "tcg"})

	note := &Note{Frontmatter: fm, Body: "# Card Collection\n\nSome stats.\n\n"}
	out, err := note.Build()
	require.NoError(t, err)

	expected := `---
tags: [pokemon, tcg]
title: Card Collection
total_cards: 420
---
# Card Collection

Some stats.
`
	assert.Equal(t, expected, string(out))
}

func TestNoteBuildNoFrontmatter(t *testing.T) {
	note := &Note{Frontmatter: NewFrontmatter(), Body: "just body"}
	out, err := note.Build()
	require.NoError(t, err)
	assert.Equal(t, "just body\n", string(out))
}

func TestFrontmatterSortedKeys(t *testing.T) {
	fm := NewFrontmatter()
	fm.Set("zebra", 1)
	fm.Set("alpha", 2)
	fm.Set("zebra", 3) // overwrite keeps single key

	assert.Equal(t, []string{"alpha", "zebra"}, fm.Keys())

	val, ok := fm.Get("zebra")
	require.True(t, ok)
	assert.Equal(t, 3, val)
}

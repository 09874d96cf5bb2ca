package cardmarket

import (
	"testing"

	"github.com/lepinkainen/binder/internal/card"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderRow(linkText, annotation string) string {
	return `<tr class="order-row">
<td class="info"><a href="/en/Pokemon/Products/Singles/x">` + linkText + `</a></td>
<td class="annotations">` + annotation + `</td>
<td class="price">0,15 €</td>
</tr>`
}

func TestExtractCards(t *testing.T) {
	html := `<html><body><table>` +
		orderRow("Bulbasaur (MEW 1)", "") +
		orderRow("Pidgey (OBF 16)", "Reverse Holo") +
		orderRow("Charizard ex (OBF 125)", "Holo") +
		`</table></body></html>`

	cards := ExtractCards(html)
	require.Len(t, cards, 3)

	assert.Equal(t, card.Card{
		Name:    "Bulbasaur",
		Source:  card.SourceMarketplace,
		SetName: "Set MEW",
		SetCode: "MEW",
		Number:  "001",
		Variant: card.VariantNormal,
		HasCard: false,
	}, cards[0])

	assert.Equal(t, card.VariantReverseHolo, cards[1].Variant)
	assert.Equal(t, "016", cards[1].Number)
	assert.Equal(t, card.VariantHolo, cards[2].Variant)
	assert.Equal(t, "125", cards[2].Number)
}

func TestExtractCardsAlwaysUnowned(t *testing.T) {
	html := orderRow("Bulbasaur (MEW 1)", "")
	for _, c := range ExtractCards(html) {
		assert.False(t, c.HasCard, "marketplace cards are in transit, never owned at extraction")
	}
}

func TestExtractCardsSkipsMalformedRows(t *testing.T) {
	html := `<table>` +
		orderRow("Booster Box Display", "") + // no (SET NUM) suffix, row regex won't match
		`<tr><td class="info"><a href="/x">Sleeves (100)</a></td></tr>` +
		orderRow("Pikachu (MEW 25)", "") +
		`</table>`

	cards := ExtractCards(html)
	require.Len(t, cards, 1)
	assert.Equal(t, "Pikachu", cards[0].Name)
}

func TestExtractCardsHTMLEntities(t *testing.T) {
	html := orderRow("Farfetch&#39;d (MEW 83)", "")
	cards := ExtractCards(html)
	require.Len(t, cards, 1)
	assert.Equal(t, "Farfetch'd", cards[0].Name)
}

func TestExtractCardsEmptyInput(t *testing.T) {
	assert.Empty(t, ExtractCards(""))
	assert.Empty(t, ExtractCards("<html><body>no orders</body></html>"))
}

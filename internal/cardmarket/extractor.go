// Package cardmarket extracts pending-purchase card records from saved
// Cardmarket order pages. Every extracted record is unowned by
// construction: the order exists, the cards are still in transit.
package cardmarket

import (
	"html"
	"regexp"
	"strings"

	"github.com/lepinkainen/binder/internal/card"
)

var (
	// One order row per card: a td with class "info" or "name..." whose
	// link text is "CardName (SET NUM)". The full row content is kept
	// for variant detection.
	rowRe      = regexp.MustCompile(`(?is)<tr[^>]*>(.*?<td[^>]*class="(?:info|name[^"]*)"[^>]*>.*?<a[^>]*>([^<]*\([A-Z]+\s+\d+\))</a>.*?)</tr>`)
	cardTextRe = regexp.MustCompile(`^(.*?)\s*\(([A-Z]+)\s+(\d+)\)$`)
)

// ExtractCards extracts all card records from a marketplace order page.
// Rows that do not match the expected shape are skipped.
func ExtractCards(htmlContent string) []card.Card {
	var cards []card.Card

	for _, row := range rowRe.FindAllStringSubmatch(htmlContent, -1) {
		rowContent := row[1]
		cardText := strings.TrimSpace(row[2])

		m := cardTextRe.FindStringSubmatch(cardText)
		if m == nil {
			continue
		}

		name := html.UnescapeString(strings.TrimSpace(m[1]))
		if name == "" {
			continue
		}
		setCode := m[2]
		number := m[3]

		// Variant comes from free-text annotations elsewhere in the row.
		variant := card.VariantNormal
		if strings.Contains(rowContent, "Reverse Holo") {
			variant = card.VariantReverseHolo
		} else if strings.Contains(rowContent, "Holo") {
			variant = card.VariantHolo
		}

		cards = append(cards, card.Card{
			Name:    name,
			Source:  card.SourceMarketplace,
			SetName: "Set " + setCode,
			SetCode: setCode,
			Number:  card.CanonicalNumber(number),
			Variant: variant,
			HasCard: false,
		})
	}

	return cards
}

// Package tcgcollector extracts card records from saved TCG Collector
// set pages. Extraction is regex-based and pure over the input text:
// entries that fail to match are skipped, never fatal.
package tcgcollector

import (
	"html"
	"regexp"
	"strings"

	"github.com/lepinkainen/binder/internal/card"
)

var (
	setInfoRe = regexp.MustCompile(`(?i)<span id="card-search-result-title-set-like-name">([^<]+)</span><span id="card-search-result-title-set-code">([^<]+)</span>`)
	titleRe   = regexp.MustCompile(`(?i)<title>([^<]+) card list \(International TCG\) – TCG Collector</title>`)

	entryRe     = regexp.MustCompile(`(?i)<a[^>]*href="[^"]*cards/[^"]*"[^>]*title="([^"]*\([^)]*\))"[^>]*class="[^"]*card-list-item-entry-text[^"]*"[^>]*>\s*([^<]+)\s*</a>`)
	entryInfoRe = regexp.MustCompile(`\(([^)]+)\s+(\d+(?:/\d+)?)\)`)

	expansionCodeRe = regexp.MustCompile(`(?i)<span[^>]*card-list-item-expansion-code[^>]*>\s*([^<]+)\s*</span>`)
	indicatorSpanRe = regexp.MustCompile(`(?i)<span[^>]*class="([^"]*card-collection-card-indicator[^"]*)"[^>]*>`)
)

// SetInfo is the set name and code extracted from a catalog page header.
// Either field may be empty when the page layout did not match.
type SetInfo struct {
	Name string
	Code string
}

// ExtractSetInfo pulls the set name and code from the page header span
// pair, falling back to the page title (name only).
func ExtractSetInfo(htmlContent string) SetInfo {
	if m := setInfoRe.FindStringSubmatch(htmlContent); m != nil {
		return SetInfo{
			Name: html.UnescapeString(strings.TrimSpace(m[1])),
			Code: html.UnescapeString(strings.TrimSpace(m[2])),
		}
	}
	if m := titleRe.FindStringSubmatch(htmlContent); m != nil {
		return SetInfo{Name: html.UnescapeString(strings.TrimSpace(m[1]))}
	}
	return SetInfo{}
}

// variantIndicator models one ownership indicator span: whether the
// variant is printed in this set at all, and whether it is owned. The
// two signals are independent.
type variantIndicator struct {
	variant card.Variant
	owned   bool
}

// ExtractCards extracts all card records from a catalog page. One page
// entry expands into one record per variant that exists in the set; an
// entry with no detected indicators still yields exactly one Normal,
// not-owned record.
func ExtractCards(htmlContent string) []card.Card {
	var cards []card.Card

	setInfo := ExtractSetInfo(htmlContent)

	for _, entry := range entryRe.FindAllStringSubmatch(htmlContent, -1) {
		title := entry[1]
		name := html.UnescapeString(strings.TrimSpace(entry[2]))
		if name == "" {
			continue
		}

		base := card.Card{
			Name:    name,
			Source:  card.SourceCatalog,
			SetName: setInfo.Name,
			SetCode: setInfo.Code,
		}

		// Title format: "Bulbasaur (Scarlet & Violet 151 001/165)" or
		// "Basic Grass Energy (Scarlet & Violet Energies 001)".
		if m := entryInfoRe.FindStringSubmatch(title); m != nil {
			if base.SetName == "" {
				base.SetName = html.UnescapeString(strings.TrimSpace(m[1]))
			}
			fullNumber := m[2]
			if num, total, ok := strings.Cut(fullNumber, "/"); ok {
				base.Number = num
				base.TotalCount = total
			} else {
				base.Number = fullNumber
			}
		}

		if base.SetCode == "" {
			base.SetCode = findSetCode(htmlContent, entry[2])
		}

		base.CardID = findCardID(htmlContent, entry[2], base.Number, base.TotalCount)

		variants := findVariants(htmlContent, base.CardID)
		if len(variants) == 0 {
			// No indicators detected: the Normal print exists, unowned.
			variants = []variantIndicator{{variant: card.VariantNormal}}
		}

		for _, v := range variants {
			c := base
			c.Variant = v.variant
			c.HasCard = v.owned
			cards = append(cards, c)
		}
	}

	return cards
}

// findSetCode looks for an expansion-code span near the card entry,
// falling back to the most common code on the page.
func findSetCode(htmlContent, rawName string) string {
	contextRe, err := regexp.Compile(`(?is)<a[^>]*>` + regexp.QuoteMeta(rawName) + `</a>.*?<span[^>]*card-list-item-expansion-code[^>]*>\s*([^<]+)\s*</span>`)
	if err == nil {
		if m := contextRe.FindStringSubmatch(htmlContent); m != nil {
			return html.UnescapeString(strings.TrimSpace(m[1]))
		}
	}

	counts := make(map[string]int)
	best := ""
	for _, m := range expansionCodeRe.FindAllStringSubmatch(htmlContent, -1) {
		code := strings.TrimSpace(m[1])
		counts[code]++
		if best == "" || counts[code] > counts[best] {
			best = code
		}
	}
	return html.UnescapeString(best)
}

// findCardID locates the data-card-id for a specific entry, preferring
// matches that include both name and number for uniqueness.
func findCardID(htmlContent, rawName, number, totalCount string) string {
	if number != "" {
		idRe, err := regexp.Compile(`(?i)data-card-id="(\d+)"[^>]*title="[^"]*` + regexp.QuoteMeta(rawName) + `[^"]*` + regexp.QuoteMeta(number) + `[^"]*"`)
		if err == nil {
			if m := idRe.FindStringSubmatch(htmlContent); m != nil {
				return m[1]
			}
		}

		var pattern string
		if totalCount != "" {
			pattern = regexp.QuoteMeta(number) + `/` + regexp.QuoteMeta(totalCount) + `(?s:.*?)data-card-id="(\d+)"`
		} else {
			pattern = regexp.QuoteMeta(number) + `(?s:.*?)data-card-id="(\d+)"`
		}
		contextRe, err := regexp.Compile(`(?i)` + pattern)
		if err == nil {
			if m := contextRe.FindStringSubmatch(htmlContent); m != nil {
				return m[1]
			}
		}
		return ""
	}

	nameRe, err := regexp.Compile(`(?i)data-card-id="(\d+)"[^>]*data-full-card-name-without-tcg-region="[^"]*` + regexp.QuoteMeta(rawName) + `[^"]*"`)
	if err != nil {
		return ""
	}
	if m := nameRe.FindStringSubmatch(htmlContent); m != nil {
		return m[1]
	}
	return ""
}

// findVariants reads the indicator spans inside the card's collection
// controls. The standard-set span is included when it is dotted or
// active; the parallel-set span marks a Reverse Holo print that exists
// in the set whether or not it is owned.
func findVariants(htmlContent, cardID string) []variantIndicator {
	if cardID == "" {
		return nil
	}

	blockRe, err := regexp.Compile(`(?is)data-card-id="` + regexp.QuoteMeta(cardID) + `".*?card-collection-card-controls-indicators.*?</button>`)
	if err != nil {
		return nil
	}
	block := blockRe.FindString(htmlContent)
	if block == "" {
		return nil
	}

	var variants []variantIndicator

	spans := indicatorSpanRe.FindAllStringSubmatch(block, -1)

	for _, span := range spans {
		classAttr := span[1]
		if strings.Contains(classAttr, "card-collection-card-indicator-standard-set") {
			withDot := strings.Contains(classAttr, "card-collection-card-indicator-with-dot")
			active := strings.Contains(classAttr, "active")
			if withDot || active {
				variants = append(variants, variantIndicator{variant: card.VariantNormal, owned: active})
			}
			break
		}
	}

	for _, span := range spans {
		classAttr := span[1]
		if strings.Contains(classAttr, "card-collection-card-indicator-parallel-set") {
			active := strings.Contains(classAttr, "active")
			variants = append(variants, variantIndicator{variant: card.VariantReverseHolo, owned: active})
			break
		}
	}

	return variants
}

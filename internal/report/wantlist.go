package report

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/lepinkainen/binder/internal/card"
	"github.com/lepinkainen/binder/internal/fileutil"
	"github.com/lepinkainen/binder/internal/reconcile"
)

// DecklistConverter converts a decklist-format want list into
// Cardmarket's import format. Implemented by cardmarket.Converter.
type DecklistConverter interface {
	Convert(ctx context.Context, decklist string) (string, error)
}

// WantedCards returns the cards that are neither owned nor pending,
// grouped by set name in the table's deterministic order.
func WantedCards(table *reconcile.Table) map[string][]reconcile.Card {
	wanted := make(map[string][]reconcile.Card)
	for _, c := range table.Cards() {
		if c.HasCard || c.CardmarketPending {
			continue
		}
		name := c.SetName
		if name == "" {
			name = "Unknown Set"
		}
		wanted[name] = append(wanted[name], c)
	}
	return wanted
}

// WriteWantLists writes the want list in all four formats into the
// renderer's output directory. The converted format calls the external
// converter; on any conversion error the file falls back to the
// unconverted decklist, never failing the run.
func (r *Renderer) WriteWantLists(ctx context.Context, table *reconcile.Table, converter DecklistConverter) error {
	wanted := WantedCards(table)
	total := 0
	for _, cards := range wanted {
		total += len(cards)
	}

	now := time.Now()
	files := map[string]string{
		"want_list_simple.txt":               simpleWantList(wanted, now),
		"want_list_cardmarket.txt":           cardmarketWantList(wanted, now),
		"want_list_decklist.txt":             decklistWantList(wanted, now),
		"want_list_cardmarket_converted.txt": convertedWantList(ctx, wanted, converter, now),
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(r.outputDir, name)
		if _, err := fileutil.WriteFileWithOverwrite(path, []byte(files[name]), 0644, r.overwrite); err != nil {
			return fmt.Errorf("failed to write want list %s: %w", name, err)
		}
		slog.Info("Want list generated", "filename", name, "cards", total)
	}

	return nil
}

// simpleWantList lists card names grouped by set.
func simpleWantList(wanted map[string][]reconcile.Card, now time.Time) string {
	var b strings.Builder
	b.WriteString("# Pokemon Card Want List (Simple Format)\n")
	fmt.Fprintf(&b, "# Generated on %s\n\n", now.Format("2006-01-02 15:04:05"))

	setNames := make([]string, 0, len(wanted))
	for name := range wanted {
		setNames = append(setNames, name)
	}
	sort.Strings(setNames)

	for _, setName := range setNames {
		cards := wanted[setName]
		if len(cards) == 0 {
			continue
		}

		fmt.Fprintf(&b, "## %s\n", setName)
		for _, c := range sortedByNumber(cards) {
			if c.Variant != "" && c.Variant != card.VariantNormal {
				fmt.Fprintf(&b, "%s %s (%s)\n", orDefault(c.Number, "???"), orDefault(c.Name, "Unknown"), c.Variant)
			} else {
				fmt.Fprintf(&b, "%s %s\n", orDefault(c.Number, "???"), orDefault(c.Name, "Unknown"))
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

// cardmarketWantList lists cards alphabetically in Cardmarket's manual
// entry format: Name [SetCode].
func cardmarketWantList(wanted map[string][]reconcile.Card, now time.Time) string {
	var b strings.Builder
	b.WriteString("# Pokemon Card Want List (Cardmarket Format)\n")
	fmt.Fprintf(&b, "# Generated on %s\n", now.Format("2006-01-02 15:04:05"))
	b.WriteString("# Format: Card Name [Set Code] (modify abilities manually if needed)\n\n")

	var all []reconcile.Card
	for _, cards := range wanted {
		all = append(all, cards...)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Name != all[j].Name {
			return all[i].Name < all[j].Name
		}
		return card.KeyOf(all[i].Card).Less(card.KeyOf(all[j].Card))
	})

	for _, c := range all {
		name := orDefault(c.Name, "Unknown")
		code := orDefault(c.SetCode, "UNK")
		if c.Variant != "" && c.Variant != card.VariantNormal {
			fmt.Fprintf(&b, "%s (%s) [%s]\n", name, c.Variant, code)
		} else {
			fmt.Fprintf(&b, "%s [%s]\n", name, code)
		}
	}

	b.WriteString("\n# Note: You may need to manually add abilities in brackets like:\n")
	b.WriteString("# Exeggcute [Precocious Evolution] [SSP]\n")
	b.WriteString("# Durant ex [Sudden Shearing | Vengeful Crush] [SSP]\n")

	return b.String()
}

// decklistWantList lists cards in the pokedata.ovh converter's input
// format: "1 CardName SetCode Number", sorted by set code then number.
func decklistWantList(wanted map[string][]reconcile.Card, now time.Time) string {
	var b strings.Builder
	b.WriteString("# Pokemon Card Want List (Decklist Format for pokedata.ovh)\n")
	fmt.Fprintf(&b, "# Generated on %s\n", now.Format("2006-01-02 15:04:05"))
	b.WriteString("# Format: 1 CardName SetCode Number\n")
	b.WriteString("# Use this with https://www.pokedata.ovh/misc/cardmarket\n\n")

	b.WriteString(decklistBody(wanted))

	b.WriteString("\n# Instructions:\n")
	b.WriteString("# 1. Copy the list above\n")
	b.WriteString("# 2. Paste into https://www.pokedata.ovh/misc/cardmarket\n")
	b.WriteString("# 3. Click Convert to get Cardmarket format with abilities\n")

	return b.String()
}

// convertedWantList runs the decklist through the external converter.
func convertedWantList(ctx context.Context, wanted map[string][]reconcile.Card, converter DecklistConverter, now time.Time) string {
	var b strings.Builder
	b.WriteString("# Pokemon Card Want List (Auto-Converted via pokedata.ovh)\n")
	fmt.Fprintf(&b, "# Generated on %s\n\n", now.Format("2006-01-02 15:04:05"))

	decklist := decklistBody(wanted)

	var converted string
	if converter != nil && decklist != "" {
		slog.Info("Converting decklist to Cardmarket format")
		var err error
		converted, err = converter.Convert(ctx, decklist)
		if err != nil {
			slog.Warn("Decklist conversion failed, keeping decklist format", "error", err)
			converted = ""
		}
	}

	if converted != "" {
		b.WriteString("# SUCCESS: Automatically converted with abilities!\n")
		b.WriteString("# Copy the text below and paste directly into Cardmarket:\n\n")
		b.WriteString(converted)
		b.WriteString("\n")
	} else {
		b.WriteString("# CONVERSION FAILED: Using manual format instead\n")
		b.WriteString("# Copy this to https://www.pokedata.ovh/misc/cardmarket:\n\n")
		b.WriteString(decklist)
	}

	return b.String()
}

// decklistBody renders the shared "1 CardName SetCode Number" lines.
func decklistBody(wanted map[string][]reconcile.Card) string {
	var all []reconcile.Card
	for _, cards := range wanted {
		all = append(all, cards...)
	}
	sort.Slice(all, func(i, j int) bool {
		ci, cj := all[i], all[j]
		codeI, codeJ := orDefault(ci.SetCode, "ZZZ"), orDefault(cj.SetCode, "ZZZ")
		if codeI != codeJ {
			return codeI < codeJ
		}
		ni, nj := numberOr999(ci.Number), numberOr999(cj.Number)
		if ni != nj {
			return ni < nj
		}
		return ci.Name < cj.Name
	})

	var b strings.Builder
	for _, c := range all {
		name := orDefault(c.Name, "Unknown")
		code := orDefault(c.SetCode, "UNK")
		number := orDefault(c.Number, "???")
		if c.Variant != "" && c.Variant != card.VariantNormal {
			fmt.Fprintf(&b, "1 %s (%s) %s %s\n", name, c.Variant, code, number)
		} else {
			fmt.Fprintf(&b, "1 %s %s %s\n", name, code, number)
		}
	}
	return b.String()
}

func sortedByNumber(cards []reconcile.Card) []reconcile.Card {
	sorted := make([]reconcile.Card, len(cards))
	copy(sorted, cards)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Number != sorted[j].Number {
			return sorted[i].Number < sorted[j].Number
		}
		return sorted[i].Name < sorted[j].Name
	})
	return sorted
}

func numberOr999(number string) int {
	n, err := strconv.Atoi(number)
	if err != nil {
		return 999
	}
	return n
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// Package reconcile merges catalog and marketplace card records into a
// single ownership table keyed by card identity. The table has exactly
// one writer phase (Merge) and is read-only afterwards.
package reconcile

import (
	"log/slog"
	"sort"

	"github.com/lepinkainen/binder/internal/card"
	binderrors "github.com/lepinkainen/binder/internal/errors"
)

// Card is a reconciled card: the extracted record plus the pending flag
// contributed by the marketplace source. HasCard and CardmarketPending
// are independent facts; Status derives the combined state.
type Card struct {
	card.Card
	CardmarketPending bool `json:"cardmarket_pending"`
}

// Status derives the ownership state. Priority order is fixed:
// owned without a pending order, owned with one (a duplicate purchase),
// unowned with one, unowned without.
func (c Card) Status() card.Status {
	switch {
	case c.HasCard && !c.CardmarketPending:
		return card.StatusHave
	case c.HasCard && c.CardmarketPending:
		return card.StatusDuplicate
	case c.CardmarketPending:
		return card.StatusPending
	default:
		return card.StatusNeed
	}
}

// Table is the unified ownership mapping. It is built once by Merge and
// never mutated afterwards; consumers only read.
type Table struct {
	cards      map[card.Key]Card
	collisions int
}

// Merge builds the unified table from normalized catalog and
// marketplace records.
//
// Catalog records seed the table. A catalog/catalog key collision should
// not happen under correct extraction but is tolerated: the later record
// wins, and the collision is counted and logged.
//
// Marketplace records then fold in: a record whose key already exists
// only sets the pending flag on the existing entry — catalog identity
// fields are never overwritten. A record with a new key is inserted as
// its own entry with the pending flag set.
//
// An empty catalog is fatal: there is nothing to reconcile against.
func Merge(catalog, market []card.Card) (*Table, error) {
	if len(catalog) == 0 {
		return nil, binderrors.NewMissingCatalogError("catalog input")
	}

	t := &Table{cards: make(map[card.Key]Card, len(catalog))}

	for _, c := range catalog {
		key := card.KeyOf(c)
		if _, exists := t.cards[key]; exists {
			t.collisions++
			slog.Warn("Catalog key collision, keeping later record", "key", key.String(), "name", c.Name)
		}
		t.cards[key] = Card{Card: c}
	}

	for _, c := range market {
		key := card.KeyOf(c)
		if existing, exists := t.cards[key]; exists {
			existing.CardmarketPending = true
			t.cards[key] = existing
			continue
		}
		t.cards[key] = Card{Card: c, CardmarketPending: true}
	}

	return t, nil
}

// Len returns the number of distinct reconciled cards.
func (t *Table) Len() int {
	return len(t.cards)
}

// Collisions returns the number of catalog key collisions absorbed
// during the merge.
func (t *Table) Collisions() int {
	return t.collisions
}

// Get returns the reconciled card for a key.
func (t *Table) Get(key card.Key) (Card, bool) {
	c, ok := t.cards[key]
	return c, ok
}

// Keys returns all identity keys in deterministic order.
func (t *Table) Keys() []card.Key {
	keys := make([]card.Key, 0, len(t.cards))
	for k := range t.cards {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}

// Cards returns all reconciled cards in deterministic key order.
func (t *Table) Cards() []Card {
	keys := t.Keys()
	cards := make([]Card, 0, len(keys))
	for _, k := range keys {
		cards = append(cards, t.cards[k])
	}
	return cards
}

// BySet groups the reconciled cards by set name, each group in
// deterministic key order. Cards without a set name fall into the
// "Unknown" group.
func (t *Table) BySet() map[string][]Card {
	groups := make(map[string][]Card)
	for _, c := range t.Cards() {
		name := c.SetName
		if name == "" {
			name = "Unknown"
		}
		groups[name] = append(groups[name], c)
	}
	return groups
}

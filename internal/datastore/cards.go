package datastore

import (
	"github.com/lepinkainen/binder/internal/reconcile"
)

// CardsSchema is the table holding the reconciled collection.
const CardsSchema = `CREATE TABLE IF NOT EXISTS cards (
	identity_key TEXT PRIMARY KEY,
	name TEXT,
	source TEXT,
	set_name TEXT,
	set_code TEXT,
	number TEXT,
	total_count TEXT,
	variant TEXT,
	has_card BOOLEAN,
	cardmarket_pending BOOLEAN,
	status TEXT,
	card_id TEXT
)`

// CardRecords converts a reconciled table into rows for the cards table.
func CardRecords(table *reconcile.Table) []map[string]any {
	keys := table.Keys()
	records := make([]map[string]any, 0, len(keys))
	for _, key := range keys {
		c, _ := table.Get(key)
		records = append(records, map[string]any{
			"identity_key":       key.String(),
			"name":               c.Name,
			"source":             string(c.Source),
			"set_name":           c.SetName,
			"set_code":           c.SetCode,
			"number":             c.Number,
			"total_count":        c.TotalCount,
			"variant":            string(c.Variant),
			"has_card":           c.HasCard,
			"cardmarket_pending": c.CardmarketPending,
			"status":             string(c.Status()),
			"card_id":            c.CardID,
		})
	}
	return records
}

// ExportCards writes the reconciled collection to a SQLite database,
// replacing any previous export.
func ExportCards(dbPath string, table *reconcile.Table) error {
	store := NewSQLiteStore(dbPath)
	if err := store.Connect(); err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.CreateTable(CardsSchema); err != nil {
		return err
	}

	return store.Replace("cards", CardRecords(table))
}

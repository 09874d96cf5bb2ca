package datastore

// Store defines the interface for local SQLite storage of reconciled
// collection data.
type Store interface {
	// Connect establishes a connection to the data store
	Connect() error

	// CreateTable creates a new table with the given schema if it doesn't exist
	CreateTable(schema string) error

	// Replace clears a table and inserts the given records in one
	// transaction. The exported table always mirrors the latest
	// reconciliation, never an incremental patch.
	Replace(table string, records []map[string]any) error

	// Close closes the connection to the data store
	Close() error
}
